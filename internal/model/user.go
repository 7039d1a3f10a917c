// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordDigestはbcryptによる不可逆ダイジェストで、平文パスワードは保持しない。
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
}

// Note はユーザーが所有するメモを表す。
// UserIDで所有者に紐付き、所有者以外からは参照・変更できない。
type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session はユーザーのログインセッションを表す。
// IDはクライアントにとって不透明なランダム値で、サーバー側の行と突き合わせて検証する。
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Identity は認証済みリクエストのユーザー識別情報を表す。
// セッション検証後にリクエストコンテキストへ注入される。
type Identity struct {
	UserID   int64
	Username string
}
