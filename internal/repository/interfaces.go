// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/memopad/internal/model"
)

// ErrDuplicateUser はユーザー名またはメールアドレスの一意制約違反を表す。
// 呼び出し側はerrors.Isで判定し、ユーザー向けメッセージに変換する。
var ErrDuplicateUser = errors.New("duplicate username or email")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、採番されたIDを返す。
	// ユーザー名またはメールアドレスが重複している場合はErrDuplicateUserを返し、
	// 部分的な挿入は行わない。
	Create(ctx context.Context, user *model.User) (int64, error)

	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// NoteRepository はメモデータの永続化インターフェース。
// 参照・更新・削除はすべて(id, user_id)の組で所有者スコープをかける。
// 他ユーザーのメモは存在しないメモと区別されない。
type NoteRepository interface {
	// Create はメモを作成し、採番されたIDを返す。
	// created_atとupdated_atは作成時刻に揃えられる。
	Create(ctx context.Context, note *model.Note) (int64, error)

	// ListByUserID はユーザーのメモ一覧をupdated_at降順で返す。
	ListByUserID(ctx context.Context, userID int64) ([]*model.Note, error)

	// FindByIDAndUserID は(id, user_id)でメモを取得する。
	// 行が存在しない場合も所有者が異なる場合もnilを返す。
	FindByIDAndUserID(ctx context.Context, id, userID int64) (*model.Note, error)

	// Update は(id, user_id)でスコープしてタイトルと本文を置き換え、updated_atを更新する。
	// 所有者が一致しない場合は0行更新のまま正常終了する。
	Update(ctx context.Context, id, userID int64, title, content string) error

	// Delete は(id, user_id)でスコープしてメモを削除する。
	// 所有者が一致しない場合は0行削除のまま正常終了する。
	Delete(ctx context.Context, id, userID int64) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションをユーザー名付きで取得する。
	// 期限切れまたは未登録の場合はnilを返す。
	FindByID(ctx context.Context, id string) (*SessionWithUser, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID int64) error
}

// SessionWithUser はセッションと所有ユーザーのユーザー名を結合した構造体。
// セッション検証時にusersテーブルへの追加クエリを省くために使用する。
type SessionWithUser struct {
	model.Session
	Username string
}
