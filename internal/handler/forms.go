package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/memopad/internal/auth"
	"github.com/hitoshi/memopad/internal/model"
)

// registerForm は登録フォームの入力値。
type registerForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// parseRegisterForm はリクエストから登録フォームを読み取り検証する。
// 検証エラーの場合はAppError（validation）を返し、ストア呼び出しには進ませない。
func parseRegisterForm(r *http.Request) (*registerForm, error) {
	f := &registerForm{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if f.Username == "" || f.Email == "" || f.Password == "" {
		return nil, model.NewValidationError("すべての項目を入力してください。")
	}
	if f.Password != f.ConfirmPassword {
		return nil, model.NewValidationError("パスワードが一致しません。")
	}
	if len(f.Password) < auth.MinPasswordLength {
		return nil, model.NewValidationError("パスワードは6文字以上で入力してください。")
	}

	return f, nil
}

// loginForm はログインフォームの入力値。
type loginForm struct {
	Username string
	Password string
}

// parseLoginForm はリクエストからログインフォームを読み取り検証する。
func parseLoginForm(r *http.Request) (*loginForm, error) {
	f := &loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if f.Username == "" || f.Password == "" {
		return nil, model.NewValidationError("ユーザー名とパスワードを入力してください。")
	}

	return f, nil
}

// noteForm はメモ作成・編集フォームの入力値。
type noteForm struct {
	Title   string
	Content string
}

// parseNoteForm はリクエストからメモフォームを読み取り検証する。
func parseNoteForm(r *http.Request) (*noteForm, error) {
	f := &noteForm{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	if f.Title == "" || f.Content == "" {
		return nil, model.NewValidationError("タイトルと本文を入力してください。")
	}

	return f, nil
}

// parseNoteID はURLパラメータからメモIDを取り出す。
// 正の整数でない値はストアに渡さず、存在しないメモと同様に扱う。
func parseNoteID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "noteID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewNoteNotFoundError()
	}
	return id, nil
}
