// Package model はドメインモデルを定義する。
package model

import "fmt"

// AppError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリとフラッシュメッセージを含む。
type AppError struct {
	Code     string // エラーコード
	Message  string // ユーザー向けメッセージ
	Category string // カテゴリ: auth, validation, conflict, note, system
}

// Error はerrorインターフェースを実装する。
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDuplicateUser      = "DUPLICATE_USER"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeNoteNotFound       = "NOTE_NOT_FOUND"
)

// NewValidationError は入力不備エラーを生成する。
// messageにはフォームに表示する文言をそのまま渡す。
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
	}
}

// NewDuplicateUserError はユーザー名またはメールアドレスの重複エラーを生成する。
// どちらが重複したかは区別せず、同一のメッセージを返す。
func NewDuplicateUserError() *AppError {
	return &AppError{
		Code:     ErrCodeDuplicateUser,
		Message:  "このユーザー名またはメールアドレスは既に使用されています。",
		Category: "conflict",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// ユーザー名とパスワードのどちらが誤っているかを漏らさないよう、常に同一のメッセージを返す。
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
	}
}

// NewNoteNotFoundError はメモ未検出エラーを生成する。
// 存在しないメモと他ユーザーのメモを区別せず、同一のメッセージを返す。
func NewNoteNotFoundError() *AppError {
	return &AppError{
		Code:     ErrCodeNoteNotFound,
		Message:  "メモが見つかりません。",
		Category: "note",
	}
}
