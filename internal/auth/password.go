package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength はパスワードの最低文字数。
const MinPasswordLength = 6

// PasswordHasher はパスワードのハッシュ化と検証を提供する。
// 平文パスワードを保存・ログ出力することはない。
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher はPasswordHasherを生成する。
// costに0以下を渡した場合はbcrypt.DefaultCostを使用する。
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash はパスワードのソルト付き不可逆ダイジェストを生成する。
// ソルトはbcryptが内部で毎回ランダムに生成するため、
// 同一パスワードでも呼び出しごとに異なるダイジェストになる。
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify はパスワードがダイジェストと一致するかを検証する。
// 比較はbcrypt内部で定数時間で行われる。
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
