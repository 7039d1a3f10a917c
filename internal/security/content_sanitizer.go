// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はメモのタイトルと本文に混入したHTMLを保存前に除去し、
// XSS攻撃などのセキュリティリスクからユーザーを保護する。
// メモはプレーンテキストとして扱うため、bluemondayのStrictPolicyで
// すべてのタグと属性を取り除く。テンプレート側のエスケープと併せた多層防御になる。
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はテキストサニタイズ機能のインターフェースを定義する。
// メモの保存前（作成・更新）に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyはタグを一切許可しない。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
// bluemondayはタグ除去後のテキストをエンティティ参照でエスケープするため、
// プレーンテキストとして保存できるよう参照を復元する。
func (s *contentSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return html.UnescapeString(s.policy.Sanitize(raw))
}

// compile-time interface check
var _ ContentSanitizerService = (*contentSanitizer)(nil)
