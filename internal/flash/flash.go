// Package flash はリダイレクトをまたいで1回だけ表示する通知メッセージを提供する。
// メッセージは短命なCookieに載せ、次の描画で読み取ると同時に破棄される。
package flash

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const cookieName = "flash"

// カテゴリはテンプレートの表示スタイル切り替えに使用する。
const (
	CategorySuccess = "success"
	CategoryError   = "error"
)

// Flash は1回限りの通知メッセージを表す。
type Flash struct {
	Category string
	Message  string
}

// Config はフラッシュCookieの属性設定。
type Config struct {
	CookieSecure bool
	CookieDomain string
}

// Set は次の描画で表示するフラッシュメッセージをCookieに設定する。
// メッセージは非ASCIIを含むためbase64でエンコードする。
func Set(w http.ResponseWriter, config Config, category, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(category + "\x00" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		Domain:   config.CookieDomain,
		MaxAge:   300, // 5分。次のリクエストで消費される想定
		HttpOnly: true,
		Secure:   config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take はフラッシュメッセージを読み取り、Cookieを破棄する。
// メッセージが設定されていない場合、または復号できない場合はnilを返す。
func Take(w http.ResponseWriter, r *http.Request, config Config) *Flash {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// 読み取ったら必ず破棄する（1回限りの通知）
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Domain:   config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	category, message, ok := strings.Cut(string(decoded), "\x00")
	if !ok || message == "" {
		return nil
	}

	return &Flash{Category: category, Message: message}
}
