package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/memopad/internal/flash"
	"github.com/hitoshi/memopad/internal/middleware"
	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/view"
)

// CookieConfig はハンドラーが発行するCookieの共通属性。
type CookieConfig struct {
	Secure bool
	Domain string
}

// flashConfig はCookieConfigをflashパッケージの設定に変換する。
func (c CookieConfig) flashConfig() flash.Config {
	return flash.Config{CookieSecure: c.Secure, CookieDomain: c.Domain}
}

// redirectWithFlash はフラッシュメッセージを設定してリダイレクトする。
func redirectWithFlash(w http.ResponseWriter, r *http.Request, cookies CookieConfig, category, message, location string) {
	flash.Set(w, cookies.flashConfig(), category, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// redirectWithError はエラーをフラッシュメッセージに変換してリダイレクトする。
// AppErrorはそのままユーザー向けメッセージとして表示し、
// それ以外のエラーは詳細をログにのみ記録して一般的なメッセージを表示する。
func redirectWithError(w http.ResponseWriter, r *http.Request, cookies CookieConfig, err error, location string) {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		redirectWithFlash(w, r, cookies, flash.CategoryError, appErr.Message, location)
		return
	}

	slog.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	redirectWithFlash(w, r, cookies, flash.CategoryError,
		"内部エラーが発生しました。しばらく待ってから再度お試しください。", location)
}

// renderPage は共通の描画データ（フラッシュ・CSRFトークン・認証情報）を補って
// ページを描画する。描画エラーは500として処理する。
func renderPage(w http.ResponseWriter, r *http.Request, renderer *view.Renderer, cookies CookieConfig, page string, data *view.PageData) {
	if data.Flash == nil {
		data.Flash = flash.Take(w, r, cookies.flashConfig())
	}
	if data.CSRFToken == "" {
		data.CSRFToken = middleware.CSRFTokenFromContext(r.Context())
	}
	if data.Identity == nil {
		if identity, err := middleware.IdentityFromContext(r.Context()); err == nil {
			data.Identity = identity
		}
	}

	if err := renderer.Render(w, page, data); err != nil {
		slog.Error("failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
