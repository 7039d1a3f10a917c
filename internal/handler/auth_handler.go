// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/memopad/internal/flash"
	"github.com/hitoshi/memopad/internal/middleware"
	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/view"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) (*model.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	Cookies       CookieConfig
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler は登録・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service       AuthServiceInterface
	sessionFinder middleware.SessionFinder
	renderer      *view.Renderer
	config        AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(
	service AuthServiceInterface,
	sessionFinder middleware.SessionFinder,
	renderer *view.Renderer,
	config AuthHandlerConfig,
) *AuthHandler {
	return &AuthHandler{
		service:       service,
		sessionFinder: sessionFinder,
		renderer:      renderer,
		config:        config,
	}
}

// Index はセッションの有無に応じてダッシュボードまたはログイン画面へ振り分ける。
// GET /
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowRegister は登録フォームを表示する。認証済みの場合はダッシュボードへ。
// GET /register
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderPage(w, r, h.renderer, h.config.Cookies, "register", &view.PageData{Title: "新規登録"})
}

// Register は登録フォームの送信を処理する。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	form, err := parseRegisterForm(r)
	if err != nil {
		redirectWithError(w, r, h.config.Cookies, err, "/register")
		return
	}

	if err := h.service.Register(r.Context(), form.Username, form.Email, form.Password); err != nil {
		redirectWithError(w, r, h.config.Cookies, err, "/register")
		return
	}

	redirectWithFlash(w, r, h.config.Cookies, flash.CategorySuccess,
		"登録が完了しました。ログインしてください。", "/login")
}

// ShowLogin はログインフォームを表示する。認証済みの場合はダッシュボードへ。
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderPage(w, r, h.renderer, h.config.Cookies, "login", &view.PageData{Title: "ログイン"})
}

// Login はログインフォームの送信を処理する。
// 認証失敗の理由（ユーザー名・パスワードのどちらが誤っているか）は表示しない。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	form, err := parseLoginForm(r)
	if err != nil {
		redirectWithError(w, r, h.config.Cookies, err, "/login")
		return
	}

	session, err := h.service.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		redirectWithError(w, r, h.config.Cookies, err, "/login")
		return
	}

	// セッションCookieを設定（HTTP Only）
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Domain:   h.config.Cookies.Domain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	redirectWithFlash(w, r, h.config.Cookies, flash.CategorySuccess,
		"ログインしました。", "/dashboard")
}

// Logout はセッションを破棄してログイン画面へリダイレクトする。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		// セッションをDBから削除
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
			// ログアウト失敗してもCookieはクリアする
		}
	}

	// セッションCookieをクリア
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.Cookies.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	redirectWithFlash(w, r, h.config.Cookies, flash.CategorySuccess,
		"ログアウトしました。", "/login")
}

// isAuthenticated はリクエストが有効なセッションを持つかを判定する。
// 登録・ログイン画面はセッションミドルウェアの外にあるため、ここで個別に確認する。
func (h *AuthHandler) isAuthenticated(r *http.Request) bool {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	session, err := h.sessionFinder.FindByID(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("failed to find session", slog.String("error", err.Error()))
		return false
	}
	return session != nil
}
