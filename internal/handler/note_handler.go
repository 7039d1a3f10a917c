package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hitoshi/memopad/internal/flash"
	"github.com/hitoshi/memopad/internal/middleware"
	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/view"
)

// NoteServiceInterface はメモハンドラーが必要とするサービスインターフェース。
type NoteServiceInterface interface {
	Create(ctx context.Context, userID int64, title, content string) (int64, error)
	List(ctx context.Context, userID int64) ([]*model.Note, error)
	Get(ctx context.Context, id, userID int64) (*model.Note, error)
	Update(ctx context.Context, id, userID int64, title, content string) error
	Delete(ctx context.Context, id, userID int64) error
}

// NoteHandler はメモCRUDのHTTPハンドラー。
// すべてのハンドラーはセッションミドルウェアの内側で動作し、
// コンテキストから取得した認証済みユーザーIDでストア操作をスコープする。
type NoteHandler struct {
	service  NoteServiceInterface
	renderer *view.Renderer
	cookies  CookieConfig
}

// NewNoteHandler はNoteHandlerを生成する。
func NewNoteHandler(service NoteServiceInterface, renderer *view.Renderer, cookies CookieConfig) *NoteHandler {
	return &NoteHandler{
		service:  service,
		renderer: renderer,
		cookies:  cookies,
	}
}

// Dashboard は現在のユーザーのメモ一覧を最終更新の新しい順で表示する。
// GET /dashboard
func (h *NoteHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	notes, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, "/login")
		return
	}

	renderPage(w, r, h.renderer, h.cookies, "dashboard", &view.PageData{
		Title:    "マイメモ",
		Identity: identity,
		Notes:    notes,
	})
}

// ShowCreate は新規メモフォームを表示する。
// GET /note/create
func (h *NoteHandler) ShowCreate(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, h.cookies, "note_form", &view.PageData{
		Title:      "新規メモ",
		FormAction: "/note/create",
	})
}

// Create は新規メモフォームの送信を処理する。
// POST /note/create
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	form, err := parseNoteForm(r)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, "/note/create")
		return
	}

	if _, err := h.service.Create(r.Context(), identity.UserID, form.Title, form.Content); err != nil {
		redirectWithError(w, r, h.cookies, err, "/note/create")
		return
	}

	redirectWithFlash(w, r, h.cookies, flash.CategorySuccess,
		"メモを作成しました。", "/dashboard")
}

// ShowEdit は編集フォームを表示する。
// メモが存在しない場合・他ユーザー所有の場合は同一のエラーでダッシュボードへ。
// GET /note/edit/{noteID}
func (h *NoteHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, "/dashboard")
		return
	}

	note, err := h.service.Get(r.Context(), noteID, identity.UserID)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, "/dashboard")
		return
	}

	renderPage(w, r, h.renderer, h.cookies, "note_form", &view.PageData{
		Title:      "メモを編集",
		Identity:   identity,
		Note:       note,
		FormAction: fmt.Sprintf("/note/edit/%d", note.ID),
	})
}

// Edit は編集フォームの送信を処理する。
// POST /note/edit/{noteID}
func (h *NoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, "/dashboard")
		return
	}

	form, err := parseNoteForm(r)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, fmt.Sprintf("/note/edit/%d", noteID))
		return
	}

	if err := h.service.Update(r.Context(), noteID, identity.UserID, form.Title, form.Content); err != nil {
		redirectWithError(w, r, h.cookies, err, "/dashboard")
		return
	}

	redirectWithFlash(w, r, h.cookies, flash.CategorySuccess,
		"メモを更新しました。", "/dashboard")
}

// Delete はメモを削除してダッシュボードへリダイレクトする。
// 対象が存在しない場合（削除済み・他ユーザー所有）も成功として扱う。
// GET /note/delete/{noteID}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, "/dashboard")
		return
	}

	if err := h.service.Delete(r.Context(), noteID, identity.UserID); err != nil {
		redirectWithError(w, r, h.cookies, err, "/dashboard")
		return
	}

	redirectWithFlash(w, r, h.cookies, flash.CategorySuccess,
		"メモを削除しました。", "/dashboard")
}

// View はメモの詳細を表示する。
// GET /note/view/{noteID}
func (h *NoteHandler) View(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, "/dashboard")
		return
	}

	note, err := h.service.Get(r.Context(), noteID, identity.UserID)
	if err != nil {
		redirectWithError(w, r, h.cookies, err, "/dashboard")
		return
	}

	renderPage(w, r, h.renderer, h.cookies, "note_view", &view.PageData{
		Title:    note.Title,
		Identity: identity,
		Note:     note,
	})
}
