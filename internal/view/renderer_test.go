package view

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/memopad/internal/flash"
	"github.com/hitoshi/memopad/internal/model"
)

// 埋め込みテンプレートがすべて解析できることを検証
func TestNewRenderer_ParsesAllTemplates(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if renderer == nil {
		t.Fatal("expected non-nil renderer")
	}
}

func TestRender_UnknownTemplate_ReturnsError(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	w := httptest.NewRecorder()
	if err := renderer.Render(w, "nonexistent", &PageData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRender_Login_ContainsForm(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	w := httptest.NewRecorder()
	err = renderer.Render(w, "login", &PageData{
		Title:     "ログイン",
		CSRFToken: "test-token",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, `action="/login"`) {
		t.Error("login page should contain the login form")
	}
	if !strings.Contains(body, "test-token") {
		t.Error("login page should embed the CSRF token")
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/html; charset=utf-8", ct)
	}
}

// メモ本文のHTML特殊文字はエスケープされて描画される
func TestRender_NoteView_EscapesContent(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := httptest.NewRecorder()
	err = renderer.Render(w, "note_view", &PageData{
		Title: "タイトル",
		Note: &model.Note{
			ID:        1,
			Title:     "タイトル",
			Content:   `<b>太字</b> & "引用"`,
			CreatedAt: now,
			UpdatedAt: now,
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := w.Body.String()
	if strings.Contains(body, "<b>太字</b>") {
		t.Error("note content should be HTML-escaped")
	}
	if !strings.Contains(body, "&lt;b&gt;") {
		t.Error("escaped content should appear in the output")
	}
}

func TestRender_Dashboard_EmptyState(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	w := httptest.NewRecorder()
	err = renderer.Render(w, "dashboard", &PageData{
		Title:    "マイメモ",
		Identity: &model.Identity{UserID: 1, Username: "alice"},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(w.Body.String(), "メモはまだありません") {
		t.Error("dashboard should show the empty state message")
	}
}

func TestRender_FlashMessage_Displayed(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	w := httptest.NewRecorder()
	err = renderer.Render(w, "login", &PageData{
		Title: "ログイン",
		Flash: &flash.Flash{
			Category: flash.CategorySuccess,
			Message:  "登録が完了しました。",
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, "登録が完了しました。") {
		t.Error("flash message should appear in the output")
	}
	if !strings.Contains(body, "flash-success") {
		t.Error("flash category should drive the CSS class")
	}
}

// 編集フォームは既存メモの内容で事前入力される
func TestRender_NoteForm_PrefilledForEdit(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := httptest.NewRecorder()
	err = renderer.Render(w, "note_form", &PageData{
		Title: "メモを編集",
		Note: &model.Note{
			ID:        5,
			Title:     "既存タイトル",
			Content:   "既存本文",
			CreatedAt: now,
			UpdatedAt: now,
		},
		FormAction: "/note/edit/5",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, `value="既存タイトル"`) {
		t.Error("edit form should pre-fill the title")
	}
	if !strings.Contains(body, "既存本文") {
		t.Error("edit form should pre-fill the content")
	}
	if !strings.Contains(body, `action="/note/edit/5"`) {
		t.Error("edit form should post to the edit URL")
	}
}
