// Package view はハンドラーの出力をHTMLに描画するテンプレートレンダラーを提供する。
// テンプレートはバイナリに埋め込み、業務ロジックは一切持たない。
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/hitoshi/memopad/internal/flash"
	"github.com/hitoshi/memopad/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pages は描画可能なページテンプレートの一覧。
var pages = []string{"login", "register", "dashboard", "note_form", "note_view"}

// PageData はテンプレートに渡す描画データ。
// ページごとに使用するフィールドは異なり、未使用フィールドはゼロ値のままでよい。
type PageData struct {
	Title     string
	Identity  *model.Identity
	Flash     *flash.Flash
	CSRFToken string

	// dashboard
	Notes []*model.Note

	// note_form / note_view
	Note       *model.Note
	FormAction string
}

// Renderer はレイアウトと各ページテンプレートを結合したテンプレート群を保持する。
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer は埋め込みテンプレートを解析してRendererを生成する。
// テンプレートの不備は起動時に検出される。
func NewRenderer() (*Renderer, error) {
	ts := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", page, err)
		}
		ts[page] = t
	}
	return &Renderer{templates: ts}, nil
}

// Render は指定ページをレイアウトに埋め込んで描画する。
// 描画途中のエラーで不完全なレスポンスを返さないよう、一度バッファに書き出してから送信する。
func (r *Renderer) Render(w http.ResponseWriter, page string, data *PageData) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template: %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render template %q: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
