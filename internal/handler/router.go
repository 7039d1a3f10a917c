package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/memopad/internal/metrics"
	"github.com/hitoshi/memopad/internal/middleware"
	"github.com/hitoshi/memopad/internal/view"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker   HealthChecker
	SessionFinder   middleware.SessionFinder
	MetricsRecorder middleware.HTTPMetricsRecorder
	MetricsGatherer prometheus.Gatherer
	Logger          *slog.Logger
	CSRFConfig      middleware.CSRFConfig

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// メモ
	NoteService NoteServiceInterface

	// ビュー
	Renderer *view.Renderer
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Metrics → Logging → CSRF →（保護ルートのみ）Session
//
// /health と /metrics はアプリケーションのミドルウェアチェーンの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	authHandler := NewAuthHandler(deps.AuthService, deps.SessionFinder, deps.Renderer, deps.AuthConfig)
	noteHandler := NewNoteHandler(deps.NoteService, deps.Renderer, deps.AuthConfig.Cookies)

	// --- 運用用ルート（ミドルウェアチェーンの外） ---

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := deps.HealthChecker.PingContext(req.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- アプリケーションルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRecoveryMiddleware())
		r.Use(middleware.NewSecurityHeadersMiddleware())
		if deps.MetricsRecorder != nil {
			r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
		}
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

		// 認証不要のルート
		r.Get("/", authHandler.Index)
		r.Get("/register", authHandler.ShowRegister)
		r.Post("/register", authHandler.Register)
		r.Get("/login", authHandler.ShowLogin)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)

		// 認証が必要なルート
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))

			r.Get("/dashboard", noteHandler.Dashboard)

			r.Route("/note", func(r chi.Router) {
				r.Get("/create", noteHandler.ShowCreate)
				r.Post("/create", noteHandler.Create)
				r.Get("/edit/{noteID}", noteHandler.ShowEdit)
				r.Post("/edit/{noteID}", noteHandler.Edit)
				r.Get("/delete/{noteID}", noteHandler.Delete)
				r.Get("/view/{noteID}", noteHandler.View)
			})
		})
	})

	return r
}
