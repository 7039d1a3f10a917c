// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// HTTPリクエストの統計と認証・メモ操作のドメインカウンタを保持する。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration prometheus.Histogram

	userRegistered prometheus.Counter
	loginSuccess   prometheus.Counter
	loginFail      prometheus.Counter

	notesCreated prometheus.Counter
	notesUpdated prometheus.Counter
	notesDeleted prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memopad_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "memopad_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		userRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memopad_users_registered_total",
			Help: "ユーザー登録成功の合計数",
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memopad_login_success_total",
			Help: "ログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memopad_login_fail_total",
			Help: "ログイン失敗の合計数",
		}),
		notesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memopad_notes_created_total",
			Help: "作成されたメモの合計数",
		}),
		notesUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memopad_notes_updated_total",
			Help: "更新されたメモの合計数",
		}),
		notesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memopad_notes_deleted_total",
			Help: "削除されたメモの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.userRegistered,
		c.loginSuccess,
		c.loginFail,
		c.notesCreated,
		c.notesUpdated,
		c.notesDeleted,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエストの処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordUserRegistered はユーザー登録成功を記録する。
func (c *Collector) RecordUserRegistered() {
	c.userRegistered.Inc()
}

// RecordLoginSuccess はログイン成功を記録する。
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure はログイン失敗を記録する。
func (c *Collector) RecordLoginFailure() {
	c.loginFail.Inc()
}

// RecordNoteCreated はメモ作成を記録する。
func (c *Collector) RecordNoteCreated() {
	c.notesCreated.Inc()
}

// RecordNoteUpdated はメモ更新を記録する。
func (c *Collector) RecordNoteUpdated() {
	c.notesUpdated.Inc()
}

// RecordNoteDeleted はメモ削除を記録する。
func (c *Collector) RecordNoteDeleted() {
	c.notesDeleted.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
