package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker はデータストアの疎通確認インターフェース。
// *sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// healthResponse はヘルスチェックのレスポンス。
// databaseフィールドでストアの疎通状態を報告する（DB未接続でもAPIは稼働を続けるため）。
type healthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler はHealthHandlerを生成する。
// checkerがnilの場合はストア未接続として扱う。
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health はサービスの稼働状態を返す。
// GET /health
// DB接続が失われていても200を返す。ヘルスチェックの可用性を
// fail-fastより優先する方針のため。
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := "ok"
	if h.checker == nil {
		database = "unavailable"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.checker.PingContext(ctx); err != nil {
			database = "unavailable"
		}
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   "surplus-server",
		Timestamp: time.Now().UTC(),
		Database:  database,
	})
}
