package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/surplusapp/surplus-server/internal/metrics"
	"github.com/surplusapp/surplus-server/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	Metrics           *metrics.Collector
	MetricsGatherer   prometheus.Gatherer

	// ドメインサービス
	ItemService       ItemServiceInterface
	FavoriteService   FavoriteServiceInterface
	OnboardingService OnboardingServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → Logging → Recovery → Metrics → RateLimit（/api のみ）
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	r.Use(middleware.NewRecoveryMiddleware())

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	healthHandler := NewHealthHandler(deps.HealthChecker)
	itemHandler := NewItemHandler(deps.ItemService)
	favoriteHandler := NewFavoriteHandler(deps.FavoriteService)
	onboardingHandler := NewOnboardingHandler(deps.OnboardingService)

	// --- レート制限の外のルート ---

	r.Get("/health", healthHandler.Health)

	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- APIルート ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		// 出品管理
		r.Route("/api/items", func(r chi.Router) {
			r.Post("/", itemHandler.CreateItem)
			r.Get("/", itemHandler.ListItems)
			r.Get("/{id}", itemHandler.GetItem)
		})

		// お気に入り管理
		r.Route("/api/favorites", func(r chi.Router) {
			r.Post("/", favoriteHandler.AddFavorite)
			r.Delete("/", favoriteHandler.RemoveFavorite)

			// /check は /{username} より先に定義する
			r.Get("/check", favoriteHandler.CheckFavorite)
			r.Get("/{username}", favoriteHandler.ListFavorites)
		})

		// オンボーディング
		r.Route("/api/onboarding", func(r chi.Router) {
			r.Post("/", onboardingHandler.SaveOnboarding)
			r.Get("/{username}", onboardingHandler.GetOnboarding)
		})
	})

	return r
}
