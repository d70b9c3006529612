// Package api exposes the gateway's read surface over HTTP. Writes stay on
// the wallet path; the API serves normalized chain reads and the event index.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/internal/metrics"
	apphttp "github.com/liptlabs/lipt-gateway/pkg/app/http"
	"github.com/liptlabs/lipt-gateway/pkg/eventstore"
	"github.com/liptlabs/lipt-gateway/pkg/protocol"
)

// Chain is the protocol read surface the API needs. *protocol.Protocol
// satisfies it.
type Chain interface {
	GetStakingPlans(ctx context.Context) protocol.Result[[]protocol.StakingPlan]
	GetMiningPlans(ctx context.Context) protocol.Result[[]protocol.MiningPlan]
	GetLiquidityPoolData(ctx context.Context, user *common.Address) protocol.Result[protocol.LiquidityPoolData]
	GetWheelSegments(ctx context.Context) protocol.Result[protocol.WheelSegments]
	GetOwnershipChain(ctx context.Context) protocol.Result[protocol.OwnershipChain]
	GetTotalSupply(ctx context.Context) protocol.Result[decimal.Decimal]
}

// Index is the event index surface the API needs. *eventstore.Store
// satisfies it.
type Index interface {
	History(ctx context.Context, userAddress string, limit, offset int) ([]eventstore.GameEventDao, error)
	Leaderboard(ctx context.Context, eventTypes []string, limit int) ([]eventstore.LeaderboardEntry, error)
	Stats(ctx context.Context) (*eventstore.Stats, error)
}

// Handler serves the gateway API.
type Handler struct {
	chain  Chain
	index  Index
	logger *zap.Logger
}

// NewHandler creates an API handler. index may be nil when the gateway runs
// without a database; history, leaderboard and stats then return 404.
func NewHandler(chain Chain, index Index, logger *zap.Logger) *Handler {
	return &Handler{chain: chain, index: index, logger: logger}
}

// Router builds the chi router with the gateway's standard middleware stack.
func (h *Handler) Router(metricsEnabled bool) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestMetrics)

	r.Get("/health", apphttp.HandleError(h.health))
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/plans", apphttp.HandleError(h.plans))
		r.Get("/pool", apphttp.HandleError(h.pool))
		r.Get("/wheel", apphttp.HandleError(h.wheel))
		r.Get("/ownership", apphttp.HandleError(h.ownership))
		r.Get("/supply", apphttp.HandleError(h.supply))
		r.Get("/stats", apphttp.HandleError(h.stats))
		r.Get("/history/{address}", apphttp.HandleError(h.history))
		r.Get("/leaderboard", apphttp.HandleError(h.leaderboard))
	})

	return r
}

// requestMetrics records request counts and latency per route pattern.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
