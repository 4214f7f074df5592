// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

// Counter reports how many records a store holds.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	dbPing     func(ctx context.Context) error
	redisPing  func(ctx context.Context) error
	catalog    map[string]Counter
	users      Counter
}

type HandlerConfig struct {
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	DBPing     func(ctx context.Context) error
	RedisPing  func(ctx context.Context) error
	Catalog    map[string]Counter
	Users      Counter
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		dbPing:     cfg.DBPing,
		redisPing:  cfg.RedisPing,
		catalog:    cfg.Catalog,
		users:      cfg.Users,
	}
}

// RegisterRoutes expects r to already sit behind the admin gate.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/system", h.GetSystemOverview)
}

func (h *Handler) GetSystemOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := SystemOverview{
		Database: ComponentStatus[DBPoolStats]{
			Healthy: ping(ctx, h.dbPing),
			Stats:   h.poolStats(),
		},
		Redis: ComponentStatus[RedisPoolStats]{
			Healthy: ping(ctx, h.redisPing),
			Stats:   h.cacheStats(),
		},
		Runtime: readRuntime(),
		Catalog: make(map[string]int, len(h.catalog)),
	}

	for kind, c := range h.catalog {
		n, err := c.Count(ctx)
		if err != nil {
			slog.WarnContext(ctx, "catalog count failed", "kind", kind, "error", err)
			resp.Catalog[kind] = -1
			continue
		}
		resp.Catalog[kind] = n
	}

	if h.users != nil {
		n, err := h.users.Count(ctx)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		resp.Users = n
	}

	core.OK(w, resp)
}

func ping(ctx context.Context, fn func(context.Context) error) bool {
	if fn == nil {
		return false
	}
	return fn(ctx) == nil
}

func readRuntime() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     mem.Alloc,
		MemSys:       mem.Sys,
		NumGC:        mem.NumGC,
	}
}

func (h *Handler) poolStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	s := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration.String(),
	}
}

func (h *Handler) cacheStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	s := h.redisStats()
	return &RedisPoolStats{
		Hits:       s.Hits,
		Misses:     s.Misses,
		Timeouts:   s.Timeouts,
		TotalConns: s.TotalConns,
		IdleConns:  s.IdleConns,
	}
}
