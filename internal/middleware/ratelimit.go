// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

var ErrRateLimited = errors.New("rate limited")

type RateLimitConfig struct {
	Limit redis_rate.Limit
	// KeyFunc defaults to KeyByIP.
	KeyFunc    func(*http.Request) string
	BypassFunc func(*http.Request) bool
}

// RateLimiter counts requests in Redis and falls back to an in-process
// token bucket per key while Redis is unreachable.
type RateLimiter struct {
	redis    *redis_rate.Limiter
	fallback *localLimiter
	cfg      RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}

	return &RateLimiter{
		redis:    redis_rate.NewLimiter(rdb),
		fallback: newLocalLimiter(),
		cfg:      cfg,
	}
}

// Janitor evicts idle fallback buckets until ctx is cancelled.
func (rl *RateLimiter) Janitor(ctx context.Context) {
	ticker := time.NewTicker(fallbackSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.fallback.evictIdleSince(now.Add(-fallbackIdleTTL))
		}
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.cfg.BypassFunc != nil && rl.cfg.BypassFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := rl.cfg.KeyFunc(r)

		res := rl.allow(r.Context(), key)
		writeLimitHeaders(w.Header(), res)
		if res.Allowed > 0 {
			next.ServeHTTP(w, r)
			return
		}

		retry := max(int(res.RetryAfter.Seconds()), 1)
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		core.JSONError(w, core.NewAppError(
			ErrRateLimited,
			fmt.Sprintf("Too many requests. Try again in %d seconds.", retry),
			http.StatusTooManyRequests,
			"RATE_LIMITED",
		))
	})
}

// allow never fails: a Redis error hands the decision to the local buckets.
func (rl *RateLimiter) allow(ctx context.Context, key string) *redis_rate.Result {
	res, err := rl.redis.Allow(ctx, key, rl.cfg.Limit)
	if err == nil {
		return res
	}
	slog.DebugContext(ctx, "rate limiter using local fallback",
		"key", key,
		"error", err,
	)
	return rl.fallback.allow(key, rl.cfg.Limit)
}

func writeLimitHeaders(h http.Header, res *redis_rate.Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset",
		strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
}

// KeyByIP trusts the last X-Forwarded-For hop, the one appended by our own
// proxy.
func KeyByIP(r *http.Request) string {
	return "ratelimit:ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// PerWindow allows requests per window. A burst of zero or less means the
// whole window's allowance may be spent at once.
func PerWindow(requests, burst int, window time.Duration) redis_rate.Limit {
	if burst <= 0 {
		burst = requests
	}
	return redis_rate.Limit{
		Rate:   requests,
		Burst:  burst,
		Period: window,
	}
}
