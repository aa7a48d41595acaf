package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// clientLimiter tracks the token bucket for a single client address
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-client request budget. When Redis is configured
// it uses a shared fixed-window counter so the limit holds across replicas;
// otherwise it falls back to in-process token buckets.
type RateLimiter struct {
	config   *config.Config
	redis    *utils.RedisClient
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	logger   logging.Logger
	stop     chan struct{}
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	rl := &RateLimiter{
		config:   cfg,
		limiters: make(map[string]*clientLimiter),
		logger:   logging.GetGlobalLogger(),
		stop:     make(chan struct{}),
	}

	if cfg.RateLimit.UseRedis {
		client := utils.NewRedisClient(cfg)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		defer cancel()
		if err := client.HealthCheck(ctx); err != nil {
			rl.logger.Warn("Redis unavailable - rate limiting falls back to in-process buckets", map[string]interface{}{
				"error": err.Error(),
			})
			client.Close()
		} else {
			rl.redis = client
		}
	}

	go rl.cleanupRoutine()

	return rl
}

// Middleware returns the Echo middleware enforcing the limit
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.config.RateLimit.Enabled {
				return next(c)
			}

			clientIP := c.RealIP()
			if !rl.Allow(c.Request().Context(), clientIP) {
				rl.logger.Warn("Request rejected by rate limiter", map[string]interface{}{
					"client_ip": clientIP,
				})
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:   "rate_limited",
					Details: "Too many requests, slow down",
				})
			}

			return next(c)
		}
	}
}

// Allow checks whether a request from the given client is within budget
func (rl *RateLimiter) Allow(ctx context.Context, clientIP string) bool {
	if rl.redis != nil {
		count, err := rl.redis.IncrWindow(ctx, "ratelimit:"+clientIP, rl.config.RateLimit.Window)
		if err == nil {
			return count <= int64(rl.config.RateLimit.RequestsPerMinute)
		}
		rl.logger.Warn("Redis rate-limit check failed, using in-process bucket", map[string]interface{}{
			"error": err.Error(),
		})
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[clientIP]
	if !ok {
		perSecond := rate.Limit(float64(rl.config.RateLimit.RequestsPerMinute) / 60.0)
		cl = &clientLimiter{
			limiter: rate.NewLimiter(perSecond, rl.config.RateLimit.Burst),
		}
		rl.limiters[clientIP] = cl
	}
	cl.lastSeen = time.Now()

	return cl.limiter.Allow()
}

// Close stops the cleanup routine and releases the Redis connection
func (rl *RateLimiter) Close() error {
	close(rl.stop)
	if rl.redis != nil {
		return rl.redis.Close()
	}
	return nil
}

// cleanupRoutine prunes buckets for clients not seen recently
func (rl *RateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-15 * time.Minute)
			rl.mu.Lock()
			for ip, cl := range rl.limiters {
				if cl.lastSeen.Before(cutoff) {
					delete(rl.limiters, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}
