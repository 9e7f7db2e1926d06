package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/onerilhan/go-point-api/internal/metrics"
	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/utils"
)

// RateLimitConfig rate limiting ayarları
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	SkipPaths         []string
	CleanupInterval   time.Duration
	IdleTimeout       time.Duration // bu süre görülmeyen IP'nin limiter'ı silinir
}

// DefaultRateLimitConfig varsayılan rate limit ayarları
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 600,
		Burst:             50,
		SkipPaths:         []string{"/health", "/metrics"},
		CleanupInterval:   10 * time.Minute,
		IdleTimeout:       30 * time.Minute,
	}
}

// ipLimiter tek bir IP için rate limiter
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware IP başına token bucket
type RateLimitMiddleware struct {
	config   *RateLimitConfig
	limiters map[string]*ipLimiter
	mutex    sync.Mutex
}

// NewRateLimitMiddleware yeni rate limit middleware oluşturur.
// Temizlik goroutine'i ctx iptal edilene kadar çalışır.
func NewRateLimitMiddleware(ctx context.Context, config *RateLimitConfig) *RateLimitMiddleware {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	m := &RateLimitMiddleware{
		config:   config,
		limiters: make(map[string]*ipLimiter),
	}

	if config.CleanupInterval > 0 {
		go m.cleanupLimiters(ctx)
	}

	return m
}

// Handler rate limiting middleware handler döner
func (rlm *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rlm.shouldSkipPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := utils.GetClientIP(r)
			allowed, remaining := rlm.checkRateLimit(clientIP)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rlm.config.RequestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				metrics.RateLimitedTotal.Inc()
				log.Warn().Str("client_ip", clientIP).Msg("Request blocked - rate limit exceeded")
				rlm.sendRateLimitResponse(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkRateLimit IP'nin rate limit'ini kontrol eder
func (rlm *RateLimitMiddleware) checkRateLimit(ip string) (allowed bool, remaining int) {
	rlm.mutex.Lock()
	defer rlm.mutex.Unlock()

	limiter, exists := rlm.limiters[ip]
	if !exists {
		every := time.Minute / time.Duration(rlm.config.RequestsPerMinute)
		limiter = &ipLimiter{limiter: rate.NewLimiter(rate.Every(every), rlm.config.Burst)}
		rlm.limiters[ip] = limiter
	}
	limiter.lastSeen = time.Now()

	allowed = limiter.limiter.Allow()
	remaining = int(limiter.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

// shouldSkipPath path kontrolü
func (rlm *RateLimitMiddleware) shouldSkipPath(path string) bool {
	return contains(rlm.config.SkipPaths, path)
}

// sendRateLimitResponse 429 body'sini standart error formatında gönderir
func (rlm *RateLimitMiddleware) sendRateLimitResponse(w http.ResponseWriter, r *http.Request) {
	retryAfter := int((time.Minute / time.Duration(rlm.config.RequestsPerMinute)).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	config := errors.DefaultErrorConfig()
	resp := newErrorResponse(w, r, http.StatusTooManyRequests, getErrorMessage(http.StatusTooManyRequests, config), config)
	resp.Details["retry_after_seconds"] = retryAfter
	resp.Details["limit_per_minute"] = rlm.config.RequestsPerMinute
	sendErrorResponse(w, r, resp)
}

// cleanupLimiters eski limiter'ları temizler
func (rlm *RateLimitMiddleware) cleanupLimiters(ctx context.Context) {
	ticker := time.NewTicker(rlm.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rlm.evictIdle(time.Now())
		}
	}
}

func (rlm *RateLimitMiddleware) evictIdle(now time.Time) {
	rlm.mutex.Lock()
	defer rlm.mutex.Unlock()

	for ip, limiter := range rlm.limiters {
		if now.Sub(limiter.lastSeen) > rlm.config.IdleTimeout {
			delete(rlm.limiters, ip)
		}
	}

	log.Debug().Int("active_limiters", len(rlm.limiters)).Msg("Rate limiter cleanup completed")
}
