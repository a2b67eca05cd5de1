package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/server/handlers"
	"github.com/iudanet/cloudsync/pkg/api"
)

// RateLimiter ограничивает число запросов на ключ в окне времени (fixed window)
type RateLimiter struct {
	buckets  map[string]*bucket
	logger   *zap.Logger
	cleanupC chan struct{}
	now      func() time.Time
	rate     int
	window   time.Duration
	mu       sync.Mutex
	stopOnce sync.Once
}

type bucket struct {
	lastRefill time.Time
	tokens     int
}

// NewRateLimiter создает новый rate limiter и запускает очистку неактивных ключей
func NewRateLimiter(rate int, window time.Duration, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		window:   window,
		logger:   logger,
		now:      time.Now,
		cleanupC: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

// cleanupOldBuckets удаляет buckets, которые не использовались дольше двух окон
func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
	}
}

// Stop останавливает cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.cleanupC)
	})
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.lastRefill) >= rl.window {
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[key] = b
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Middleware ограничивает запросы по устройству из токена, а для анонимных по IP адресу
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !rl.Allow(key) {
			rl.logger.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			writeError(w, http.StatusTooManyRequests, api.ErrorResponse{
				Error:   api.CodeRateLimited,
				Message: "rate limit exceeded, please try again later",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if deviceID, ok := handlers.GetDeviceID(r.Context()); ok && deviceID != "" {
		return "device:" + deviceID
	}
	return "ip:" + getClientIP(r)
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
