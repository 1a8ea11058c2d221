package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/vfg2006/investment-projection-api/pkg/apiErrors"
	"golang.org/x/time/rate"
	"github.com/vfg2006/investment-projection-api/pkg/log"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter mantém um token bucket por IP com capacidade capacity,
// reabastecido continuamente até encher em refill
type RateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	capacity    int
	clients     map[string]*clientLimiter
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(capacity int, refill time.Duration) *RateLimiter {
	limit := rate.Inf
	switch {
	case capacity <= 0:
		limit = 0
	case refill > 0:
		limit = rate.Every(refill / time.Duration(capacity))
	}

	rl := &RateLimiter{
		limit:       limit,
		capacity:    max(capacity, 0),
		clients:     make(map[string]*clientLimiter),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for ip, client := range r.clients {
		if now.Sub(client.lastSeen) > bucketCleanupThreshold {
			delete(r.clients, ip)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	client, exists := r.clients[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.capacity)}
		r.clients[ip] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1)
}

// RateLimit bloqueia com 429 os clientes que esgotaram o balde
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				log.ForContext(r.Context()).WithField("remote_ip", ip).Warn("Limite de requisições excedido")
				apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Limite de requisições excedido", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
