// Package ratelimit provides per-client request limiting using a token
// bucket per remote address.
package ratelimit

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config controls bucket capacity and refill rate.
type Config struct {
	// Capacity is the burst size per client.
	Capacity int
	// RefillPerSecond is the steady-state request rate per client.
	RefillPerSecond float64
	// Disabled turns the limiter into a pass-through.
	Disabled bool
}

// LoadConfig reads limiter settings from the environment: RATE_LIMIT_BURST
// (default 20), RATE_LIMIT_PER_SECOND (default 5) and RATE_LIMIT_DISABLED.
func LoadConfig() Config {
	cfg := Config{Capacity: 20, RefillPerSecond: 5}

	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Capacity = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RefillPerSecond = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_DISABLED"); v != "" {
		disabled, err := strconv.ParseBool(v)
		cfg.Disabled = err == nil && disabled
	}
	return cfg
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter tracks one token bucket per client key.
type Limiter struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewLimiter creates a limiter with the given configuration.
func NewLimiter(cfg Config) *Limiter {
	return &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether the client identified by key may proceed, consuming
// one token if so.
func (l *Limiter) Allow(key string) bool {
	if l.cfg.Disabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Capacity), lastRefill: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * l.cfg.RefillPerSecond
	if b.tokens > float64(l.cfg.Capacity) {
		b.tokens = float64(l.cfg.Capacity)
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Middleware rejects over-limit requests with 429. Clients are keyed by
// remote IP.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !l.Allow(host) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
