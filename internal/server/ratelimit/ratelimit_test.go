package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsWithinBurst(t *testing.T) {
	l := NewLimiter(Config{Capacity: 3, RefillPerSecond: 1})

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client-a"), "request %d", i)
	}
	assert.False(t, l.Allow("client-a"))

	// Other clients have their own bucket.
	assert.True(t, l.Allow("client-b"))
}

func TestLimiterRefills(t *testing.T) {
	l := NewLimiter(Config{Capacity: 1, RefillPerSecond: 10})

	base := time.Now()
	l.now = func() time.Time { return base }
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))

	l.now = func() time.Time { return base.Add(200 * time.Millisecond) }
	assert.True(t, l.Allow("client"))
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(Config{Capacity: 1, RefillPerSecond: 1, Disabled: true})

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("client"))
	}
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	l := NewLimiter(Config{Capacity: 1, RefillPerSecond: 0.001})
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("RATE_LIMIT_PER_SECOND", "")
	t.Setenv("RATE_LIMIT_DISABLED", "")

	cfg := LoadConfig()
	assert.Equal(t, 20, cfg.Capacity)
	assert.Equal(t, 5.0, cfg.RefillPerSecond)
	assert.False(t, cfg.Disabled)
}
