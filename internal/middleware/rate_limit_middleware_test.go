package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gomarket/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type memoryLimitStore struct {
	mu      sync.Mutex
	counts  map[string]int64
	failing bool
}

func (m *memoryLimitStore) Increment(_ context.Context, key string) (int64, error) {
	if m.failing {
		return 0, errors.New("connection refused")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryLimitStore) SetExpire(context.Context, string, time.Duration) error {
	return nil
}

func limiterRouter(store *memoryLimitStore, limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	log.SetOutput(io.Discard)

	router := gin.New()
	router.POST("/verify", RateLimitMiddleware(store, log, "pickup", limit, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	router := limiterRouter(&memoryLimitStore{}, 5)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/verify", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/verify", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "sixth request in the window is throttled")
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	router := limiterRouter(&memoryLimitStore{failing: true}, 1)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/verify", nil))
		assert.Equal(t, http.StatusOK, w.Code, "limiter outage must not block pickups")
	}
}
