package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubCache implementa repository.CacheRepository en memoria para los tests
type stubCache struct {
	counts map[string]int64
	ttls   map[string]time.Duration
	incErr error
}

func newStubCache() *stubCache {
	return &stubCache{
		counts: make(map[string]int64),
		ttls:   make(map[string]time.Duration),
	}
}

func (s *stubCache) Increment(key string) (int64, error) {
	if s.incErr != nil {
		return 0, s.incErr
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *stubCache) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	return true, nil
}

func (s *stubCache) Expire(key string, expiration time.Duration) error {
	s.ttls[key] = expiration
	return nil
}

func (s *stubCache) TTL(key string) (time.Duration, error) {
	return s.ttls[key], nil
}

func newLimitedRouter(cache *stubCache, cfg RateLimitConfig) *gin.Engine {
	router := gin.New()
	router.GET("/recurso", NewRateLimiter(cache).Limit(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doRequest(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/recurso", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_DentroDelLimite(t *testing.T) {
	cache := newStubCache()
	router := newLimitedRouter(cache, StrictOTPRateLimitConfig())

	for i := 0; i < 5; i++ {
		w := doRequest(router)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// La primera petición de la ventana fija el TTL de la clave
	assert.Len(t, cache.ttls, 1)
	for _, ttl := range cache.ttls {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestRateLimiter_LimiteSuperado(t *testing.T) {
	cache := newStubCache()
	router := newLimitedRouter(cache, StrictOTPRateLimitConfig())

	var w *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		w = doRequest(router)
	}

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_RedisCaidoFailOpen(t *testing.T) {
	cache := newStubCache()
	cache.incErr = assert.AnError
	router := newLimitedRouter(cache, StrictOTPRateLimitConfig())

	// Sin contador disponible la petición pasa igualmente
	for i := 0; i < 10; i++ {
		w := doRequest(router)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
