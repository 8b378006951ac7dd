package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"finora-backend/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveLimited(e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/categorias/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter(1, 3)
	handler := limiter.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := serveLimited(e, handler, "192.168.1.100:12345")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i)
	}

	rec := serveLimited(e, handler, "192.168.1.100:12345")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var response errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "SYSTEM_006", response.Error.Code)
}

func TestRateLimiter_SeparateBucketsPerIP(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter(1, 1)
	handler := limiter.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serveLimited(e, handler, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveLimited(e, handler, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, serveLimited(e, handler, "10.0.0.2:1000").Code)
}

func TestRateLimiter_ConcurrentRequests(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter(1, 10)
	handler := limiter.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if serveLimited(e, handler, "172.16.0.1:1").Code == http.StatusOK {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, allowed, 10)
	assert.Less(t, allowed, 50)
}

func TestRateLimiter_CleanupEvictsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(5, 5)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.allow("10.0.0.1")
	now = now.Add(visitorTTL + time.Second)
	limiter.allow("10.0.0.2")

	limiter.cleanup()

	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}
