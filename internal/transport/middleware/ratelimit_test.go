package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/englishmaster-backend/internal/config"
	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
	"github.com/heartmarshall/englishmaster-backend/pkg/ctxutil"
)

func newTestLimiter(rpm, burst int) (*RateLimiter, *clockwork.FakeClock) {
	fc := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	rl := NewRateLimiter(config.RateLimitConfig{
		RequestsPerMinute: rpm,
		Burst:             burst,
		MaxClients:        100,
		IdleTTL:           time.Hour,
	}, fc)
	return rl, fc
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, remote string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = remote
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(60, 10)
	handler := rl.Limit()(okHandler())

	for i := 0; i < 10; i++ {
		rec := hit(handler, "1.2.3.4:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(60, 5)
	handler := rl.Limit()(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "1.2.3.4:1234").Code)
	}

	rec := hit(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var body respond.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.MsgTooManyRequests, body.Notification.Message)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(60, 2)
	handler := rl.Limit()(okHandler())

	for i := 0; i < 2; i++ {
		hit(handler, "1.1.1.1:1234")
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "1.1.1.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit(handler, "2.2.2.2:5678").Code)
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiter_SamePortsShareBucket(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(60, 1)
	handler := rl.Limit()(okHandler())

	assert.Equal(t, http.StatusOK, hit(handler, "1.1.1.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "1.1.1.1:2000").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	t.Parallel()

	// 60 per minute = 1 per second
	rl, fc := newTestLimiter(60, 3)
	handler := rl.Limit()(okHandler())

	for i := 0; i < 3; i++ {
		hit(handler, "3.3.3.3:1234")
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "3.3.3.3:1234").Code)

	fc.Advance(time.Second)
	assert.Equal(t, http.StatusOK, hit(handler, "3.3.3.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_UsesClientIPFromContext(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(60, 1)
	handler := ClientIP()(rl.Limit()(okHandler()))

	send := func(forwarded string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", forwarded)
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
}

func TestRateLimiter_RejectedRequestKeepsBudget(t *testing.T) {
	t.Parallel()

	rl, fc := newTestLimiter(60, 1)
	handler := rl.Limit()(okHandler())

	ctx := ctxutil.WithClientIP(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "4.4.4.4")
	send := func() int {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusTooManyRequests, send())
	}

	fc.Advance(time.Second)
	assert.Equal(t, http.StatusOK, send())
}
