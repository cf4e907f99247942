package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/englishmaster-backend/pkg/ctxutil"
)

func TestChain_OuterFirst(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+" in")
				next.ServeHTTP(w, r)
				order = append(order, name+" out")
			})
		}
	}

	h := Chain(tag("outer"), tag("inner"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer in", "inner in", "handler", "inner out", "outer out"}, order)
}

func TestChain_RequestIDAndClientIP(t *testing.T) {
	t.Parallel()

	var (
		id, ip       string
		hasID, hasIP bool
	)
	h := Chain(RequestID(), ClientIP())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = ctxutil.RequestIDFromCtx(r.Context())
		hasID = id != ""
		ip, hasIP = ctxutil.ClientIPFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:52000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, hasID)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	assert.True(t, hasIP)
	assert.Equal(t, "198.51.100.7", ip)
}
