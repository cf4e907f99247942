package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/englishmaster-backend/internal/config"
	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
	"github.com/heartmarshall/englishmaster-backend/pkg/ctxutil"
)

// RateLimiter implements per-client token bucket rate limiting. Buckets of
// clients idle for longer than IdleTTL are dropped.
type RateLimiter struct {
	mu      sync.Mutex
	clients *expirable.LRU[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
	clock   clockwork.Clock
}

// NewRateLimiter creates a rate limiter from the config.
func NewRateLimiter(cfg config.RateLimitConfig, clock clockwork.Clock) *RateLimiter {
	burst := max(cfg.Burst, 1)
	size := cfg.MaxClients
	if size <= 0 {
		size = 10000
	}
	return &RateLimiter{
		clients: expirable.NewLRU[string, *rate.Limiter](size, nil, cfg.IdleTTL),
		limit:   rate.Limit(float64(cfg.RequestsPerMinute) / 60.0),
		burst:   burst,
		clock:   clock,
	}
}

// Limit returns middleware that rejects requests over the client's budget
// with 429 and a Retry-After header.
func (rl *RateLimiter) Limit() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := ctxutil.ClientIPFromCtx(r.Context())
			if !ok {
				key = clientIP(r)
			}

			if wait, allowed := rl.allow(key); !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				respond.Notification(w, http.StatusTooManyRequests, domain.Failure(domain.MsgTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Len reports how many clients are currently tracked.
func (rl *RateLimiter) Len() int {
	return rl.clients.Len()
}

func (rl *RateLimiter) allow(key string) (wait time.Duration, ok bool) {
	now := rl.clock.Now()

	rl.mu.Lock()
	lim, found := rl.clients.Get(key)
	if !found {
		lim = rate.NewLimiter(rl.limit, rl.burst)
	}
	rl.clients.Add(key, lim)
	rl.mu.Unlock()

	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return 0, false
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return d, false
	}
	return 0, true
}
