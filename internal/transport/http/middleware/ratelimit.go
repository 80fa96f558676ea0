package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ec5/ec5-api/internal/domain"
	"golang.org/x/time/rate"
)

const (
	sweepEvery = 5 * time.Minute
	idleAfter  = 10 * time.Minute
)

// bucket is one client's token bucket and when it last asked for a token.
type bucket struct {
	tokens *rate.Limiter
	seen   time.Time
}

// RateLimiter hands out a token bucket per client IP. Buckets idle for
// longer than idleAfter are swept.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	every   rate.Limit
	burst   int
	resp    *ErrorResponder
}

// NewRateLimiter creates a per-IP limiter: every requests/second, burst up
// to burst requests. Rejections are answered with ec5_255 through resp.
func NewRateLimiter(every rate.Limit, burst int, resp *ErrorResponder) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		every:   every,
		burst:   burst,
		resp:    resp,
	}
	go rl.sweep(time.NewTicker(sweepEvery))
	return rl
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: rate.NewLimiter(rl.every, rl.burst)}
		rl.buckets[ip] = b
	}
	b.seen = now
	rl.mu.Unlock()
	return b.tokens.AllowN(now, 1)
}

func (rl *RateLimiter) sweep(t *time.Ticker) {
	for now := range t.C {
		rl.evictIdle(now)
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.buckets {
		if now.Sub(b.seen) > idleAfter {
			delete(rl.buckets, ip)
		}
	}
}

// Limit is the middleware handler that enforces the rate limit per remote IP.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r), time.Now()) {
			rl.resp.Respond(w, r, domain.CodeTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the connection address without its port. Forwarding headers
// are only honoured when chi's RealIP middleware runs in front for a trusted
// proxy and rewrites RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
