package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"fstore-be/internal/auth"
	"fstore-be/internal/utils"

	"golang.org/x/time/rate"
)

type tier struct {
	name  string
	limit rate.Limit
	burst int
}

var (
	// sign-up and explicit auth actions
	tierStrict  = tier{"strict", rate.Limit(2), 5}
	tierGeneral = tier{"general", rate.Limit(10), 20}
	// storefront clients that poll menus and carts
	tierFrontend = tier{"frontend", rate.Limit(20), 40}
	// trusted services presenting the internal secret
	tierInternal = tier{"internal", rate.Limit(100), 200}
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per caller and tier.
type Limiter struct {
	internalKey string

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewLimiter(internalKey string) *Limiter {
	return &Limiter{internalKey: internalKey, visitors: make(map[string]*visitor)}
}

// StartCleanup evicts idle buckets until stop is closed.
func (l *Limiter) StartCleanup(stop <-chan struct{}) {
	ticker := time.NewTicker(cleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				l.evictIdle(now)
			}
		}
	}()
}

func (l *Limiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) get(key string, t tier) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Middleware rejects callers that exhausted their bucket with 429. Requests
// on the internal tier are marked on the context.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := l.resolveTier(r)
		key := callerIdentity(r) + ":" + t.name

		if !l.get(key, t).Allow() {
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		if t == tierInternal {
			r = r.WithContext(utils.WithInternalRequest(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) resolveTier(r *http.Request) tier {
	if auth.IsServiceCall(r, l.internalKey) {
		return tierInternal
	}
	if r.URL.Path == "/api/users/register" || r.Header.Get("X-Action") == "auth" {
		return tierStrict
	}
	if r.Header.Get("X-Client-Type") == "frontend-heavy" {
		return tierFrontend
	}
	return tierGeneral
}

// callerIdentity prefers the authenticated user, then a client device id,
// then the remote IP.
func callerIdentity(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return fmt.Sprintf("user:%d", userID)
	}
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
