package middlewares

import (
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/exceptions"
	"carerouter-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token bucket per client id, used on the chat endpoints so
// one client cannot hammer the flow. Clients over the limit are blocked for
// blockTime.
type RateLimiter struct {
	log       func(err error, w http.ResponseWriter)
	limiters  map[string]*clientLimiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	idleTTL   time.Duration
	now       func() time.Time
}

func (m *Middlewares) NewRateLimiter(requests int, per, blockTime time.Duration) *RateLimiter {
	if requests < 1 {
		requests = 1
	}
	return &RateLimiter{
		log: func(err error, w http.ResponseWriter) {
			utils.BuildErrorResponse(m.Log, w, err)
		},
		limiters:  make(map[string]*clientLimiter),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		idleTTL:   10 * time.Minute,
		now:       time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		key := utils.GetClientID(req.Context())
		if key == "" {
			key = utils.GetClientIP(req)
		}

		r.mu.Lock()
		now := r.now()

		if blockedUntil, found := r.blocked[key]; found {
			if now.Before(blockedUntil) {
				r.mu.Unlock()
				r.reject(w, blockedUntil.Sub(now))
				return
			}
			delete(r.blocked, key)
		}

		entry, exists := r.limiters[key]
		if !exists {
			entry = &clientLimiter{limiter: rate.NewLimiter(rate.Every(r.per/time.Duration(r.requests)), r.requests)}
			r.limiters[key] = entry
		}
		entry.lastSeen = now
		allowed := entry.limiter.AllowN(now, 1)
		if !allowed {
			r.blocked[key] = now.Add(r.blockTime)
		}
		r.mu.Unlock()

		if !allowed {
			r.reject(w, r.blockTime)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) reject(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int(retryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(seconds))
	r.log(exceptions.ErrTooManyRequests(errors.New(constvars.ErrDevRateLimited)), w)
}

// Sweep forgets clients that have been quiet for a while.
func (r *RateLimiter) Sweep(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.limiters, key)
			removed++
		}
	}
	for key, until := range r.blocked {
		if now.After(until) {
			delete(r.blocked, key)
		}
	}
	return removed, nil
}
