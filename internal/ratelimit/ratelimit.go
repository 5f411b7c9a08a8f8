// Package ratelimit provides request limiters built on golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a per-minute constructor.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a new rate limiter.
// requestsPerMinute specifies how many requests are allowed per minute.
func New(requestsPerMinute int) *Limiter {
	return &Limiter{limiter: newLimiter(requestsPerMinute)}
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	rps := float64(requestsPerMinute) / 60.0
	burst := requestsPerMinute / 10 // Allow burst of 10% of rate limit
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Allow reports whether an event may happen now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Tokens returns the current number of available tokens.
func (l *Limiter) Tokens() float64 {
	return l.limiter.Tokens()
}

// Keyed holds one limiter per key, e.g. per client address. Keys idle for
// longer than the idle window are dropped on the next sweep.
type Keyed struct {
	mu                sync.Mutex
	requestsPerMinute int
	idle              time.Duration
	clients           map[string]*client
	lastSweep         time.Time
	now               func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyed creates a per-key limiter with the same rate for every key.
func NewKeyed(requestsPerMinute int, idle time.Duration) *Keyed {
	return &Keyed{
		requestsPerMinute: requestsPerMinute,
		idle:              idle,
		clients:           make(map[string]*client),
		now:               time.Now,
	}
}

// Allow reports whether key may make a request now.
func (k *Keyed) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	k.sweep(now)

	c, ok := k.clients[key]
	if !ok {
		c = &client{limiter: newLimiter(k.requestsPerMinute)}
		k.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.clients)
}

func (k *Keyed) sweep(now time.Time) {
	if k.idle <= 0 || now.Sub(k.lastSweep) < k.idle {
		return
	}
	for key, c := range k.clients {
		if now.Sub(c.lastSeen) > k.idle {
			delete(k.clients, key)
		}
	}
	k.lastSweep = now
}
