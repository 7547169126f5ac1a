package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// PooledRateLimiter manages one limiter per feed host. Courtesy limits
// apply per host, so rotating between mirrors must not share a bucket.
type PooledRateLimiter struct {
	limiters map[string]*RateLimiter
	mutex    sync.RWMutex
	rate     time.Duration
	burst    int
}

func NewPooled(rate time.Duration, burst int) *PooledRateLimiter {
	return &PooledRateLimiter{
		limiters: make(map[string]*RateLimiter),
		rate:     rate,
		burst:    burst,
	}
}

// Wait blocks until the named host's bucket yields a token.
func (p *PooledRateLimiter) Wait(ctx context.Context, host string) error {
	limiter := p.getLimiter(host)
	return limiter.Wait(ctx)
}

// TryAcquire attempts to take a token for the host without blocking.
func (p *PooledRateLimiter) TryAcquire(host string) bool {
	limiter := p.getLimiter(host)
	return limiter.TryAcquire()
}

func (p *PooledRateLimiter) getLimiter(host string) *RateLimiter {
	p.mutex.RLock()
	limiter, exists := p.limiters[host]
	p.mutex.RUnlock()

	if exists {
		return limiter
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Double-check in case another goroutine created it
	if limiter, exists := p.limiters[host]; exists {
		return limiter
	}

	limiter = New(p.rate, p.burst)
	p.limiters[host] = limiter
	return limiter
}

// Close closes all per-host limiters.
func (p *PooledRateLimiter) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for _, limiter := range p.limiters {
		limiter.Close()
	}
	p.limiters = make(map[string]*RateLimiter)
}

// Stats returns per-host limiter state.
func (p *PooledRateLimiter) Stats() map[string]map[string]any {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	stats := make(map[string]map[string]any)
	for host, limiter := range p.limiters {
		available, capacity, rate := limiter.Stats()
		stats[host] = map[string]any{
			"available_tokens": available,
			"capacity":         capacity,
			"rate_ms":          rate.Milliseconds(),
		}
	}
	return stats
}
