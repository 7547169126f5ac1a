package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implements a token bucket. The feed client takes a token
// per request so bulk backfills stay inside the Socrata courtesy limits.
type RateLimiter struct {
	tokens chan struct{}
	ticker *time.Ticker
	rate   time.Duration
	burst  int
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a rate limiter that refills one token every rate interval,
// holding at most burst tokens.
func New(rate time.Duration, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	rl := &RateLimiter{
		tokens: make(chan struct{}, burst),
		rate:   rate,
		burst:  burst,
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < burst; i++ {
		rl.tokens <- struct{}{}
	}

	rl.start()
	return rl
}

// NewPerSecond creates a limiter allowing requestsPerSecond sustained
// throughput with the given burst headroom.
func NewPerSecond(requestsPerSecond, burst int) *RateLimiter {
	if requestsPerSecond < 1 {
		requestsPerSecond = 1
	}
	return New(time.Second/time.Duration(requestsPerSecond), burst)
}

// Wait blocks until a token is available or the context is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	select {
	case <-rl.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-rl.ctx.Done():
		return rl.ctx.Err()
	}
}

// TryAcquire attempts to take a token without blocking.
func (rl *RateLimiter) TryAcquire() bool {
	select {
	case <-rl.tokens:
		return true
	default:
		return false
	}
}

func (rl *RateLimiter) start() {
	rl.ticker = time.NewTicker(rl.rate)
	rl.wg.Add(1)

	go func() {
		defer rl.wg.Done()
		defer rl.ticker.Stop()

		for {
			select {
			case <-rl.ticker.C:
				select {
				case rl.tokens <- struct{}{}:
				default:
					// Bucket is full, drop token
				}
			case <-rl.ctx.Done():
				return
			}
		}
	}()
}

// Close stops token generation.
func (rl *RateLimiter) Close() {
	rl.cancel()
	rl.wg.Wait()
}

// Stats returns current limiter state.
func (rl *RateLimiter) Stats() (available, capacity int, rate time.Duration) {
	return len(rl.tokens), rl.burst, rl.rate
}
