package solvedac

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/felixgeelhaar/fortify/retry"
)

// ResilientConfig tunes the resilience decorator around a Client.
type ResilientConfig struct {
	// Budget is the number of upstream calls allowed per Window.
	// The default stays under solved.ac's own limit with headroom.
	Budget int

	// Window is the rate-limit accounting window.
	Window time.Duration

	// MaxAttempts bounds retries for transient failures.
	MaxAttempts int
}

// DefaultResilientConfig mirrors the hosted deployment's budget of
// 200 calls per 15 minutes.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		Budget:      200,
		Window:      15 * time.Minute,
		MaxAttempts: 3,
	}
}

// Resilient decorates a Client with a client-side rate budget, a circuit
// breaker, and bounded retry for transient failures. NotFound and
// RateLimited errors pass through untouched; only ErrUnavailable is retried.
type Resilient struct {
	inner   Client
	limiter ratelimit.RateLimiter
	breaker circuitbreaker.CircuitBreaker[any]
	retrier retry.Retry[any]
	window  time.Duration
}

// WithResilience wraps a Client with the fortify resilience stack.
func WithResilience(inner Client, cfg ResilientConfig) *Resilient {
	if cfg.Budget <= 0 {
		cfg.Budget = 200
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	return &Resilient{
		inner:  inner,
		window: cfg.Window,
		limiter: ratelimit.New(&ratelimit.Config{
			Rate:     cfg.Budget,
			Burst:    cfg.Budget / 10,
			Interval: cfg.Window,
		}),
		breaker: circuitbreaker.New[any](circuitbreaker.Config{
			MaxRequests: 2,
			Interval:    30 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		retrier: retry.New[any](retry.Config{
			MaxAttempts:   cfg.MaxAttempts,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
			IsRetryable:   isTransient,
		}),
	}
}

// isTransient reports whether the resilience stack should retry.
func isTransient(err error) bool {
	var unavail *ErrUnavailable
	return errors.As(err, &unavail)
}

func (r *Resilient) User(ctx context.Context, handle string) (*User, error) {
	v, err := r.execute(ctx, func(ctx context.Context) (any, error) {
		return r.inner.User(ctx, handle)
	})
	if err != nil {
		return nil, err
	}
	return v.(*User), nil
}

func (r *Resilient) TagStats(ctx context.Context, handle string) ([]TagStat, error) {
	v, err := r.execute(ctx, func(ctx context.Context) (any, error) {
		return r.inner.TagStats(ctx, handle)
	})
	if err != nil {
		return nil, err
	}
	return v.([]TagStat), nil
}

func (r *Resilient) LevelStats(ctx context.Context, handle string) ([]LevelStat, error) {
	v, err := r.execute(ctx, func(ctx context.Context) (any, error) {
		return r.inner.LevelStats(ctx, handle)
	})
	if err != nil {
		return nil, err
	}
	return v.([]LevelStat), nil
}

func (r *Resilient) execute(ctx context.Context, op func(context.Context) (any, error)) (any, error) {
	if !r.limiter.Allow(ctx, "solvedac") {
		return nil, &ErrRateLimited{
			RetryAfter: r.window / 10,
			Err:        errors.New("client-side API budget exhausted"),
		}
	}
	return r.breaker.Execute(ctx, func(ctx context.Context) (any, error) {
		return r.retrier.Do(ctx, op)
	})
}

// Close releases limiter resources.
func (r *Resilient) Close() error {
	return r.limiter.Close()
}
