package retry

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/niels/tinyhttp/pkg/logging"
)

// Func is an operation that can be retried
type Func func(ctx context.Context) error

// IsRetryableFunc is a function that determines if an error is retryable
type IsRetryableFunc func(error) bool

// Options configures the retry behavior
type Options struct {
	// MaxRetries is the maximum number of retry attempts (not including the initial attempt)
	MaxRetries int

	// InitialDelay is the delay before the first retry
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries
	MaxDelay time.Duration

	// BackoffFactor is the factor by which the delay increases after each retry
	BackoffFactor float64

	// JitterFactor adds randomness to the delay (0.0 = no jitter, 1.0 = 100% jitter)
	JitterFactor float64

	// RetryableErrors lists message fragments that mark an error as retryable
	RetryableErrors []string

	// IsRetryableFunc takes precedence over RetryableErrors when set
	IsRetryableFunc IsRetryableFunc
}

// DefaultOptions returns default retry options
func DefaultOptions() Options {
	return Options{
		MaxRetries:    3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.2,
	}
}

// Do runs fn until it succeeds, returns a non-retryable error, runs out of
// attempts or ctx is done. The last error from fn is returned.
func Do(ctx context.Context, fn Func, opts Options) error {
	b := newBackoff(opts)

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				logging.DebugWith("Retry succeeded", map[string]interface{}{"attempt": attempt + 1})
			}
			return nil
		}

		if !isRetryable(err, opts) {
			return err
		}
		if attempt >= opts.MaxRetries {
			logging.DebugWith("Retries exhausted", map[string]interface{}{
				"attempts": attempt + 1,
				"error":    err,
			})
			return err
		}

		delay := b.next(attempt)

		logging.DebugWith("Retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"delay":   delay,
			"error":   err,
		})

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled: %w (last error: %v)", ctx.Err(), err)
		case <-timer.C:
		}
	}
}

func nextDelay(prev time.Duration, attempt int, opts Options) time.Duration {
	if attempt == 0 {
		return opts.InitialDelay
	}
	next := time.Duration(float64(prev) * opts.BackoffFactor)
	if opts.MaxDelay > 0 && next > opts.MaxDelay {
		next = opts.MaxDelay
	}
	return next
}

// backoff tracks the base delay separately from the jittered delay it hands out
type backoff struct {
	opts Options
	base time.Duration
	rnd  *rand.Rand
}

func newBackoff(opts Options) *backoff {
	return &backoff{opts: opts, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (b *backoff) next(attempt int) time.Duration {
	b.base = nextDelay(b.base, attempt, b.opts)
	if b.opts.JitterFactor <= 0 {
		return b.base
	}
	jitter := float64(b.base) * b.opts.JitterFactor
	return time.Duration(float64(b.base) + (b.rnd.Float64()*jitter*2 - jitter))
}

// IsRetryable reports whether the error message contains one of the fragments
func IsRetryable(err error, fragments []string) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range fragments {
		if fragment != "" && strings.Contains(msg, strings.ToLower(fragment)) {
			return true
		}
	}
	return false
}

func isRetryable(err error, opts Options) bool {
	if opts.IsRetryableFunc != nil {
		return opts.IsRetryableFunc(err)
	}
	return IsRetryable(err, opts.RetryableErrors)
}
