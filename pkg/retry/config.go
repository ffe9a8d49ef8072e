package retry

import (
	"time"

	"github.com/niels/tinyhttp/pkg/config"
)

// FromConfig creates retry options from the application configuration.
// Delays and the backoff factor fall back to DefaultOptions when unset;
// a zero retry count or jitter factor is taken as given.
func FromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if !cfg.Retry.Enabled {
		opts.MaxRetries = 0
		return opts
	}

	opts.MaxRetries = cfg.Retry.MaxRetries
	opts.JitterFactor = cfg.Retry.JitterFactor
	if cfg.Retry.InitialDelay > 0 {
		opts.InitialDelay = time.Duration(cfg.Retry.InitialDelay) * time.Millisecond
	}
	if cfg.Retry.MaxDelay > 0 {
		opts.MaxDelay = time.Duration(cfg.Retry.MaxDelay) * time.Millisecond
	}
	if cfg.Retry.BackoffFactor > 0 {
		opts.BackoffFactor = cfg.Retry.BackoffFactor
	}

	opts.RetryableErrors = make([]string, len(cfg.Retry.RetryableErrors))
	copy(opts.RetryableErrors, cfg.Retry.RetryableErrors)

	return opts
}
