/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry retries model API calls that fail with transient errors.
package retry

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/chainguard-dev/clog"
)

// Config bounds retries of a model API call.
type Config struct {
	// MaxRetries is the number of retries after the first attempt. 0 disables retrying.
	MaxRetries int
	// BaseBackoff is the first wait.
	BaseBackoff time.Duration
	// MaxBackoff caps each wait.
	MaxBackoff time.Duration
}

// Validate rejects negative values.
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	return nil
}

// DefaultConfig suits quota errors, which take a while to clear.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  5,
		BaseBackoff: time.Second,
		MaxBackoff:  time.Minute,
	}
}

func (c Config) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.BaseBackoff
	b.MaxInterval = c.MaxBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0.25
	return b
}

// Do calls fn until it succeeds, fails with an error isRetryable rejects,
// or the retries are spent. Returned errors are prefixed with operation.
func Do[T any](ctx context.Context, cfg Config, operation string, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	log := clog.FromContext(ctx).With("operation", operation)
	attempts := 0

	result, err := backoff.Retry(ctx, func() (T, error) {
		attempts++
		v, err := fn()
		if err != nil && !isRetryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(cfg.backOff()),
		backoff.WithMaxTries(uint(cfg.MaxRetries)+1),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.With("attempt", attempts).
				With("max_retries", cfg.MaxRetries).
				With("backoff", wait).
				With("error", err.Error()).
				Warn("Transient model API error, retrying")
		}),
	)
	if err == nil {
		return result, nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return result, fmt.Errorf("%s: %w", operation, permanent.Unwrap())
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s: %w", operation, ctxErr)
	}
	if !isRetryable(err) {
		return result, fmt.Errorf("%s: %w", operation, err)
	}
	return result, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxRetries, err)
}

// transientStatus matches a retryable HTTP status where error text reports one:
// at the start ("429 Too Many Requests") or after HTTP, status or Error.
var transientStatus = regexp.MustCompile(`(?:^|HTTP[ /]|[Ss]tatus(?: [Cc]ode)?:? |Error:? )(?:429|500|502|503|504)\b`)

// transientMarkers are substrings of error text that mark a retryable failure.
var transientMarkers = []string{
	"RESOURCE_EXHAUSTED",
	"Resource exhausted",
	"UNAVAILABLE",
	"rate limit",
	"quota exceeded",
	"Overloaded",
	"overloaded",
}

// IsTransientMessage reports whether err's text looks like a rate limit or
// a temporary server failure.
func IsTransientMessage(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if transientStatus.MatchString(msg) {
		return true
	}
	for _, m := range transientMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// IsTransientStatus reports whether an HTTP status code is worth retrying.
func IsTransientStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504, 529:
		return true
	}
	return false
}
