package retry

import (
	"time"

	"orderflow/internal/pkg/errs"
)

// Defaults for the backoff policy. Base and cap are placeholders rather than
// a mandated contract; deployments tune them through configuration.
const (
	DefaultBaseDelay   = time.Second
	DefaultMaxDelay    = 30 * time.Second
	DefaultMaxAttempts = 3
)

// Backoff is the retry policy applied to failed deliveries: exponential
// delay base*2^(attempt-1), capped at Max, with at most MaxAttempts attempts
// before dead-lettering.
type Backoff struct {
	base        time.Duration
	max         time.Duration
	maxAttempts int
}

// NewBackoff creates a validated backoff policy.
func NewBackoff(base, maxDelay time.Duration, maxAttempts int) (Backoff, error) {
	if base <= 0 {
		return Backoff{}, errs.NewValueIsInvalidError("backoff base delay")
	}
	if maxDelay < base {
		return Backoff{}, errs.NewValueIsOutOfRangeError("backoff max delay", maxDelay, base, "unbounded")
	}
	if maxAttempts < 1 {
		return Backoff{}, errs.NewValueIsOutOfRangeError("backoff max attempts", maxAttempts, 1, "unbounded")
	}

	return Backoff{base: base, max: maxDelay, maxAttempts: maxAttempts}, nil
}

// DefaultBackoff returns the policy with default base, cap and attempts.
func DefaultBackoff() Backoff {
	backoff, _ := NewBackoff(DefaultBaseDelay, DefaultMaxDelay, DefaultMaxAttempts)
	return backoff
}

// MaxAttempts returns the number of failed attempts after which a delivery
// is dead-lettered.
func (b Backoff) MaxAttempts() int {
	return b.maxAttempts
}

// Delay returns the wait before the attempt following the given failed
// attempt number (1-based): base*2^(attempt-1), capped at the maximum.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := b.base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= b.max {
			return b.max
		}
	}
	if delay > b.max {
		return b.max
	}
	return delay
}
