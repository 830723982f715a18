package gemini

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

const (
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 2 * time.Second
	defaultRetryMaxDelay  = 30 * time.Second
	defaultRetryJitterMax = 750 * time.Millisecond

	// Rate-limit errors back off harder than other transient failures.
	rateLimitDelayFactor = 3
)

// RetryPolicy decides whether and how long to wait before retrying a failed
// remote call.
type RetryPolicy struct {
	// MaxAttempts is the total attempt budget, including the first call.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// JitterMax bounds the uniform random perturbation added to every delay
	// so concurrent calls do not retry in lockstep.
	JitterMax time.Duration
	// RetryAllErrors widens the retry scope from rate-limit errors only to
	// any error kind. Decode failures are excluded either way.
	RetryAllErrors bool
}

// DefaultRetryPolicy returns the policy applied when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaultRetryAttempts,
		BaseDelay:   defaultRetryBaseDelay,
		MaxDelay:    defaultRetryMaxDelay,
		JitterMax:   defaultRetryJitterMax,
	}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultRetryAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultRetryBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = defaultRetryMaxDelay
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	if p.JitterMax < 0 {
		p.JitterMax = defaultRetryJitterMax
	}
	return p
}

// retryState tracks the remaining budget for one logical call. Each call gets
// a fresh state; it is never shared across operations.
type retryState struct {
	attemptsRemaining int
	baseDelay         time.Duration
}

func (p RetryPolicy) newState() retryState {
	return retryState{
		attemptsRemaining: p.MaxAttempts,
		baseDelay:         p.BaseDelay,
	}
}

// next consumes one attempt from state and reports the delay before the
// following attempt, or false when the call must fail permanently. The base
// component is monotonically non-decreasing across attempts.
func (p RetryPolicy) next(ctx context.Context, state *retryState, err error, jitter func(time.Duration) time.Duration) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}
	state.attemptsRemaining--
	if state.attemptsRemaining <= 0 {
		return 0, false
	}
	if ctx != nil && ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}
	if IsMalformedPayload(err) {
		return 0, false
	}

	rateLimited := IsRateLimited(err)
	if !rateLimited && !p.RetryAllErrors {
		return 0, false
	}

	delay := state.baseDelay
	if rateLimited {
		delay *= rateLimitDelayFactor
	}
	// Honour an explicit Retry-After from the service when it is longer than
	// the computed backoff.
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > delay {
		delay = apiErr.RetryAfter
	}
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if jitter == nil {
		jitter = defaultJitter
	}
	delay += jitter(p.JitterMax)

	// Double the base for the next attempt, capped so repeated rate limits do
	// not grow without bound.
	state.baseDelay *= 2
	if state.baseDelay > p.MaxDelay {
		state.baseDelay = p.MaxDelay
	}

	return delay, true
}

func defaultJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return rand.N(max)
}

// classification labels an error for retry observability events.
func classification(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsRateLimited(err):
		return "rate-limited"
	case IsMalformedPayload(err):
		return "malformed-payload"
	default:
		return "other"
	}
}
