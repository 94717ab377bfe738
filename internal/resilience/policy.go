package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/cenkalti/backoff/v5"
)

// Policy bounds every storage call: a per-attempt timeout plus capped exponential
// backoff with jitter. Only errors classified as transient are retried.
type Policy struct {
	MaxAttempts         uint
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	MaxElapsed          time.Duration
	CallTimeout         time.Duration
	Multiplier          float64
	RandomizationFactor float64
	// Classify decides whether an error is worth another attempt. Defaults to IsTransient.
	Classify func(error) bool
}

// DefaultPolicy returns the policy used when no configuration overrides it.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:         4,
		InitialInterval:     100 * time.Millisecond,
		MaxInterval:         2 * time.Second,
		MaxElapsed:          10 * time.Second,
		CallTimeout:         3 * time.Second,
		Multiplier:          2,
		RandomizationFactor: 0.5,
	}
}

func (p Policy) classify(err error) bool {
	if p.Classify != nil {
		return p.Classify(err)
	}
	return IsTransient(err)
}

func (p Policy) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	if p.Multiplier > 0 {
		b.Multiplier = p.Multiplier
	}
	if p.RandomizationFactor > 0 {
		b.RandomizationFactor = p.RandomizationFactor
	}
	return b
}

// Do runs fn under the policy. A transient failure that survives every attempt is
// returned as a RetryExhausted engine error wrapping the last underlying error;
// any other failure is returned unchanged after the first attempt.
func Do[T any](ctx context.Context, p Policy, op string, fn func(context.Context) (T, error)) (T, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	var last error
	attempts := 0

	result, err := backoff.Retry(ctx, func() (T, error) {
		attempts++
		callCtx := ctx
		if p.CallTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.CallTimeout)
			defer cancel()
		}

		v, err := fn(callCtx)
		if err == nil {
			return v, nil
		}
		last = err
		// the caller's own deadline or cancellation is never retried
		if ctx.Err() != nil || !p.classify(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(p.newBackOff()),
		backoff.WithMaxTries(maxTries(p.MaxAttempts)),
		backoff.WithMaxElapsedTime(p.MaxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("Retrying transient storage failure",
				slog.String("operation", op),
				slog.Int("attempt", attempts),
				slog.Duration("next_in", next),
				slog.String("error", err.Error()))
		}),
	)
	if err == nil {
		return result, nil
	}

	var zero T
	if last == nil {
		// never ran: caller context was already done
		return zero, err
	}
	if ctx.Err() == nil && p.classify(last) {
		logger.Error("Retries exhausted",
			slog.String("operation", op),
			slog.Int("attempts", attempts),
			slog.String("error", last.Error()))
		return zero, apperrors.WrapEngineError(apperrors.CodeRetryExhausted, op+" failed after retries", last)
	}
	return zero, last
}

// DoErr is Do for operations without a result.
func DoErr(ctx context.Context, p Policy, op string, fn func(context.Context) error) error {
	_, err := Do(ctx, p, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func maxTries(n uint) uint {
	if n == 0 {
		return 1
	}
	return n
}

// errTransient marks an error as retryable regardless of its concrete type.
type errTransient struct {
	err error
}

func (e *errTransient) Error() string { return e.err.Error() }
func (e *errTransient) Unwrap() error { return e.err }

// MarkTransient wraps err so IsTransient reports true for it.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return &errTransient{err: err}
}

func isMarkedTransient(err error) bool {
	var t *errTransient
	return errors.As(err, &t)
}
