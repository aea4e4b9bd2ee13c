package tx

import (
	"context"
	"errors"
	"time"
)

// ErrSerializationConflict marks a serializable unit of work that lost a
// race with a concurrent transaction. The whole unit may be rerun.
var ErrSerializationConflict = errors.New("serialization conflict")

// RetryPolicy bounds how often a conflicting unit of work is rerun.
type RetryPolicy struct {
	MaxAttempts int
	MinBackoff  time.Duration
	MaxBackoff  time.Duration

	// IsConflict reports whether err is worth another attempt.
	IsConflict func(err error) bool
}

// DefaultRetryPolicy returns the policy used for serializable transactions.
func DefaultRetryPolicy(isConflict func(err error) bool) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		MinBackoff:  5 * time.Millisecond,
		MaxBackoff:  100 * time.Millisecond,
		IsConflict:  isConflict,
	}
}

// RetryOnConflict runs attempt until it succeeds, fails with a non-conflict
// error, or MaxAttempts is reached. The last error is returned unchanged.
func RetryOnConflict(ctx context.Context, p RetryPolicy, attempt func(ctx context.Context) error) error {
	var err error
	for n := 1; ; n++ {
		err = attempt(ctx)
		if !p.shouldRetry(n, err) {
			return err
		}

		t := time.NewTimer(p.backoff(n))
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
	}
}

func (p RetryPolicy) shouldRetry(attempts int, err error) bool {
	if err == nil || p.IsConflict == nil {
		return false
	}
	if p.MaxAttempts <= 0 || attempts >= p.MaxAttempts {
		return false
	}
	return p.IsConflict(err)
}

func (p RetryPolicy) backoff(attempts int) time.Duration {
	d := p.MinBackoff << (attempts - 1)
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	return d
}
