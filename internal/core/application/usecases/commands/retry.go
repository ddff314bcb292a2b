package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const persistMaxRetries = 2

// withPersistRetry runs op, retrying transient infrastructure failures with
// exponential backoff (up to three attempts total). Domain errors are
// permanent: a validation or state rejection will not change on retry, so it
// surfaces immediately. op must be safe to re-run, which holds for the
// transactional closures the handlers pass in.
func withPersistRetry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newPersistBackOff(), persistMaxRetries), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isDomainError(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

func newPersistBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	return b
}

func isDomainError(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrInvalidState)
}
