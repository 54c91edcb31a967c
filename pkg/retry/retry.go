package retry

import (
	"context"
	"errors"

	"github.com/docfold/docfold/pkg/logging"
	"github.com/docfold/docfold/pkg/util"
)

// Do runs fn until it succeeds or backoff gives up, returning the last
// error. Cancellation is never retried.
func Do(ctx context.Context, backoff Backoff, fn func() error) error {
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || !backoff.Next(ctx) {
			return err
		}

		logging.FromContext(ctx, util.Log()).Debug("Retrying after attempt %d, last error: %s", attempt, err)
	}
}
