package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/docfold/docfold/pkg/retry"
	"golang.org/x/sync/errgroup"
)

// BatchOption tunes BatchCopy.
type BatchOption struct {
	// Concurrency is the number of copies in flight, at least 1.
	Concurrency int
	// Token identifies the throttling bucket, usually the bucket name.
	Token string
	// OpsPerSecond caps the request rate, 0 means unlimited.
	OpsPerSecond float64
	Burst        int
	Limiter      TPSLimiter
	// Retries is the number of extra attempts of a failed copy.
	Retries   int
	RetryWait time.Duration
}

// BatchCopy runs every copy through a bounded worker pool. The first
// failure cancels the copies not yet started. The destination keys that
// were written are returned in every case so callers can clean them up.
func BatchCopy(ctx context.Context, h Handler, ops []CopyOp, opt BatchOption) ([]string, error) {
	if opt.Concurrency < 1 {
		opt.Concurrency = 1
	}
	if opt.Limiter == nil {
		opt.Limiter = globalTPSLimiter
	}
	if opt.Burst < 1 {
		opt.Burst = 1
	}

	var (
		mu     sync.Mutex
		copied = make([]string, 0, len(ops))
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opt.Concurrency)

	for _, op := range ops {
		op := op
		if gCtx.Err() != nil {
			break
		}

		g.Go(func() error {
			backoff := &retry.ConstantBackoff{Sleep: opt.RetryWait, Max: opt.Retries}
			err := retry.Do(gCtx, backoff, func() error {
				if err := opt.Limiter.Limit(gCtx, opt.Token, opt.OpsPerSecond, opt.Burst); err != nil {
					return err
				}
				return h.Copy(gCtx, op.Src, op.Dst)
			})
			if err != nil {
				return fmt.Errorf("failed to copy %q to %q: %w", op.Src, op.Dst, err)
			}

			mu.Lock()
			copied = append(copied, op.Dst)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	if err == nil && len(copied) < len(ops) {
		err = fmt.Errorf("batch copy interrupted after %d of %d objects: %w", len(copied), len(ops), ctx.Err())
	}
	return copied, err
}
