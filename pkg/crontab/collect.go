package crontab

import (
	"context"
	"errors"
	"time"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/cache"
	"github.com/docfold/docfold/pkg/filesystem"
	"github.com/docfold/docfold/pkg/filesystem/driver"
	"github.com/docfold/docfold/pkg/logging"
	"github.com/docfold/docfold/pkg/util"
	"github.com/samber/lo"
)

func garbageCollect(ctx context.Context) {
	if store, ok := cache.Store.(*cache.MemoStore); ok {
		collectCache(ctx, store)
	}

	logging.FromContext(ctx, util.Log()).Info("Crontab job \"cron_garbage_collect\" complete.")
}

func collectCache(ctx context.Context, store *cache.MemoStore) {
	logging.FromContext(ctx, util.Log()).Debug("Cleanup memory cache.")
	store.GarbageCollect()
}

func orphanCollect(ctx context.Context) {
	l := logging.FromContext(ctx, util.Log())
	if filesystem.DefaultHandler == nil {
		l.Warning("Object store is not initialized, orphan collection skipped.")
		return
	}

	collector := &OrphanCollector{
		Handler:     filesystem.DefaultHandler,
		Referenced:  model.GetReferencedObjectPaths,
		GracePeriod: model.GetDurationSetting("orphan_grace_period", 24*time.Hour),
		ChunkSize:   model.GetIntSetting("transfer_chunk_size", 100),
	}

	deleted, err := collector.Collect(ctx, "")
	if err != nil {
		l.Warning("Orphan collection stopped after %d objects: %s", deleted, err)
		return
	}

	l.Info("Crontab job \"cron_orphan_collect\" complete, %d orphaned objects deleted.", deleted)
}

// OrphanCollector deletes objects no file row points at. Objects younger
// than GracePeriod may belong to a transfer that is not committed yet and
// are left alone.
type OrphanCollector struct {
	Handler driver.Handler
	// Referenced reports which of the given keys are still in the catalog.
	Referenced  func(keys []string) (map[string]bool, error)
	GracePeriod time.Duration
	ChunkSize   int

	now func() time.Time
}

// Collect scans every object under prefix and returns the number deleted.
func (c *OrphanCollector) Collect(ctx context.Context, prefix string) (int, error) {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	if c.ChunkSize < 1 {
		c.ChunkSize = 100
	}

	l := logging.FromContext(ctx, util.Log())
	deadline := now().Add(-c.GracePeriod)
	deleted := 0

	err := c.Handler.List(ctx, prefix, func(objects []driver.Object) error {
		expired := lo.FilterMap(objects, func(o driver.Object, _ int) (string, bool) {
			return o.Key, o.LastModified.Before(deadline)
		})

		for _, chunk := range lo.Chunk(expired, c.ChunkSize) {
			referenced, err := c.Referenced(chunk)
			if err != nil {
				return err
			}

			orphans := lo.Reject(chunk, func(key string, _ int) bool { return referenced[key] })
			if len(orphans) == 0 {
				continue
			}

			failed, err := c.Handler.Delete(ctx, orphans)
			deleted += len(orphans) - len(failed)
			if err != nil {
				l.Warning("Failed to delete %d orphaned objects: %s", len(failed), err)
			}
		}

		return ctx.Err()
	})

	if errors.Is(err, context.Canceled) {
		l.Info("Orphan collection cancelled.")
	}

	return deleted, err
}
