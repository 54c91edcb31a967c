package filesystem

import (
	"context"
	"fmt"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/filesystem/driver"
	"github.com/docfold/docfold/pkg/logging"
	"github.com/docfold/docfold/pkg/util"
	"github.com/samber/lo"
)

// Execute applies a plan: objects are copied first, then every catalog
// change and the usage counter are committed in one transaction, then the
// stale objects of a move are removed. Once started it ignores the
// cancellation of ctx.
func (fs *FileSystem) Execute(ctx context.Context, plan *TransferPlan) (int, error) {
	if plan.Affected == 0 {
		return 0, nil
	}

	ctx = context.WithoutCancel(ctx)
	l := logging.FromContext(ctx, util.Log())

	copied, err := driver.BatchCopy(ctx, fs.Handler, plan.ObjectOps, fs.batchOption())
	if err != nil {
		l.Warning("Batch copy failed after %d of %d objects: %s", len(copied), len(plan.ObjectOps), err)
		fs.removeObjects(ctx, copied)
		return 0, ErrObjectStoreFailure.WithError(err)
	}

	if err := fs.Catalog.Transaction(ctx, fs.Options.TxTimeout, func(tx CatalogTx) error {
		return fs.commitPlan(tx, plan)
	}); err != nil {
		// Copied objects are left for the orphan collector.
		l.Error("Failed to commit transfer of %d items, %d copied objects are orphaned: %s", plan.Affected, len(copied), err)
		return 0, ErrCatalogFailure.WithError(err)
	}

	if !plan.IsCopy {
		fs.removeObjects(ctx, plan.StaleKeys)
	}

	l.Info("Transferred %d items into %q.", plan.Affected, plan.DestinationName)
	return plan.Affected, nil
}

func (fs *FileSystem) batchOption() driver.BatchOption {
	return driver.BatchOption{
		Concurrency:  fs.Options.Concurrency,
		Token:        fs.Options.Bucket,
		OpsPerSecond: fs.Options.OpsPerSecond,
		Burst:        fs.Options.Burst,
		Retries:      fs.Options.CopyRetries,
		RetryWait:    fs.Options.RetryWait,
	}
}

func (fs *FileSystem) commitPlan(tx CatalogTx, plan *TransferPlan) error {
	for _, chunk := range lo.Chunk(plan.NewFolders, fs.Options.ChunkSize) {
		if err := tx.InsertFolders(chunk); err != nil {
			return fmt.Errorf("failed to insert folders: %w", err)
		}
	}

	for _, chunk := range lo.Chunk(plan.NewFiles, fs.Options.ChunkSize) {
		if err := tx.InsertFiles(chunk); err != nil {
			return fmt.Errorf("failed to insert files: %w", err)
		}
	}

	for _, chunk := range lo.Chunk(plan.FolderMoves, fs.Options.ChunkSize) {
		if err := tx.MoveFolders(chunk); err != nil {
			return fmt.Errorf("failed to move folders: %w", err)
		}
	}

	for _, chunk := range lo.Chunk(plan.FileMoves, fs.Options.ChunkSize) {
		if err := tx.MoveFiles(chunk); err != nil {
			return fmt.Errorf("failed to move files: %w", err)
		}
	}

	if err := tx.IncreaseStorage(plan.DstScope.OwnerID, plan.Delta()); err != nil {
		return fmt.Errorf("failed to update storage usage: %w", err)
	}

	if fs.Options.NotifyShared && plan.DstScope.Visibility != model.VisibilityPrivate && plan.Affected > 0 {
		verb := "moved"
		if plan.IsCopy {
			verb = "copied"
		}

		if err := tx.Notify(&model.Notification{
			UserID:  plan.DstScope.OwnerID,
			Title:   fmt.Sprintf("%d items %s", plan.Affected, verb),
			Content: fmt.Sprintf("%d items were %s into %q.", plan.Affected, verb, plan.DestinationName),
		}); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
	}

	return nil
}

// removeObjects deletes keys, logging the ones left behind.
func (fs *FileSystem) removeObjects(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}

	failed, err := fs.Handler.Delete(ctx, keys)
	if err != nil {
		logging.FromContext(ctx, util.Log()).Warning("Failed to delete %d of %d objects, left for orphan collector: %s", len(failed), len(keys), err)
	}
}

// Copy copies refs into dst and returns the number of items created.
func (fs *FileSystem) Copy(ctx context.Context, refs []ItemRef, dst *string, srcScope, dstScope model.Scope) (int, error) {
	plan, err := fs.PlanCopy(ctx, refs, dst, srcScope, dstScope)
	if err != nil {
		return 0, err
	}

	if err := fs.CheckQuota(ctx, plan); err != nil {
		return 0, err
	}

	return fs.Execute(ctx, plan)
}

// Move moves refs into dst and returns the number of items relocated.
func (fs *FileSystem) Move(ctx context.Context, refs []ItemRef, dst *string, srcScope, dstScope model.Scope) (int, error) {
	plan, err := fs.PlanMove(ctx, refs, dst, srcScope, dstScope)
	if err != nil {
		return 0, err
	}

	if err := fs.CheckQuota(ctx, plan); err != nil {
		return 0, err
	}

	return fs.Execute(ctx, plan)
}
