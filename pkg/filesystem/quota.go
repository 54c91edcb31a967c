package filesystem

import (
	"context"
	"fmt"
)

// checkQuota rejects adding rows worth delta bytes to owner uid when
// usage plus delta would reach the group limit, even for a zero delta.
// A zero limit means unlimited.
func (fs *FileSystem) checkQuota(ctx context.Context, uid uint, delta uint64) error {
	owner, err := fs.Catalog.Owner(ctx, uid)
	if err != nil {
		return err
	}

	if owner.Group.MaxStorage > 0 && delta >= owner.GetRemainingCapacity() {
		return ErrInsufficientCapacity.WithError(fmt.Errorf("usage %d + %d reaches limit %d", owner.Storage, delta, owner.Group.MaxStorage))
	}

	return nil
}

// CheckQuota validates a plan against the destination owner's quota. Moves
// insert no rows and never grow usage, so only copies are checked.
func (fs *FileSystem) CheckQuota(ctx context.Context, plan *TransferPlan) error {
	if !plan.IsCopy {
		return nil
	}

	return fs.checkQuota(ctx, plan.DstScope.OwnerID, plan.Delta())
}
