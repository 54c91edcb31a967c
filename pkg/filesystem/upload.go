package filesystem

import (
	"context"
	"io"

	model "github.com/docfold/docfold/models"
)

// UploadRequest describes an incoming file.
type UploadRequest struct {
	Parent *string
	Name   string
	Size   uint64
	Body   io.Reader
}

// Upload stores a new file under req.Parent. A clashing name is numbered.
func (fs *FileSystem) Upload(ctx context.Context, req *UploadRequest, scope model.Scope) (*model.File, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	if err := fs.authorize(scope); err != nil {
		return nil, err
	}

	if err := fs.checkParent(ctx, req.Parent, scope); err != nil {
		return nil, err
	}

	if err := fs.checkQuota(ctx, scope.OwnerID, req.Size); err != nil {
		return nil, err
	}

	names, err := fs.Catalog.ChildNames(ctx, req.Parent, scope)
	if err != nil {
		return nil, err
	}

	name, err := NewNameResolver(names, fs.Options.MaxNameAttempts).Resolve(req.Name, false)
	if err != nil {
		return nil, err
	}

	ancestry, err := fs.ancestryOf(ctx, req.Parent, scope)
	if err != nil {
		return nil, err
	}

	file := model.File{
		ID:         fs.newID(),
		Name:       name,
		ParentID:   req.Parent,
		Size:       req.Size,
		OwnerID:    scope.OwnerID,
		UploaderID: fs.User.ID,
		Visibility: scope.Visibility,
	}
	file.ObjectPath = ObjectKey(scope, ancestry, file.ID, name)

	if err := fs.Handler.Put(ctx, req.Body, file.ObjectPath, req.Size); err != nil {
		return nil, ErrObjectStoreFailure.WithError(err)
	}

	ctx = context.WithoutCancel(ctx)
	if err := fs.Catalog.Transaction(ctx, fs.Options.TxTimeout, func(tx CatalogTx) error {
		if err := tx.InsertFiles([]model.File{file}); err != nil {
			return err
		}
		return tx.IncreaseStorage(scope.OwnerID, file.Size)
	}); err != nil {
		fs.removeObjects(ctx, []string{file.ObjectPath})
		return nil, ErrCatalogFailure.WithError(err)
	}

	return &file, nil
}
