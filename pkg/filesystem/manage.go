package filesystem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/logging"
	"github.com/docfold/docfold/pkg/util"
	"github.com/samber/lo"
)

// checkParent makes sure parent is an existing folder of scope.
func (fs *FileSystem) checkParent(ctx context.Context, parent *string, scope model.Scope) error {
	if parent == nil {
		return nil
	}

	if _, err := fs.Catalog.GetFolder(ctx, *parent, scope); err != nil {
		if errors.Is(err, ErrObjectNotExist) {
			return ErrPathNotExist.WithError(err)
		}
		return err
	}

	return nil
}

// List returns the direct children of parent.
func (fs *FileSystem) List(ctx context.Context, parent *string, scope model.Scope) ([]model.Folder, []model.File, error) {
	if err := fs.authorize(scope); err != nil {
		return nil, nil, err
	}

	if err := fs.checkParent(ctx, parent, scope); err != nil {
		return nil, nil, err
	}

	return fs.Catalog.List(ctx, parent, scope)
}

// CreateFolder creates a folder under parent. A clashing name is numbered.
func (fs *FileSystem) CreateFolder(ctx context.Context, parent *string, name string, scope model.Scope) (*model.Folder, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := fs.authorize(scope); err != nil {
		return nil, err
	}

	if err := fs.checkParent(ctx, parent, scope); err != nil {
		return nil, err
	}

	names, err := fs.Catalog.ChildNames(ctx, parent, scope)
	if err != nil {
		return nil, err
	}

	name, err = NewNameResolver(names, fs.Options.MaxNameAttempts).Resolve(name, true)
	if err != nil {
		return nil, err
	}

	folder := model.Folder{
		ID:         fs.newID(),
		Name:       name,
		ParentID:   parent,
		OwnerID:    scope.OwnerID,
		UploaderID: fs.User.ID,
		Visibility: scope.Visibility,
	}

	if err := fs.Catalog.Transaction(ctx, fs.Options.TxTimeout, func(tx CatalogTx) error {
		return tx.InsertFolders([]model.Folder{folder})
	}); err != nil {
		return nil, ErrCatalogFailure.WithError(err)
	}

	return &folder, nil
}

// checkSiblingName fails when newName clashes with a sibling other than the item itself.
func (fs *FileSystem) checkSiblingName(ctx context.Context, parent *string, oldName, newName string, scope model.Scope) error {
	names, err := fs.Catalog.ChildNames(ctx, parent, scope)
	if err != nil {
		return err
	}

	clashes := lo.CountBy(names, func(n string) bool { return strings.EqualFold(n, newName) })
	if strings.EqualFold(oldName, newName) {
		clashes--
	}

	if clashes > 0 {
		return ErrFileExisted.WithError(fmt.Errorf("%q already exists", newName))
	}

	return nil
}

// ancestryOf returns the folder ids from the scope root down to parent.
func (fs *FileSystem) ancestryOf(ctx context.Context, parent *string, scope model.Scope) ([]string, error) {
	if parent == nil {
		return nil, nil
	}

	chain, err := fs.Catalog.Ancestors(ctx, *parent, scope, fs.Options.MaxWalkDepth)
	if err != nil {
		return nil, err
	}

	return lo.Map(chain, func(f model.Folder, i int) string { return f.ID }), nil
}

// Rename renames one item. Renaming a file moves its object.
func (fs *FileSystem) Rename(ctx context.Context, ref ItemRef, newName string, scope model.Scope) error {
	if err := validateName(newName); err != nil {
		return err
	}

	if err := fs.authorize(scope); err != nil {
		return err
	}

	if ref.Kind == KindFolder {
		folder, err := fs.Catalog.GetFolder(ctx, ref.ID, scope)
		if err != nil {
			return err
		}

		if folder.Name == newName {
			return nil
		}

		if err := fs.checkSiblingName(ctx, folder.ParentID, folder.Name, newName, scope); err != nil {
			return err
		}

		if err := fs.Catalog.Transaction(ctx, fs.Options.TxTimeout, func(tx CatalogTx) error {
			return tx.RenameFolder(folder.ID, newName)
		}); err != nil {
			return ErrCatalogFailure.WithError(err)
		}

		return nil
	}

	file, err := fs.Catalog.GetFile(ctx, ref.ID, scope)
	if err != nil {
		return err
	}

	if file.Name == newName {
		return nil
	}

	if err := fs.checkSiblingName(ctx, file.ParentID, file.Name, newName, scope); err != nil {
		return err
	}

	ancestry, err := fs.ancestryOf(ctx, file.ParentID, scope)
	if err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	key := ObjectKey(scope, ancestry, file.ID, newName)
	if err := fs.Handler.Copy(ctx, file.ObjectPath, key); err != nil {
		return ErrObjectStoreFailure.WithError(err)
	}

	if err := fs.Catalog.Transaction(ctx, fs.Options.TxTimeout, func(tx CatalogTx) error {
		return tx.RenameFile(file.ID, newName, key)
	}); err != nil {
		fs.removeObjects(ctx, []string{key})
		return ErrCatalogFailure.WithError(err)
	}

	fs.removeObjects(ctx, []string{file.ObjectPath})
	return nil
}

// Delete removes refs with all their descendants. Rows are only dropped
// for files whose objects are gone, and folders are kept while they still
// hold such a file. Returns the number of items deleted.
func (fs *FileSystem) Delete(ctx context.Context, refs []ItemRef, scope model.Scope) (int, error) {
	if err := fs.authorize(scope); err != nil {
		return 0, err
	}

	var (
		folders     = make([]model.Folder, 0)
		folderIndex = make(map[string]*string)
		files       = make([]model.File, 0)
		fileIndex   = make(map[string]bool)
	)

	addFile := func(f model.File) {
		if !fileIndex[f.ID] {
			fileIndex[f.ID] = true
			files = append(files, f)
		}
	}
	addFolder := func(f model.Folder) {
		if _, ok := folderIndex[f.ID]; !ok {
			folderIndex[f.ID] = f.ParentID
			folders = append(folders, f)
		}
	}

	for _, ref := range lo.Uniq(refs) {
		if ref.Kind == KindFile {
			file, err := fs.Catalog.GetFile(ctx, ref.ID, scope)
			if err != nil {
				return 0, err
			}
			addFile(*file)
			continue
		}

		folder, err := fs.Catalog.GetFolder(ctx, ref.ID, scope)
		if err != nil {
			return 0, err
		}

		subtree, err := fs.Walk(ctx, folder.ID, scope)
		if err != nil {
			return 0, err
		}

		addFolder(*folder)
		lo.ForEach(subtree.Folders, func(f model.Folder, i int) { addFolder(f) })
		lo.ForEach(subtree.Files, func(f model.File, i int) { addFile(f) })
	}

	ctx = context.WithoutCancel(ctx)
	l := logging.FromContext(ctx, util.Log())

	keys := lo.Map(files, func(f model.File, i int) string { return f.ObjectPath })
	failed, deleteErr := fs.Handler.Delete(ctx, keys)
	failedKeys := lo.Associate(failed, func(k string) (string, bool) { return k, true })

	keptFolders := make(map[string]bool)
	deletedFiles := make([]string, 0, len(files))
	var freed uint64
	for _, f := range files {
		if !failedKeys[f.ObjectPath] {
			deletedFiles = append(deletedFiles, f.ID)
			freed += f.Size
			continue
		}

		// keep every folder above a file that is still stored
		for cur := f.ParentID; cur != nil; {
			parent, inSet := folderIndex[*cur]
			if !inSet || keptFolders[*cur] {
				break
			}
			keptFolders[*cur] = true
			cur = parent
		}
	}

	deletedFolders := make([]string, 0, len(folders))
	for _, f := range folders {
		if !keptFolders[f.ID] {
			deletedFolders = append(deletedFolders, f.ID)
		}
	}

	if err := fs.Catalog.Transaction(ctx, fs.Options.TxTimeout, func(tx CatalogTx) error {
		for _, chunk := range lo.Chunk(deletedFiles, fs.Options.ChunkSize) {
			if err := tx.DeleteFiles(chunk); err != nil {
				return err
			}
		}
		for _, chunk := range lo.Chunk(deletedFolders, fs.Options.ChunkSize) {
			if err := tx.DeleteFolders(chunk); err != nil {
				return err
			}
		}
		return tx.DeductStorage(scope.OwnerID, freed)
	}); err != nil {
		l.Error("Failed to delete rows of %d removed objects: %s", len(deletedFiles), err)
		return 0, ErrCatalogFailure.WithError(err)
	}

	deleted := len(deletedFiles) + len(deletedFolders)
	if len(failed) > 0 {
		l.Warning("%d objects cannot be deleted: %s", len(failed), deleteErr)
		return deleted, ErrNotFullySuccess.WithError(deleteErr)
	}

	return deleted, nil
}
