package filesystem

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	model "github.com/docfold/docfold/models"
	"github.com/jinzhu/gorm"
)

// Catalog reads and writes item rows.
type Catalog interface {
	GetFolder(ctx context.Context, id string, scope model.Scope) (*model.Folder, error)
	GetFile(ctx context.Context, id string, scope model.Scope) (*model.File, error)
	// ChildFolders lists the direct child folders of every parent.
	ChildFolders(ctx context.Context, parents []string, scope model.Scope) ([]model.Folder, error)
	// ChildFiles lists the direct child files of every parent.
	ChildFiles(ctx context.Context, parents []string, scope model.Scope) ([]model.File, error)
	// List returns the direct children of parent, nil for the scope root.
	List(ctx context.Context, parent *string, scope model.Scope) ([]model.Folder, []model.File, error)
	// ChildNames returns the names of all direct children of parent.
	ChildNames(ctx context.Context, parent *string, scope model.Scope) ([]string, error)
	// Ancestors returns the folders from the scope root down to id, inclusive.
	Ancestors(ctx context.Context, id string, scope model.Scope, maxDepth int) ([]model.Folder, error)
	Owner(ctx context.Context, uid uint) (*model.User, error)
	// Transaction runs fn atomically. It is rolled back when fn fails or
	// timeout elapses.
	Transaction(ctx context.Context, timeout time.Duration, fn func(tx CatalogTx) error) error
}

// CatalogTx writes inside a transaction.
type CatalogTx interface {
	InsertFolders(folders []model.Folder) error
	InsertFiles(files []model.File) error
	MoveFolders(moves []FolderMove) error
	MoveFiles(moves []FileMove) error
	RenameFolder(id, name string) error
	RenameFile(id, name, objectPath string) error
	SetArchived(folders, files []string, archived bool) error
	DeleteFolders(ids []string) error
	DeleteFiles(ids []string) error
	IncreaseStorage(uid uint, size uint64) error
	DeductStorage(uid uint, size uint64) error
	Notify(n *model.Notification) error
}

// NewDBCatalog returns the catalog backed by model.DB.
func NewDBCatalog() Catalog {
	return &dbCatalog{}
}

type dbCatalog struct{}

func notFoundOr(err error) error {
	if gorm.IsRecordNotFoundError(err) {
		return ErrObjectNotExist.WithError(err)
	}
	return ErrCatalogRead.WithError(err)
}

func (c *dbCatalog) GetFolder(ctx context.Context, id string, scope model.Scope) (*model.Folder, error) {
	folder, err := model.GetFolderByID(id, scope)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &folder, nil
}

func (c *dbCatalog) GetFile(ctx context.Context, id string, scope model.Scope) (*model.File, error) {
	file, err := model.GetFileByID(id, scope)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &file, nil
}

func (c *dbCatalog) ChildFolders(ctx context.Context, parents []string, scope model.Scope) ([]model.Folder, error) {
	folders, err := model.GetFoldersByParentIDs(parents, scope)
	if err != nil {
		return nil, ErrCatalogRead.WithError(err)
	}
	return folders, nil
}

func (c *dbCatalog) ChildFiles(ctx context.Context, parents []string, scope model.Scope) ([]model.File, error) {
	files, err := model.GetFilesByParentIDs(parents, scope)
	if err != nil {
		return nil, ErrCatalogRead.WithError(err)
	}
	return files, nil
}

func (c *dbCatalog) List(ctx context.Context, parent *string, scope model.Scope) ([]model.Folder, []model.File, error) {
	folders, err := model.GetFoldersByParent(parent, scope)
	if err != nil {
		return nil, nil, ErrCatalogRead.WithError(err)
	}

	files, err := model.GetFilesByParent(parent, scope)
	if err != nil {
		return nil, nil, ErrCatalogRead.WithError(err)
	}

	return folders, files, nil
}

func (c *dbCatalog) ChildNames(ctx context.Context, parent *string, scope model.Scope) ([]string, error) {
	names, err := model.GetChildNames(parent, scope)
	if err != nil {
		return nil, ErrCatalogRead.WithError(err)
	}
	return names, nil
}

func (c *dbCatalog) Ancestors(ctx context.Context, id string, scope model.Scope, maxDepth int) ([]model.Folder, error) {
	chain, err := model.TraceRoot(id, scope, maxDepth)
	if err != nil {
		if errors.Is(err, model.ErrBrokenAncestry) {
			return nil, ErrCorruptHierarchy.WithError(err)
		}
		return nil, notFoundOr(err)
	}
	return chain, nil
}

func (c *dbCatalog) Owner(ctx context.Context, uid uint) (*model.User, error) {
	user, err := model.GetUserByID(uid)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (c *dbCatalog) Transaction(ctx context.Context, timeout time.Duration, fn func(tx CatalogTx) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx := model.DB.BeginTx(ctx, &sql.TxOptions{})
	if tx.Error != nil {
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&dbTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type dbTx struct {
	tx *gorm.DB
}

func (t *dbTx) InsertFolders(folders []model.Folder) error {
	return model.InsertFolders(t.tx, folders)
}

func (t *dbTx) InsertFiles(files []model.File) error {
	return model.InsertFiles(t.tx, files)
}

func (t *dbTx) MoveFolders(moves []FolderMove) error {
	return model.MoveFolders(t.tx, moves)
}

func (t *dbTx) MoveFiles(moves []FileMove) error {
	return model.MoveFiles(t.tx, moves)
}

func (t *dbTx) RenameFolder(id, name string) error {
	return model.RenameFolder(t.tx, id, name)
}

func (t *dbTx) RenameFile(id, name, objectPath string) error {
	return model.RenameFile(t.tx, id, name, objectPath)
}

func (t *dbTx) SetArchived(folders, files []string, archived bool) error {
	if len(folders) > 0 {
		if err := model.SetFoldersArchived(t.tx, folders, archived); err != nil {
			return err
		}
	}
	if len(files) > 0 {
		return model.SetFilesArchived(t.tx, files, archived)
	}
	return nil
}

func (t *dbTx) DeleteFolders(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return model.DeleteFolderByIDs(t.tx, ids)
}

func (t *dbTx) DeleteFiles(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return model.DeleteFileByIDs(t.tx, ids)
}

func (t *dbTx) IncreaseStorage(uid uint, size uint64) error {
	return model.IncreaseStorage(t.tx, uid, size)
}

func (t *dbTx) DeductStorage(uid uint, size uint64) error {
	return model.DeductStorage(t.tx, uid, size)
}

func (t *dbTx) Notify(n *model.Notification) error {
	return n.Create(t.tx)
}
