package filesystem

import (
	"context"
	"fmt"

	model "github.com/docfold/docfold/models"
	"github.com/samber/lo"
)

// Archive flags ref and, for a folder, everything below it as archived.
// Returns the number of items flagged.
func (fs *FileSystem) Archive(ctx context.Context, ref ItemRef, scope model.Scope) (int, error) {
	return fs.setArchived(ctx, ref, scope, true)
}

// Unarchive reverses Archive.
func (fs *FileSystem) Unarchive(ctx context.Context, ref ItemRef, scope model.Scope) (int, error) {
	return fs.setArchived(ctx, ref, scope, false)
}

func (fs *FileSystem) setArchived(ctx context.Context, ref ItemRef, scope model.Scope, archived bool) (int, error) {
	if err := fs.authorize(scope); err != nil {
		return 0, err
	}

	var folders, files []string
	switch ref.Kind {
	case KindFile:
		file, err := fs.Catalog.GetFile(ctx, ref.ID, scope)
		if err != nil {
			return 0, err
		}
		files = []string{file.ID}
	case KindFolder:
		folder, err := fs.Catalog.GetFolder(ctx, ref.ID, scope)
		if err != nil {
			return 0, err
		}

		subtree, err := fs.Walk(ctx, folder.ID, scope)
		if err != nil {
			return 0, err
		}

		folders = append([]string{folder.ID}, lo.Map(subtree.Folders, func(f model.Folder, i int) string { return f.ID })...)
		files = lo.Map(subtree.Files, func(f model.File, i int) string { return f.ID })
	default:
		return 0, ErrObjectNotExist.WithError(fmt.Errorf("unknown item kind %q", ref.Kind))
	}

	err := fs.Catalog.Transaction(ctx, fs.Options.TxTimeout, func(tx CatalogTx) error {
		for _, chunk := range lo.Chunk(folders, fs.Options.ChunkSize) {
			if err := tx.SetArchived(chunk, nil, archived); err != nil {
				return err
			}
		}
		for _, chunk := range lo.Chunk(files, fs.Options.ChunkSize) {
			if err := tx.SetArchived(nil, chunk, archived); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, ErrCatalogFailure.WithError(err)
	}

	return len(folders) + len(files), nil
}
