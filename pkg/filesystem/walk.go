package filesystem

import (
	"context"
	"fmt"

	model "github.com/docfold/docfold/models"
	"github.com/samber/lo"
)

// Subtree holds every descendant of a folder. Folders are ordered level by
// level so a parent always precedes its children.
type Subtree struct {
	Folders []model.Folder
	Files   []model.File
}

// Size sums the sizes of all files.
func (s *Subtree) Size() uint64 {
	return lo.SumBy(s.Files, func(f model.File) uint64 { return f.Size })
}

// Count returns the number of descendants.
func (s *Subtree) Count() int {
	return len(s.Folders) + len(s.Files)
}

// Walk enumerates the descendants of root, excluding root itself. Deep or
// looping hierarchies fail with ErrCorruptHierarchy instead of running away.
func (fs *FileSystem) Walk(ctx context.Context, root string, scope model.Scope) (*Subtree, error) {
	res := &Subtree{}
	visited := map[string]bool{root: true}
	frontier := []string{root}

	for depth := 1; len(frontier) > 0; depth++ {
		if depth > fs.Options.MaxWalkDepth {
			return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("folder %q is deeper than %d levels", root, fs.Options.MaxWalkDepth))
		}

		next := make([]string, 0, len(frontier))
		for _, batch := range lo.Chunk(frontier, fs.Options.ChunkSize) {
			folders, err := fs.Catalog.ChildFolders(ctx, batch, scope)
			if err != nil {
				return nil, err
			}

			for _, folder := range folders {
				if visited[folder.ID] {
					return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("folder %q is reachable twice", folder.ID))
				}
				visited[folder.ID] = true
				next = append(next, folder.ID)
			}
			res.Folders = append(res.Folders, folders...)

			files, err := fs.Catalog.ChildFiles(ctx, batch, scope)
			if err != nil {
				return nil, err
			}
			res.Files = append(res.Files, files...)

			if res.Count() > fs.Options.MaxWalkedItems {
				return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("folder %q has more than %d descendants", root, fs.Options.MaxWalkedItems))
			}
		}

		frontier = next
	}

	return res, nil
}
