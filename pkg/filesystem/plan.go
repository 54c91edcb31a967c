package filesystem

import (
	"context"
	"errors"
	"fmt"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/filesystem/driver"
	"github.com/docfold/docfold/pkg/util"
	"github.com/samber/lo"
)

// FolderMove re-points an existing folder.
type FolderMove = model.FolderMove

// FileMove re-points an existing file and records its new object path.
type FileMove = model.FileMove

// TransferPlan lists every side effect of a copy or move.
type TransferPlan struct {
	IsCopy   bool
	SrcScope model.Scope
	DstScope model.Scope
	// Destination is the target folder, nil for the scope root.
	Destination     *string
	DestinationName string

	ObjectOps []driver.CopyOp

	// Rows inserted by a copy.
	NewFolders []model.Folder
	NewFiles   []model.File

	// Rows updated by a move.
	FolderMoves []FolderMove
	FileMoves   []FileMove
	// StaleKeys are removed once a move is committed.
	StaleKeys []string

	// Affected counts the items created or relocated.
	Affected int
}

// Delta is the storage the plan adds to the destination owner.
func (p *TransferPlan) Delta() uint64 {
	return lo.SumBy(p.NewFiles, func(f model.File) uint64 { return f.Size })
}

// destination is a snapshot of the target folder taken once per plan.
type destination struct {
	id   *string
	name string
	// ancestry holds the ids from the scope root down to the destination.
	ancestry []string
	resolver *NameResolver
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// loadDestination fetches the destination folder, its ancestry and the
// names it already holds.
func (fs *FileSystem) loadDestination(ctx context.Context, dst *string, scope model.Scope) (*destination, error) {
	d := &destination{id: dst, name: "/"}
	if dst != nil {
		chain, err := fs.Catalog.Ancestors(ctx, *dst, scope, fs.Options.MaxWalkDepth)
		if err != nil {
			if errors.Is(err, ErrObjectNotExist) {
				if _, fileErr := fs.Catalog.GetFile(ctx, *dst, scope); fileErr == nil {
					return nil, ErrInvalidDestination.WithError(fmt.Errorf("destination %q is not a folder", *dst))
				}
			}
			return nil, err
		}

		d.ancestry = lo.Map(chain, func(f model.Folder, i int) string { return f.ID })
		d.name = chain[len(chain)-1].Name
	}

	return d, nil
}

func (fs *FileSystem) snapshotNames(ctx context.Context, d *destination, scope model.Scope) error {
	names, err := fs.Catalog.ChildNames(ctx, d.id, scope)
	if err != nil {
		return err
	}

	d.resolver = NewNameResolver(names, fs.Options.MaxNameAttempts)
	return nil
}

// checkSelfContainment rejects selections holding the destination or one of its ancestors.
func checkSelfContainment(refs []ItemRef, ancestry []string) error {
	guard := lo.Associate(ancestry, func(id string) (string, bool) { return id, true })
	for _, ref := range refs {
		if ref.Kind == KindFolder && guard[ref.ID] {
			return ErrInvalidDestination.WithError(fmt.Errorf("cannot transfer folder %q into itself or its descendant", ref.ID))
		}
	}
	return nil
}

// prepare runs the checks shared by copy and move, in an order that
// rejects self-containment before any source lookup.
func (fs *FileSystem) prepare(ctx context.Context, refs []ItemRef, dst *string, srcScope, dstScope model.Scope) ([]ItemRef, *destination, error) {
	if err := fs.authorize(srcScope); err != nil {
		return nil, nil, err
	}
	if err := fs.authorize(dstScope); err != nil {
		return nil, nil, err
	}

	refs = lo.Uniq(refs)
	for _, ref := range refs {
		if ref.Kind != KindFolder && ref.Kind != KindFile {
			return nil, nil, ErrObjectNotExist.WithError(fmt.Errorf("unknown item kind %q", ref.Kind))
		}
	}

	sameScope := srcScope == dstScope
	if sameScope && dst != nil {
		if err := checkSelfContainment(refs, []string{*dst}); err != nil {
			return nil, nil, err
		}
	}

	d, err := fs.loadDestination(ctx, dst, dstScope)
	if err != nil {
		return nil, nil, err
	}

	if sameScope {
		if err := checkSelfContainment(refs, d.ancestry); err != nil {
			return nil, nil, err
		}
	}

	if err := fs.snapshotNames(ctx, d, dstScope); err != nil {
		return nil, nil, err
	}

	return refs, d, nil
}

// PlanCopy plans copying refs from srcScope into dst of dstScope. Every
// copied item gets a fresh identity and is owned by the destination scope.
func (fs *FileSystem) PlanCopy(ctx context.Context, refs []ItemRef, dst *string, srcScope, dstScope model.Scope) (*TransferPlan, error) {
	refs, d, err := fs.prepare(ctx, refs, dst, srcScope, dstScope)
	if err != nil {
		return nil, err
	}

	plan := &TransferPlan{
		IsCopy:          true,
		SrcScope:        srcScope,
		DstScope:        dstScope,
		Destination:     dst,
		DestinationName: d.name,
	}

	for _, ref := range refs {
		if ref.Kind == KindFile {
			file, err := fs.Catalog.GetFile(ctx, ref.ID, srcScope)
			if err != nil {
				return nil, err
			}

			name, err := d.resolver.Resolve(file.Name, false)
			if err != nil {
				return nil, err
			}

			fs.planFileCopy(plan, file, dst, d.ancestry, name)
			plan.Affected++
			continue
		}

		folder, err := fs.Catalog.GetFolder(ctx, ref.ID, srcScope)
		if err != nil {
			return nil, err
		}

		name, err := d.resolver.Resolve(folder.Name, true)
		if err != nil {
			return nil, err
		}

		if err := fs.planFolderCopy(ctx, plan, folder, d, name); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func (fs *FileSystem) planFolderCopy(ctx context.Context, plan *TransferPlan, folder *model.Folder, d *destination, name string) error {
	subtree, err := fs.Walk(ctx, folder.ID, plan.SrcScope)
	if err != nil {
		return err
	}

	idMap, err := Remap(folder.ID, subtree.Folders, fs.newID)
	if err != nil {
		return err
	}

	rootID := idMap[folder.ID]
	ancestry := map[string][]string{
		rootID: append(append(make([]string, 0, len(d.ancestry)+1), d.ancestry...), rootID),
	}
	plan.NewFolders = append(plan.NewFolders, fs.cloneFolder(folder, rootID, d.id, name, plan.DstScope))

	for i := range subtree.Folders {
		sub := &subtree.Folders[i]
		newID := idMap[sub.ID]
		newParent := idMap[*sub.ParentID]

		parentPath := ancestry[newParent]
		ancestry[newID] = append(append(make([]string, 0, len(parentPath)+1), parentPath...), newID)
		plan.NewFolders = append(plan.NewFolders, fs.cloneFolder(sub, newID, util.ToPtr(newParent), sub.Name, plan.DstScope))
	}

	for i := range subtree.Files {
		file := &subtree.Files[i]
		if file.ParentID == nil {
			return ErrCorruptHierarchy.WithError(fmt.Errorf("file %q has no parent", file.ID))
		}

		newParent, ok := idMap[*file.ParentID]
		if !ok {
			return ErrCorruptHierarchy.WithError(fmt.Errorf("parent of file %q was not enumerated", file.ID))
		}

		fs.planFileCopy(plan, file, util.ToPtr(newParent), ancestry[newParent], file.Name)
	}

	plan.Affected += 1 + subtree.Count()
	return nil
}

func (fs *FileSystem) cloneFolder(src *model.Folder, id string, parent *string, name string, scope model.Scope) model.Folder {
	return model.Folder{
		ID:         id,
		Name:       name,
		ParentID:   parent,
		OwnerID:    scope.OwnerID,
		UploaderID: fs.User.ID,
		Visibility: scope.Visibility,
		Archived:   src.Archived,
	}
}

func (fs *FileSystem) planFileCopy(plan *TransferPlan, src *model.File, parent *string, ancestry []string, name string) {
	id := fs.newID()
	key := ObjectKey(plan.DstScope, ancestry, id, name)

	plan.NewFiles = append(plan.NewFiles, model.File{
		ID:         id,
		Name:       name,
		ParentID:   parent,
		ObjectPath: key,
		Size:       src.Size,
		OwnerID:    plan.DstScope.OwnerID,
		UploaderID: fs.User.ID,
		Visibility: plan.DstScope.Visibility,
		Archived:   src.Archived,
	})
	plan.ObjectOps = append(plan.ObjectOps, driver.CopyOp{Src: src.ObjectPath, Dst: key, Size: src.Size})
}

// movedFile is a file whose object path is recomputed by a move.
type movedFile struct {
	file     *model.File
	selected bool
	name     string
}

// PlanMove plans relocating refs under dst. Identities are kept; only
// parents, clashing top level names and object paths change. Items already
// in the destination are skipped.
func (fs *FileSystem) PlanMove(ctx context.Context, refs []ItemRef, dst *string, srcScope, dstScope model.Scope) (*TransferPlan, error) {
	if srcScope != dstScope {
		return nil, ErrInvalidDestination.WithError(errors.New("items cannot be moved across owners or visibility classes"))
	}

	refs, d, err := fs.prepare(ctx, refs, dst, srcScope, dstScope)
	if err != nil {
		return nil, err
	}

	plan := &TransferPlan{
		SrcScope:        srcScope,
		DstScope:        dstScope,
		Destination:     dst,
		DestinationName: d.name,
	}

	var (
		selectedFolders = make(map[string]bool)
		walkRoots       = make([]string, 0, len(refs))
		// parentOf records the original parent of every folder below a moved one.
		parentOf  = make(map[string]string)
		files     = make(map[string]*movedFile)
		fileOrder = make([]string, 0)
	)

	for _, ref := range refs {
		if ref.Kind == KindFile {
			file, err := fs.Catalog.GetFile(ctx, ref.ID, srcScope)
			if err != nil {
				return nil, err
			}
			if sameParent(file.ParentID, dst) {
				continue
			}

			name, err := d.resolver.Resolve(file.Name, false)
			if err != nil {
				return nil, err
			}

			files[file.ID] = &movedFile{file: file, selected: true, name: name}
			fileOrder = append(fileOrder, file.ID)
			continue
		}

		folder, err := fs.Catalog.GetFolder(ctx, ref.ID, srcScope)
		if err != nil {
			return nil, err
		}
		if sameParent(folder.ParentID, dst) {
			continue
		}

		name, err := d.resolver.Resolve(folder.Name, true)
		if err != nil {
			return nil, err
		}

		selectedFolders[folder.ID] = true
		walkRoots = append(walkRoots, folder.ID)
		plan.FolderMoves = append(plan.FolderMoves, FolderMove{ID: folder.ID, ParentID: dst, Name: name})
	}

	for _, root := range walkRoots {
		subtree, err := fs.Walk(ctx, root, srcScope)
		if err != nil {
			return nil, err
		}

		for _, sub := range subtree.Folders {
			parentOf[sub.ID] = *sub.ParentID
		}

		for i := range subtree.Files {
			file := &subtree.Files[i]
			if _, ok := files[file.ID]; ok {
				continue
			}
			if file.ParentID == nil {
				return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("file %q has no parent", file.ID))
			}

			files[file.ID] = &movedFile{file: file, name: file.Name}
			fileOrder = append(fileOrder, file.ID)
		}
	}

	ancestryOf := fs.ancestryResolver(d.ancestry, selectedFolders, parentOf)
	for _, id := range fileOrder {
		moved := files[id]

		var (
			parent   = dst
			ancestry = d.ancestry
		)
		if !moved.selected {
			parent = moved.file.ParentID
			if ancestry, err = ancestryOf(*parent); err != nil {
				return nil, err
			}
		}

		key := ObjectKey(dstScope, ancestry, moved.file.ID, moved.name)
		if !moved.selected && key == moved.file.ObjectPath {
			continue
		}

		plan.FileMoves = append(plan.FileMoves, FileMove{ID: moved.file.ID, ParentID: parent, Name: moved.name, ObjectPath: key})
		if key != moved.file.ObjectPath {
			plan.ObjectOps = append(plan.ObjectOps, driver.CopyOp{Src: moved.file.ObjectPath, Dst: key, Size: moved.file.Size})
			plan.StaleKeys = append(plan.StaleKeys, moved.file.ObjectPath)
		}
	}

	touchedFolders := len(selectedFolders)
	for id := range parentOf {
		if !selectedFolders[id] {
			touchedFolders++
		}
	}
	plan.Affected = touchedFolders + len(files)

	return plan, nil
}

// ancestryResolver returns a memoized lookup of the ancestry a folder will
// have once the move is applied.
func (fs *FileSystem) ancestryResolver(dstAncestry []string, selected map[string]bool, parentOf map[string]string) func(string) ([]string, error) {
	memo := make(map[string][]string)

	var resolve func(id string, depth int) ([]string, error)
	resolve = func(id string, depth int) ([]string, error) {
		if res, ok := memo[id]; ok {
			return res, nil
		}
		if depth > fs.Options.MaxWalkDepth {
			return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("ancestry of folder %q does not terminate", id))
		}

		var base []string
		if selected[id] {
			base = dstAncestry
		} else {
			parent, ok := parentOf[id]
			if !ok {
				return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("folder %q was not enumerated", id))
			}

			var err error
			if base, err = resolve(parent, depth+1); err != nil {
				return nil, err
			}
		}

		res := append(append(make([]string, 0, len(base)+1), base...), id)
		memo[id] = res
		return res, nil
	}

	return func(id string) ([]string, error) {
		return resolve(id, 0)
	}
}
