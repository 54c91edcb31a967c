package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/filesystem/driver"
	"github.com/docfold/docfold/pkg/util"
)

var (
	errMock     = errors.New("mock error")
	userScope   = model.Scope{OwnerID: 2, Visibility: model.VisibilityShared}
	adminScope  = model.Scope{OwnerID: 1, Visibility: model.VisibilityPrivate}
	otherScope  = model.Scope{OwnerID: 3, Visibility: model.VisibilityShared}
	regularUser = &model.User{Group: model.Group{MaxStorage: 100}}
	adminUser   = &model.User{Group: model.Group{Admin: true}}
)

func init() {
	regularUser.ID = 2
	adminUser.ID = 1
}

// memCatalog is an in-memory Catalog. Writes made inside a failed
// transaction are rolled back.
type memCatalog struct {
	folders       map[string]model.Folder
	files         map[string]model.File
	users         map[uint]model.User
	notifications []model.Notification

	// failWrite makes the named CatalogTx method fail.
	failWrite string
	calls     map[string]int
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		folders: make(map[string]model.Folder),
		files:   make(map[string]model.File),
		users: map[uint]model.User{
			1: *adminUser,
			2: *regularUser,
			3: {Group: model.Group{MaxStorage: 0}},
		},
		calls: make(map[string]int),
	}
}

func (c *memCatalog) addFolder(id, name string, parent *string, scope model.Scope) *memCatalog {
	c.folders[id] = model.Folder{ID: id, Name: name, ParentID: parent, OwnerID: scope.OwnerID, Visibility: scope.Visibility}
	return c
}

func (c *memCatalog) addFile(id, name string, parent *string, size uint64, scope model.Scope, key string) *memCatalog {
	c.files[id] = model.File{ID: id, Name: name, ParentID: parent, Size: size, OwnerID: scope.OwnerID,
		Visibility: scope.Visibility, ObjectPath: key}
	return c
}

func (c *memCatalog) setUsage(uid uint, used uint64) {
	u := c.users[uid]
	u.Storage = used
	c.users[uid] = u
}

func inScope(owner uint, visibility model.Visibility, scope model.Scope) bool {
	return owner == scope.OwnerID && visibility == scope.Visibility
}

func (c *memCatalog) GetFolder(ctx context.Context, id string, scope model.Scope) (*model.Folder, error) {
	c.calls["GetFolder"]++
	f, ok := c.folders[id]
	if !ok || !inScope(f.OwnerID, f.Visibility, scope) {
		return nil, ErrObjectNotExist
	}
	return &f, nil
}

func (c *memCatalog) GetFile(ctx context.Context, id string, scope model.Scope) (*model.File, error) {
	c.calls["GetFile"]++
	f, ok := c.files[id]
	if !ok || !inScope(f.OwnerID, f.Visibility, scope) {
		return nil, ErrObjectNotExist
	}
	return &f, nil
}

func (c *memCatalog) ChildFolders(ctx context.Context, parents []string, scope model.Scope) ([]model.Folder, error) {
	c.calls["ChildFolders"]++
	set := make(map[string]bool)
	for _, p := range parents {
		set[p] = true
	}

	res := make([]model.Folder, 0)
	for _, f := range c.folders {
		if f.ParentID != nil && set[*f.ParentID] && inScope(f.OwnerID, f.Visibility, scope) {
			res = append(res, f)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (c *memCatalog) ChildFiles(ctx context.Context, parents []string, scope model.Scope) ([]model.File, error) {
	c.calls["ChildFiles"]++
	set := make(map[string]bool)
	for _, p := range parents {
		set[p] = true
	}

	res := make([]model.File, 0)
	for _, f := range c.files {
		if f.ParentID != nil && set[*f.ParentID] && inScope(f.OwnerID, f.Visibility, scope) {
			res = append(res, f)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (c *memCatalog) List(ctx context.Context, parent *string, scope model.Scope) ([]model.Folder, []model.File, error) {
	folders := make([]model.Folder, 0)
	for _, f := range c.folders {
		if sameParent(f.ParentID, parent) && inScope(f.OwnerID, f.Visibility, scope) {
			folders = append(folders, f)
		}
	}
	files := make([]model.File, 0)
	for _, f := range c.files {
		if sameParent(f.ParentID, parent) && inScope(f.OwnerID, f.Visibility, scope) {
			files = append(files, f)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return folders, files, nil
}

func (c *memCatalog) ChildNames(ctx context.Context, parent *string, scope model.Scope) ([]string, error) {
	c.calls["ChildNames"]++
	folders, files, _ := c.List(ctx, parent, scope)
	names := make([]string, 0, len(folders)+len(files))
	for _, f := range folders {
		names = append(names, f.Name)
	}
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names, nil
}

func (c *memCatalog) Ancestors(ctx context.Context, id string, scope model.Scope, maxDepth int) ([]model.Folder, error) {
	c.calls["Ancestors"]++
	chain := make([]model.Folder, 0)
	for next := &id; next != nil; {
		if len(chain) >= maxDepth {
			return nil, ErrCorruptHierarchy
		}
		f, err := c.GetFolder(ctx, *next, scope)
		if err != nil {
			return nil, err
		}
		chain = append([]model.Folder{*f}, chain...)
		next = f.ParentID
	}
	return chain, nil
}

func (c *memCatalog) Owner(ctx context.Context, uid uint) (*model.User, error) {
	c.calls["Owner"]++
	u, ok := c.users[uid]
	if !ok {
		return nil, ErrObjectNotExist
	}
	u.ID = uid
	return &u, nil
}

func (c *memCatalog) Transaction(ctx context.Context, timeout time.Duration, fn func(tx CatalogTx) error) error {
	c.calls["Transaction"]++
	folders := make(map[string]model.Folder, len(c.folders))
	for k, v := range c.folders {
		folders[k] = v
	}
	files := make(map[string]model.File, len(c.files))
	for k, v := range c.files {
		files[k] = v
	}
	users := make(map[uint]model.User, len(c.users))
	for k, v := range c.users {
		users[k] = v
	}
	notifications := append([]model.Notification(nil), c.notifications...)

	if err := fn(&memTx{c: c}); err != nil {
		c.folders, c.files, c.users, c.notifications = folders, files, users, notifications
		return err
	}
	return nil
}

type memTx struct {
	c *memCatalog
}

func (t *memTx) hit(method string) error {
	t.c.calls[method]++
	if t.c.failWrite == method {
		return errMock
	}
	return nil
}

func (t *memTx) InsertFolders(folders []model.Folder) error {
	if err := t.hit("InsertFolders"); err != nil {
		return err
	}
	for _, f := range folders {
		if _, ok := t.c.folders[f.ID]; ok {
			return fmt.Errorf("duplicated id %q", f.ID)
		}
		t.c.folders[f.ID] = f
	}
	return nil
}

func (t *memTx) InsertFiles(files []model.File) error {
	if err := t.hit("InsertFiles"); err != nil {
		return err
	}
	for _, f := range files {
		if _, ok := t.c.files[f.ID]; ok {
			return fmt.Errorf("duplicated id %q", f.ID)
		}
		t.c.files[f.ID] = f
	}
	return nil
}

func (t *memTx) MoveFolders(moves []FolderMove) error {
	if err := t.hit("MoveFolders"); err != nil {
		return err
	}
	for _, m := range moves {
		f := t.c.folders[m.ID]
		f.ParentID, f.Name = m.ParentID, m.Name
		t.c.folders[m.ID] = f
	}
	return nil
}

func (t *memTx) MoveFiles(moves []FileMove) error {
	if err := t.hit("MoveFiles"); err != nil {
		return err
	}
	for _, m := range moves {
		f := t.c.files[m.ID]
		f.ParentID, f.Name, f.ObjectPath = m.ParentID, m.Name, m.ObjectPath
		t.c.files[m.ID] = f
	}
	return nil
}

func (t *memTx) RenameFolder(id, name string) error {
	if err := t.hit("RenameFolder"); err != nil {
		return err
	}
	f := t.c.folders[id]
	f.Name = name
	t.c.folders[id] = f
	return nil
}

func (t *memTx) RenameFile(id, name, objectPath string) error {
	if err := t.hit("RenameFile"); err != nil {
		return err
	}
	f := t.c.files[id]
	f.Name, f.ObjectPath = name, objectPath
	t.c.files[id] = f
	return nil
}

func (t *memTx) SetArchived(folders, files []string, archived bool) error {
	if err := t.hit("SetArchived"); err != nil {
		return err
	}
	for _, id := range folders {
		f := t.c.folders[id]
		f.Archived = archived
		t.c.folders[id] = f
	}
	for _, id := range files {
		f := t.c.files[id]
		f.Archived = archived
		t.c.files[id] = f
	}
	return nil
}

func (t *memTx) DeleteFolders(ids []string) error {
	if err := t.hit("DeleteFolders"); err != nil {
		return err
	}
	for _, id := range ids {
		delete(t.c.folders, id)
	}
	return nil
}

func (t *memTx) DeleteFiles(ids []string) error {
	if err := t.hit("DeleteFiles"); err != nil {
		return err
	}
	for _, id := range ids {
		delete(t.c.files, id)
	}
	return nil
}

func (t *memTx) IncreaseStorage(uid uint, size uint64) error {
	if err := t.hit("IncreaseStorage"); err != nil {
		return err
	}
	u := t.c.users[uid]
	u.Storage += size
	t.c.users[uid] = u
	return nil
}

func (t *memTx) DeductStorage(uid uint, size uint64) error {
	if err := t.hit("DeductStorage"); err != nil {
		return err
	}
	u := t.c.users[uid]
	if u.Storage >= size {
		u.Storage -= size
	} else {
		u.Storage = 0
	}
	t.c.users[uid] = u
	return nil
}

func (t *memTx) Notify(n *model.Notification) error {
	if err := t.hit("Notify"); err != nil {
		return err
	}
	t.c.notifications = append(t.c.notifications, *n)
	return nil
}

// memHandler is an in-memory object store.
type memHandler struct {
	mu      sync.Mutex
	objects map[string]uint64
	// failCopy and failDelete name keys whose operation fails.
	failCopy   map[string]bool
	failDelete map[string]bool
}

func newMemHandler() *memHandler {
	return &memHandler{
		objects:    make(map[string]uint64),
		failCopy:   make(map[string]bool),
		failDelete: make(map[string]bool),
	}
}

func (h *memHandler) Put(ctx context.Context, file io.Reader, dst string, size uint64) error {
	n, err := io.Copy(io.Discard, file)
	if err != nil {
		return err
	}
	if strings.Contains(dst, "fail") {
		return errMock
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects[dst] = uint64(n)
	return nil
}

func (h *memHandler) Copy(ctx context.Context, src, dst string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	size, ok := h.objects[src]
	if !ok || h.failCopy[src] {
		return errMock
	}
	h.objects[dst] = size
	return nil
}

func (h *memHandler) Delete(ctx context.Context, keys []string) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	failed := make([]string, 0)
	for _, k := range keys {
		if h.failDelete[k] {
			failed = append(failed, k)
			continue
		}
		delete(h.objects, k)
	}
	if len(failed) > 0 {
		return failed, errMock
	}
	return failed, nil
}

func (h *memHandler) List(ctx context.Context, prefix string, fn func([]driver.Object) error) error {
	h.mu.Lock()
	objects := make([]driver.Object, 0)
	for k, v := range h.objects {
		if strings.HasPrefix(k, prefix) {
			objects = append(objects, driver.Object{Key: k, Size: v})
		}
	}
	h.mu.Unlock()
	return fn(objects)
}

func (h *memHandler) has(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.objects[key]
	return ok
}

// seqIDs mints predictable identities.
func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func newTestFS(user *model.User, c *memCatalog, h *memHandler) *FileSystem {
	fs := NewFileSystem(user, c, h, DefaultOptions())
	fs.Options.RetryWait = time.Millisecond
	fs.newID = seqIDs("new")
	return fs
}

var ptr = util.ToPtr[string]
