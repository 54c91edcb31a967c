package filesystem

import (
	"errors"
	"fmt"
	"time"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/filesystem/driver"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefaultHandler is the object store used by filesystems built from a request.
var DefaultHandler driver.Handler

// ItemKind tells folders and files apart.
type ItemKind string

const (
	KindFolder ItemKind = "folder"
	KindFile   ItemKind = "file"
)

// ItemRef addresses one selected item.
type ItemRef struct {
	ID   string   `json:"id" binding:"required"`
	Kind ItemKind `json:"kind" binding:"required,oneof=folder file"`
}

// Options tunes the engine.
type Options struct {
	// ChunkSize bounds the rows written or queried per statement.
	ChunkSize int
	// TxTimeout bounds one catalog transaction.
	TxTimeout time.Duration
	// Concurrency is the number of object copies in flight.
	Concurrency int
	// CopyRetries is the number of extra attempts of a failed object copy.
	CopyRetries     int
	RetryWait       time.Duration
	MaxNameAttempts int
	MaxWalkedItems  int
	MaxWalkDepth    int
	// Bucket names the throttling bucket of object store requests.
	Bucket       string
	OpsPerSecond float64
	Burst        int
	// NotifyShared emits a notification after transfers into shared scopes.
	NotifyShared bool
}

// DefaultOptions returns the built-in tunables.
func DefaultOptions() Options {
	return Options{
		ChunkSize:       100,
		TxTimeout:       120 * time.Second,
		Concurrency:     8,
		CopyRetries:     2,
		RetryWait:       time.Second,
		MaxNameAttempts: 999,
		MaxWalkedItems:  1000000,
		MaxWalkDepth:    65535,
		Burst:           1,
		NotifyShared:    true,
	}
}

// OptionsFromSettings reads the tunables from settings and config.
func OptionsFromSettings() Options {
	def := DefaultOptions()
	return Options{
		ChunkSize:       positive(model.GetIntSetting("transfer_chunk_size", def.ChunkSize), def.ChunkSize),
		TxTimeout:       model.GetDurationSetting("transfer_tx_timeout", def.TxTimeout),
		Concurrency:     positive(model.GetIntSetting("transfer_concurrency", def.Concurrency), def.Concurrency),
		CopyRetries:     model.GetIntSetting("transfer_copy_retries", def.CopyRetries),
		RetryWait:       model.GetDurationSetting("transfer_retry_wait", def.RetryWait),
		MaxNameAttempts: positive(model.GetIntSetting("max_name_attempts", def.MaxNameAttempts), def.MaxNameAttempts),
		MaxWalkedItems:  positive(model.GetIntSetting("max_walked_items", def.MaxWalkedItems), def.MaxWalkedItems),
		MaxWalkDepth:    positive(model.GetIntSetting("max_walk_depth", def.MaxWalkDepth), def.MaxWalkDepth),
		Bucket:          conf.ObjectStoreConfig.Bucket,
		OpsPerSecond:    conf.ObjectStoreConfig.OpsPerSecond,
		Burst:           conf.ObjectStoreConfig.Burst,
		NotifyShared:    model.IsTrueVal(model.GetSettingByNameWithDefault("notify_shared_transfer", "1")),
	}
}

func positive(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// FileSystem manages the items visible to one acting user.
type FileSystem struct {
	// User is the acting user.
	User *model.User

	Catalog Catalog
	Handler driver.Handler
	Options Options

	newID func() string
}

// NewFileSystem builds a filesystem for user.
func NewFileSystem(user *model.User, catalog Catalog, handler driver.Handler, opts Options) *FileSystem {
	return &FileSystem{
		User:    user,
		Catalog: catalog,
		Handler: handler,
		Options: opts,
		newID:   uuid.NewString,
	}
}

// NewFileSystemFromContext builds a filesystem for the user attached to c.
func NewFileSystemFromContext(c *gin.Context) (*FileSystem, error) {
	user, ok := c.Get("user")
	if !ok {
		return nil, errors.New("no user attached to request")
	}

	u, ok := user.(*model.User)
	if !ok {
		return nil, errors.New("invalid user attached to request")
	}

	if DefaultHandler == nil {
		return nil, ErrObjectStoreFailure.WithError(errors.New("object store is not initialized"))
	}

	return NewFileSystem(u, NewDBCatalog(), DefaultHandler, OptionsFromSettings()), nil
}

// authorize checks that the acting user may touch items of scope.
// Administrators reach every scope, others only their own shared items.
func (fs *FileSystem) authorize(scope model.Scope) error {
	if !scope.Valid() {
		return ErrUnauthorized.WithError(fmt.Errorf("invalid scope %d/%q", scope.OwnerID, scope.Visibility))
	}

	if fs.User.IsAdmin() {
		return nil
	}

	if scope.OwnerID != fs.User.ID || scope.Visibility != model.VisibilityShared {
		return ErrUnauthorized
	}

	return nil
}
