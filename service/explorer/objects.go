package explorer

import (
	"context"
	"errors"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/filesystem"
	"github.com/docfold/docfold/pkg/serializer"
	"github.com/gin-gonic/gin"
)

// ItemTransferService copies or moves a batch of items.
type ItemTransferService struct {
	Items []filesystem.ItemRef `json:"items" binding:"required,min=1,dive"`
	// Dst is the destination folder, empty for the scope root.
	Dst      string       `json:"dst"`
	Src      ScopeService `json:"src"`
	DstScope ScopeService `json:"dst_scope"`
}

// ItemRenameService renames one item.
type ItemRenameService struct {
	Item    filesystem.ItemRef `json:"item"`
	NewName string             `json:"new_name" binding:"required,min=1,max=255"`
	Scope   ScopeService       `json:"scope"`
}

// ItemService addresses a batch of items of one scope.
type ItemService struct {
	Items []filesystem.ItemRef `json:"items" binding:"required,min=1,dive"`
	Scope ScopeService         `json:"scope"`
}

func (service *ItemTransferService) scopes() (src, dst model.Scope, err error) {
	if src, err = service.Src.Raw(); err != nil {
		return
	}
	dst, err = service.DstScope.Raw()
	return
}

// Copy copies the items into Dst.
func (service *ItemTransferService) Copy(ctx context.Context, c *gin.Context) serializer.Response {
	src, dst, err := service.scopes()
	if err != nil {
		return serializer.Err(serializer.CodeParamErr, "", err)
	}

	fs, err := filesystem.NewFileSystemFromContext(c)
	if err != nil {
		return fsErr(err)
	}

	count, err := fs.Copy(ctx, service.Items, folderParam(service.Dst), src, dst)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}

	return serializer.Response{Data: AffectedResponse{Affected: count}}
}

// Move moves the items into Dst of the same scope.
func (service *ItemTransferService) Move(ctx context.Context, c *gin.Context) serializer.Response {
	src, dst, err := service.scopes()
	if err != nil {
		return serializer.Err(serializer.CodeParamErr, "", err)
	}

	fs, err := filesystem.NewFileSystemFromContext(c)
	if err != nil {
		return fsErr(err)
	}

	count, err := fs.Move(ctx, service.Items, folderParam(service.Dst), src, dst)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}

	return serializer.Response{Data: AffectedResponse{Affected: count}}
}

// Rename renames the item.
func (service *ItemRenameService) Rename(ctx context.Context, c *gin.Context) serializer.Response {
	scope, err := service.Scope.Raw()
	if err != nil {
		return serializer.Err(serializer.CodeParamErr, "", err)
	}

	fs, err := filesystem.NewFileSystemFromContext(c)
	if err != nil {
		return fsErr(err)
	}

	if err := fs.Rename(ctx, service.Item, service.NewName, scope); err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}

	return serializer.Response{}
}

// Delete removes the items with everything below them.
func (service *ItemService) Delete(ctx context.Context, c *gin.Context) serializer.Response {
	scope, err := service.Scope.Raw()
	if err != nil {
		return serializer.Err(serializer.CodeParamErr, "", err)
	}

	fs, err := filesystem.NewFileSystemFromContext(c)
	if err != nil {
		return fsErr(err)
	}

	count, err := fs.Delete(ctx, service.Items, scope)
	if err != nil {
		res := serializer.Err(serializer.CodeNotSet, err.Error(), err)
		if errors.Is(err, filesystem.ErrNotFullySuccess) {
			res.Data = AffectedResponse{Affected: count}
		}
		return res
	}

	return serializer.Response{Data: AffectedResponse{Affected: count}}
}

// Archive flags the items and their descendants as archived.
func (service *ItemService) Archive(ctx context.Context, c *gin.Context) serializer.Response {
	return service.setArchived(ctx, c, true)
}

// Unarchive clears the archived flag of the items and their descendants.
func (service *ItemService) Unarchive(ctx context.Context, c *gin.Context) serializer.Response {
	return service.setArchived(ctx, c, false)
}

func (service *ItemService) setArchived(ctx context.Context, c *gin.Context, archived bool) serializer.Response {
	scope, err := service.Scope.Raw()
	if err != nil {
		return serializer.Err(serializer.CodeParamErr, "", err)
	}

	fs, err := filesystem.NewFileSystemFromContext(c)
	if err != nil {
		return fsErr(err)
	}

	total := 0
	for _, item := range service.Items {
		op := fs.Archive
		if !archived {
			op = fs.Unarchive
		}

		count, err := op(ctx, item, scope)
		if err != nil {
			res := serializer.Err(serializer.CodeNotSet, err.Error(), err)
			res.Data = AffectedResponse{Affected: total}
			return res
		}
		total += count
	}

	return serializer.Response{Data: AffectedResponse{Affected: total}}
}
