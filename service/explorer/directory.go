package explorer

import (
	"context"

	"github.com/docfold/docfold/pkg/filesystem"
	"github.com/docfold/docfold/pkg/serializer"
	"github.com/gin-gonic/gin"
)

// RootFolder addresses the scope root in routes taking a folder ID.
const RootFolder = "root"

// DirectoryService lists a folder.
type DirectoryService struct {
	ScopeService
}

// DirectoryCreateService creates a folder.
type DirectoryCreateService struct {
	ScopeService
	Parent *string `json:"parent"`
	Name   string  `json:"name" binding:"required,min=1,max=255"`
}

func folderParam(id string) *string {
	if id == "" || id == RootFolder {
		return nil
	}
	return &id
}

// fsErr wraps a failure to build the filesystem of a request.
func fsErr(err error) serializer.Response {
	return serializer.Err(serializer.CodeInternalSetting, "Failed to initialize filesystem", err)
}

// ListDirectory lists the children of folder id.
func (service *DirectoryService) ListDirectory(ctx context.Context, c *gin.Context, id string) serializer.Response {
	scope, err := service.Raw()
	if err != nil {
		return serializer.Err(serializer.CodeParamErr, "", err)
	}

	fs, err := filesystem.NewFileSystemFromContext(c)
	if err != nil {
		return fsErr(err)
	}

	parent := folderParam(id)
	folders, files, err := fs.List(ctx, parent, scope)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}

	return serializer.Response{
		Data: BuildObjectList(parent, folders, files),
	}
}

// CreateDirectory creates the folder, numbering its name on collision.
func (service *DirectoryCreateService) CreateDirectory(ctx context.Context, c *gin.Context) serializer.Response {
	scope, err := service.Raw()
	if err != nil {
		return serializer.Err(serializer.CodeParamErr, "", err)
	}

	fs, err := filesystem.NewFileSystemFromContext(c)
	if err != nil {
		return fsErr(err)
	}

	folder, err := fs.CreateFolder(ctx, service.Parent, service.Name, scope)
	if err != nil {
		return serializer.Err(serializer.CodeCreateFolderFailed, err.Error(), err)
	}

	return serializer.Response{
		Data: BuildFolder(folder),
	}
}
