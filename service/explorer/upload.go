package explorer

import (
	"context"
	"mime/multipart"

	"github.com/docfold/docfold/pkg/filesystem"
	"github.com/docfold/docfold/pkg/serializer"
	"github.com/gin-gonic/gin"
)

// UploadService stores one file sent as multipart form.
type UploadService struct {
	ScopeService
	Parent string                `form:"parent"`
	Name   string                `form:"name" binding:"max=255"`
	File   *multipart.FileHeader `form:"file" binding:"required"`
}

// Upload stores the file under Parent. The part file name is used when Name is empty.
func (service *UploadService) Upload(ctx context.Context, c *gin.Context) serializer.Response {
	scope, err := service.Raw()
	if err != nil {
		return serializer.Err(serializer.CodeParamErr, "", err)
	}

	fs, err := filesystem.NewFileSystemFromContext(c)
	if err != nil {
		return fsErr(err)
	}

	name := service.Name
	if name == "" {
		name = service.File.Filename
	}

	body, err := service.File.Open()
	if err != nil {
		return serializer.Err(serializer.CodeIOFailed, "Failed to read upload", err)
	}
	defer body.Close()

	file, err := fs.Upload(ctx, &filesystem.UploadRequest{
		Parent: folderParam(service.Parent),
		Name:   name,
		Size:   uint64(service.File.Size),
		Body:   body,
	}, scope)
	if err != nil {
		return serializer.Err(serializer.CodeUploadFailed, err.Error(), err)
	}

	return serializer.Response{
		Data: BuildFile(file),
	}
}
