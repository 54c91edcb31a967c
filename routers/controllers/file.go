package controllers

import (
	"github.com/docfold/docfold/service/explorer"
	"github.com/gin-gonic/gin"
)

// FileUpload stores a file sent as multipart form.
func FileUpload(c *gin.Context) {
	var service explorer.UploadService
	if err := c.ShouldBind(&service); err == nil {
		reply(c, service.Upload(c.Request.Context(), c))
	} else {
		reply(c, ErrorResponse(err))
	}
}
