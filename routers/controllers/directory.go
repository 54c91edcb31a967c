package controllers

import (
	"github.com/docfold/docfold/service/explorer"
	"github.com/gin-gonic/gin"
)

// ListDirectory lists the children of a folder.
func ListDirectory(c *gin.Context) {
	var service explorer.DirectoryService
	if err := c.ShouldBindQuery(&service); err == nil {
		reply(c, service.ListDirectory(c.Request.Context(), c, c.Param("id")))
	} else {
		reply(c, ErrorResponse(err))
	}
}

// CreateDirectory creates a folder.
func CreateDirectory(c *gin.Context) {
	var service explorer.DirectoryCreateService
	if err := c.ShouldBindJSON(&service); err == nil {
		reply(c, service.CreateDirectory(c.Request.Context(), c))
	} else {
		reply(c, ErrorResponse(err))
	}
}
