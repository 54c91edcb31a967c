package controllers

import (
	"github.com/docfold/docfold/service/explorer"
	"github.com/gin-gonic/gin"
)

// Copy copies a batch of items.
func Copy(c *gin.Context) {
	var service explorer.ItemTransferService
	if err := c.ShouldBindJSON(&service); err == nil {
		reply(c, service.Copy(c.Request.Context(), c))
	} else {
		reply(c, ErrorResponse(err))
	}
}

// Move moves a batch of items.
func Move(c *gin.Context) {
	var service explorer.ItemTransferService
	if err := c.ShouldBindJSON(&service); err == nil {
		reply(c, service.Move(c.Request.Context(), c))
	} else {
		reply(c, ErrorResponse(err))
	}
}

// Rename renames one item.
func Rename(c *gin.Context) {
	var service explorer.ItemRenameService
	if err := c.ShouldBindJSON(&service); err == nil {
		reply(c, service.Rename(c.Request.Context(), c))
	} else {
		reply(c, ErrorResponse(err))
	}
}

// Delete removes a batch of items.
func Delete(c *gin.Context) {
	var service explorer.ItemService
	if err := c.ShouldBindJSON(&service); err == nil {
		reply(c, service.Delete(c.Request.Context(), c))
	} else {
		reply(c, ErrorResponse(err))
	}
}

// Archive flags a batch of items as archived.
func Archive(c *gin.Context) {
	var service explorer.ItemService
	if err := c.ShouldBindJSON(&service); err == nil {
		reply(c, service.Archive(c.Request.Context(), c))
	} else {
		reply(c, ErrorResponse(err))
	}
}

// Unarchive clears the archived flag of a batch of items.
func Unarchive(c *gin.Context) {
	var service explorer.ItemService
	if err := c.ShouldBindJSON(&service); err == nil {
		reply(c, service.Unarchive(c.Request.Context(), c))
	} else {
		reply(c, ErrorResponse(err))
	}
}
