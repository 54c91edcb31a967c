package controllers

import (
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/serializer"
	"github.com/gin-gonic/gin"
)

// Ping reports the running version.
func Ping(c *gin.Context) {
	c.JSON(200, serializer.Response{
		Code: 0,
		Data: conf.BackendVersion,
	})
}
