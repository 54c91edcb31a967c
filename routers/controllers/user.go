package controllers

import (
	"github.com/docfold/docfold/service/user"
	"github.com/gin-gonic/gin"
)

// ListNotifications lists unread notifications of the current user.
func ListNotifications(c *gin.Context) {
	var service user.NotificationService
	if err := c.ShouldBindQuery(&service); err == nil {
		reply(c, service.List(c, CurrentUser(c)))
	} else {
		reply(c, ErrorResponse(err))
	}
}
