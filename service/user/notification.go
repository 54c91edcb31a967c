package user

import (
	"time"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/serializer"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const defaultNotificationLimit = 20

// NotificationService lists unread notifications of the current user.
type NotificationService struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Notification is the client view of a notification.
type Notification struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns the newest unread notifications of user.
func (service *NotificationService) List(c *gin.Context, user *model.User) serializer.Response {
	limit := service.Limit
	if limit == 0 {
		limit = defaultNotificationLimit
	}

	res, err := model.GetUnreadNotifications(user.ID, limit)
	if err != nil {
		return serializer.Err(serializer.CodeDBReadError, "Failed to list notifications", err)
	}

	return serializer.Response{Data: lo.Map(res, func(n model.Notification, _ int) Notification {
		return Notification{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		}
	})}
}
