package model

import (
	"github.com/jinzhu/gorm"
)

// Notification tells a user about something that happened to their items.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index:notification_user"`
	Title   string `gorm:"size:255"`
	Content string `gorm:"type:text"`
	Seen    bool
}

// Create saves the notification inside tx.
func (n *Notification) Create(tx *gorm.DB) error {
	return tx.Create(n).Error
}

// GetUnreadNotifications lists at most limit unread notifications, newest first.
func GetUnreadNotifications(uid uint, limit int) ([]Notification, error) {
	var res []Notification
	err := DB.Where("user_id = ? AND seen = ?", uid, false).Order("id desc").Limit(limit).Find(&res).Error
	return res, err
}
