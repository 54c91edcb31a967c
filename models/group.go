package model

import (
	"github.com/jinzhu/gorm"
)

// Group carries the quota and privileges shared by its users.
type Group struct {
	gorm.Model
	Name string
	// MaxStorage in bytes, 0 means unlimited.
	MaxStorage uint64
	Admin      bool
}

// GetGroupByID loads a group.
func GetGroupByID(ID interface{}) (Group, error) {
	var group Group
	result := DB.First(&group, ID)
	return group, result.Error
}
