package model

import (
	"github.com/jinzhu/gorm"
)

const (
	// Active account in good standing
	Active = iota
	// Baned account is refused by every operation
	Baned
)

// User is an account resolved by the gateway.
type User struct {
	gorm.Model
	Email   string `gorm:"type:varchar(100);unique_index"`
	Nick    string `gorm:"size:50"`
	Status  int
	GroupID uint
	// Storage is the number of bytes charged to the user.
	Storage uint64

	Group Group `gorm:"save_associations:false:false"`
}

// GetUserByID loads a user with its group.
func GetUserByID(ID interface{}) (User, error) {
	var user User
	result := DB.Set("gorm:auto_preload", true).First(&user, ID)
	return user, result.Error
}

// GetActiveUserByID loads a user that is not banned.
func GetActiveUserByID(ID interface{}) (User, error) {
	var user User
	result := DB.Set("gorm:auto_preload", true).Where("status = ?", Active).First(&user, ID)
	return user, result.Error
}

// IsAdmin reports whether the user may manage private items of every owner.
func (user *User) IsAdmin() bool {
	return user.Group.Admin
}

// GetRemainingCapacity returns the bytes left before the group limit, 0 if exhausted.
// Unlimited groups report the largest value.
func (user *User) GetRemainingCapacity() uint64 {
	if user.Group.MaxStorage == 0 {
		return ^uint64(0)
	}
	if user.Group.MaxStorage <= user.Storage {
		return 0
	}
	return user.Group.MaxStorage - user.Storage
}

// IncreaseStorage charges size bytes to user uid inside tx.
func IncreaseStorage(tx *gorm.DB, uid uint, size uint64) error {
	if size == 0 {
		return nil
	}
	return tx.Model(&User{}).Where("id = ?", uid).
		UpdateColumn("storage", gorm.Expr("storage + ?", size)).Error
}

// DeductStorage releases size bytes from user uid inside tx, flooring at zero.
func DeductStorage(tx *gorm.DB, uid uint, size uint64) error {
	if size == 0 {
		return nil
	}
	return tx.Model(&User{}).Where("id = ?", uid).
		UpdateColumn("storage", gorm.Expr("CASE WHEN storage >= ? THEN storage - ? ELSE 0 END", size, size)).Error
}
