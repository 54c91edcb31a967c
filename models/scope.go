package model

import "github.com/jinzhu/gorm"

// Visibility classifies who besides administrators can see an item.
type Visibility string

const (
	// VisibilityPrivate items are only visible to administrators.
	VisibilityPrivate Visibility = "private"
	// VisibilityShared items are visible to their owner as well.
	VisibilityShared Visibility = "shared"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityShared
}

// Scope is the (owner, visibility) partition every item lives in.
type Scope struct {
	OwnerID    uint       `json:"owner_id"`
	Visibility Visibility `json:"visibility"`
}

// Valid reports whether the scope can address items.
func (s Scope) Valid() bool {
	return s.OwnerID > 0 && s.Visibility.Valid()
}

// In narrows db to rows of this scope.
func (s Scope) In(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ? AND visibility = ?", s.OwnerID, string(s.Visibility))
}

// underParent narrows db to direct children of parent, nil meaning the scope root.
func underParent(db *gorm.DB, parent *string) *gorm.DB {
	if parent == nil {
		return db.Where("parent_id IS NULL")
	}
	return db.Where("parent_id = ?", *parent)
}
