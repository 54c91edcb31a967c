package model

import (
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

// Folder is a node of the virtual filesystem that owns no object.
type Folder struct {
	ID         string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	ParentID   *string    `gorm:"type:varchar(36);index:folder_parent" json:"parent_id"`
	OwnerID    uint       `gorm:"index:folder_scope;not null" json:"owner_id"`
	UploaderID uint       `json:"uploader_id"`
	Visibility Visibility `gorm:"size:16;index:folder_scope;not null" json:"visibility"`
	Archived   bool       `json:"archived"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Scope returns the partition the folder belongs to.
func (folder *Folder) Scope() Scope {
	return Scope{OwnerID: folder.OwnerID, Visibility: folder.Visibility}
}

// GetFolderByID finds a folder of the scope.
func GetFolderByID(id string, scope Scope) (Folder, error) {
	var folder Folder
	err := scope.In(DB).Where("id = ?", id).First(&folder).Error
	return folder, err
}

// GetFoldersByParentIDs lists the direct child folders of every given parent.
func GetFoldersByParentIDs(ids []string, scope Scope) ([]Folder, error) {
	var folders []Folder
	err := scope.In(DB).Where("parent_id IN (?)", ids).Order("name").Find(&folders).Error
	return folders, err
}

// GetFoldersByParent lists the child folders of parent, nil for the scope root.
func GetFoldersByParent(parent *string, scope Scope) ([]Folder, error) {
	var folders []Folder
	err := underParent(scope.In(DB), parent).Order("name").Find(&folders).Error
	return folders, err
}

// ErrBrokenAncestry is returned when a parent chain loops or is too deep.
var ErrBrokenAncestry = errors.New("ancestry exceeds depth limit or loops")

// TraceRoot returns the ancestry of the folder from the scope root down to
// the folder itself. Walks longer than maxDepth fail.
func TraceRoot(id string, scope Scope, maxDepth int) ([]Folder, error) {
	chain := make([]Folder, 0, 8)
	seen := make(map[string]bool)
	next := id

	for {
		if len(chain) >= maxDepth || seen[next] {
			return nil, errors.Wrapf(ErrBrokenAncestry, "folder %q, %d levels", id, maxDepth)
		}
		seen[next] = true

		folder, err := GetFolderByID(next, scope)
		if err != nil {
			return nil, err
		}
		chain = append(chain, folder)

		if folder.ParentID == nil {
			break
		}
		next = *folder.ParentID
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// InsertFolders writes all rows with one statement.
func InsertFolders(tx *gorm.DB, folders []Folder) error {
	if len(folders) == 0 {
		return nil
	}

	now := time.Now()
	placeholders := make([]string, 0, len(folders))
	values := make([]interface{}, 0, len(folders)*9)
	for _, f := range folders {
		placeholders = append(placeholders, "(?,?,?,?,?,?,?,?,?)")
		values = append(values, f.ID, f.Name, f.ParentID, f.OwnerID, f.UploaderID, string(f.Visibility), f.Archived, now, now)
	}

	table := tx.NewScope(&Folder{}).TableName()
	return tx.Exec(
		"INSERT INTO "+table+" (id,name,parent_id,owner_id,uploader_id,visibility,archived,created_at,updated_at) VALUES "+
			strings.Join(placeholders, ","),
		values...,
	).Error
}

// FolderMove re-points one folder under a parent with a possibly new name.
type FolderMove struct {
	ID       string
	ParentID *string
	Name     string
}

// MoveFolders applies all moves with one statement.
func MoveFolders(tx *gorm.DB, moves []FolderMove) error {
	if len(moves) == 0 {
		return nil
	}

	parents := make([]interface{}, 0, len(moves)*2)
	names := make([]interface{}, 0, len(moves)*2)
	ids := make([]interface{}, 0, len(moves))
	for _, m := range moves {
		parents = append(parents, m.ID, m.ParentID)
		names = append(names, m.ID, m.Name)
		ids = append(ids, m.ID)
	}

	values := append(append(parents, names...), time.Now())
	values = append(values, ids...)
	table := tx.NewScope(&Folder{}).TableName()
	return tx.Exec(
		"UPDATE "+table+" SET "+caseByID("parent_id", len(moves))+", "+caseByID("name", len(moves))+
			", updated_at = ? WHERE id IN ("+inList(len(moves))+")",
		values...,
	).Error
}

// RenameFolder changes the name of a folder.
func RenameFolder(tx *gorm.DB, id, name string) error {
	return tx.Model(&Folder{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
		"name":       name,
		"updated_at": time.Now(),
	}).Error
}

// SetFoldersArchived flips the archived flag of the given folders.
func SetFoldersArchived(tx *gorm.DB, ids []string, archived bool) error {
	return tx.Model(&Folder{}).Where("id IN (?)", ids).UpdateColumns(map[string]interface{}{
		"archived":   archived,
		"updated_at": time.Now(),
	}).Error
}

// DeleteFolderByIDs removes folder rows.
func DeleteFolderByIDs(tx *gorm.DB, ids []string) error {
	return tx.Where("id IN (?)", ids).Delete(&Folder{}).Error
}
