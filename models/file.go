package model

import (
	"strings"
	"time"

	"github.com/jinzhu/gorm"
)

// File is a leaf of the virtual filesystem backed by one object.
type File struct {
	ID         string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	ParentID   *string    `gorm:"type:varchar(36);index:file_parent" json:"parent_id"`
	ObjectPath string     `gorm:"type:text;not null" json:"-"`
	Size       uint64     `json:"size"`
	OwnerID    uint       `gorm:"index:file_scope;not null" json:"owner_id"`
	UploaderID uint       `json:"uploader_id"`
	Visibility Visibility `gorm:"size:16;index:file_scope;not null" json:"visibility"`
	Archived   bool       `json:"archived"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Scope returns the partition the file belongs to.
func (file *File) Scope() Scope {
	return Scope{OwnerID: file.OwnerID, Visibility: file.Visibility}
}

// GetFileByID finds a file of the scope.
func GetFileByID(id string, scope Scope) (File, error) {
	var file File
	err := scope.In(DB).Where("id = ?", id).First(&file).Error
	return file, err
}

// GetFilesByParentIDs lists the direct child files of every given parent.
func GetFilesByParentIDs(ids []string, scope Scope) ([]File, error) {
	var files []File
	err := scope.In(DB).Where("parent_id IN (?)", ids).Order("name").Find(&files).Error
	return files, err
}

// GetFilesByParent lists the child files of parent, nil for the scope root.
func GetFilesByParent(parent *string, scope Scope) ([]File, error) {
	var files []File
	err := underParent(scope.In(DB), parent).Order("name").Find(&files).Error
	return files, err
}

// GetChildNames returns the names of every folder and file directly under parent.
func GetChildNames(parent *string, scope Scope) ([]string, error) {
	var folderNames, fileNames []string
	if err := underParent(scope.In(DB.Model(&Folder{})), parent).Pluck("name", &folderNames).Error; err != nil {
		return nil, err
	}
	if err := underParent(scope.In(DB.Model(&File{})), parent).Pluck("name", &fileNames).Error; err != nil {
		return nil, err
	}
	return append(folderNames, fileNames...), nil
}

// GetReferencedObjectPaths returns the subset of paths some file row points at.
func GetReferencedObjectPaths(paths []string) (map[string]bool, error) {
	var found []string
	if err := DB.Model(&File{}).Where("object_path IN (?)", paths).Pluck("object_path", &found).Error; err != nil {
		return nil, err
	}

	res := make(map[string]bool, len(found))
	for _, p := range found {
		res[p] = true
	}
	return res, nil
}

// InsertFiles writes all rows with one statement.
func InsertFiles(tx *gorm.DB, files []File) error {
	if len(files) == 0 {
		return nil
	}

	now := time.Now()
	placeholders := make([]string, 0, len(files))
	values := make([]interface{}, 0, len(files)*11)
	for _, f := range files {
		placeholders = append(placeholders, "(?,?,?,?,?,?,?,?,?,?,?)")
		values = append(values, f.ID, f.Name, f.ParentID, f.ObjectPath, f.Size, f.OwnerID, f.UploaderID,
			string(f.Visibility), f.Archived, now, now)
	}

	table := tx.NewScope(&File{}).TableName()
	return tx.Exec(
		"INSERT INTO "+table+" (id,name,parent_id,object_path,size,owner_id,uploader_id,visibility,archived,created_at,updated_at) VALUES "+
			strings.Join(placeholders, ","),
		values...,
	).Error
}

// FileMove re-points one file and records its new object path.
type FileMove struct {
	ID         string
	ParentID   *string
	Name       string
	ObjectPath string
}

// MoveFiles applies all moves with one statement.
func MoveFiles(tx *gorm.DB, moves []FileMove) error {
	if len(moves) == 0 {
		return nil
	}

	parents := make([]interface{}, 0, len(moves)*2)
	names := make([]interface{}, 0, len(moves)*2)
	paths := make([]interface{}, 0, len(moves)*2)
	ids := make([]interface{}, 0, len(moves))
	for _, m := range moves {
		parents = append(parents, m.ID, m.ParentID)
		names = append(names, m.ID, m.Name)
		paths = append(paths, m.ID, m.ObjectPath)
		ids = append(ids, m.ID)
	}

	values := append(append(append(parents, names...), paths...), time.Now())
	values = append(values, ids...)
	table := tx.NewScope(&File{}).TableName()
	return tx.Exec(
		"UPDATE "+table+" SET "+caseByID("parent_id", len(moves))+", "+caseByID("name", len(moves))+", "+
			caseByID("object_path", len(moves))+", updated_at = ? WHERE id IN ("+inList(len(moves))+")",
		values...,
	).Error
}

// caseByID assigns column from n "WHEN id THEN value" pairs.
func caseByID(column string, n int) string {
	return column + " = CASE id" + strings.Repeat(" WHEN ? THEN ?", n) + " END"
}

// inList returns n comma separated placeholders.
func inList(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// RenameFile changes the name and object path of a file.
func RenameFile(tx *gorm.DB, id, name, objectPath string) error {
	return tx.Model(&File{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
		"name":        name,
		"object_path": objectPath,
		"updated_at":  time.Now(),
	}).Error
}

// SetFilesArchived flips the archived flag of the given files.
func SetFilesArchived(tx *gorm.DB, ids []string, archived bool) error {
	return tx.Model(&File{}).Where("id IN (?)", ids).UpdateColumns(map[string]interface{}{
		"archived":   archived,
		"updated_at": time.Now(),
	}).Error
}

// DeleteFileByIDs removes file rows.
func DeleteFileByIDs(tx *gorm.DB, ids []string) error {
	return tx.Where("id IN (?)", ids).Delete(&File{}).Error
}
