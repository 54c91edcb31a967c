package explorer

import (
	"time"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/filesystem"
	"github.com/docfold/docfold/pkg/hashid"
)

// Object is a folder or file as seen by clients.
type Object struct {
	ID         string              `json:"id"`
	Kind       filesystem.ItemKind `json:"kind"`
	Name       string              `json:"name"`
	Parent     *string             `json:"parent"`
	Size       uint64              `json:"size"`
	Owner      string              `json:"owner"`
	Uploader   string              `json:"uploader"`
	Visibility model.Visibility    `json:"visibility"`
	Archived   bool                `json:"archived"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// ObjectList lists the children of a folder.
type ObjectList struct {
	Parent  *string  `json:"parent"`
	Objects []Object `json:"objects"`
}

// AffectedResponse reports how many items a batch touched.
type AffectedResponse struct {
	Affected int `json:"affected"`
}

// BuildFolder serializes a folder.
func BuildFolder(f *model.Folder) Object {
	return Object{
		ID:         f.ID,
		Kind:       filesystem.KindFolder,
		Name:       f.Name,
		Parent:     f.ParentID,
		Owner:      hashid.HashID(f.OwnerID, hashid.UserID),
		Uploader:   hashid.HashID(f.UploaderID, hashid.UserID),
		Visibility: f.Visibility,
		Archived:   f.Archived,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// BuildFile serializes a file.
func BuildFile(f *model.File) Object {
	return Object{
		ID:         f.ID,
		Kind:       filesystem.KindFile,
		Name:       f.Name,
		Parent:     f.ParentID,
		Size:       f.Size,
		Owner:      hashid.HashID(f.OwnerID, hashid.UserID),
		Uploader:   hashid.HashID(f.UploaderID, hashid.UserID),
		Visibility: f.Visibility,
		Archived:   f.Archived,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// BuildObjectList serializes folders first, then files.
func BuildObjectList(parent *string, folders []model.Folder, files []model.File) ObjectList {
	res := ObjectList{
		Parent:  parent,
		Objects: make([]Object, 0, len(folders)+len(files)),
	}
	for i := range folders {
		res.Objects = append(res.Objects, BuildFolder(&folders[i]))
	}
	for i := range files {
		res.Objects = append(res.Objects, BuildFile(&files[i]))
	}
	return res
}
