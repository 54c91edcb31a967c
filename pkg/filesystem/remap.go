package filesystem

import (
	"fmt"

	model "github.com/docfold/docfold/models"
)

// Remap mints a fresh identity for rootOldID and every folder below it.
// folders must list parents before children, as Walk does.
func Remap(rootOldID string, folders []model.Folder, newID func() string) (map[string]string, error) {
	res := make(map[string]string, len(folders)+1)
	res[rootOldID] = newID()

	for _, folder := range folders {
		if folder.ParentID == nil {
			return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("folder %q has no parent", folder.ID))
		}
		if _, ok := res[*folder.ParentID]; !ok {
			return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("parent of folder %q is not mapped yet", folder.ID))
		}
		if _, ok := res[folder.ID]; ok {
			return nil, ErrCorruptHierarchy.WithError(fmt.Errorf("folder %q listed twice", folder.ID))
		}

		res[folder.ID] = newID()
	}

	return res, nil
}
