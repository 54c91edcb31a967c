package filesystem

import (
	"fmt"
	"strings"

	model "github.com/docfold/docfold/models"
)

// ScopePrefix is the key prefix of every object in scope.
func ScopePrefix(scope model.Scope) string {
	return fmt.Sprintf("%d/%s/", scope.OwnerID, scope.Visibility)
}

// ObjectKey builds the storage key of a file. ancestry holds the ids of the
// folders from the scope root down to the direct parent.
func ObjectKey(scope model.Scope, ancestry []string, id, name string) string {
	var sb strings.Builder
	sb.WriteString(ScopePrefix(scope))
	for _, folder := range ancestry {
		sb.WriteString(folder)
		sb.WriteByte('/')
	}
	sb.WriteString(id)
	sb.WriteByte('_')
	sb.WriteString(name)
	return sb.String()
}
