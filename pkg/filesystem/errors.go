package filesystem

import (
	"github.com/docfold/docfold/pkg/serializer"
)

var (
	ErrUnauthorized         = serializer.NewError(serializer.CodeNoPermissionErr, "You are not allowed to access these items", nil)
	ErrObjectNotExist       = serializer.NewError(serializer.CodeNotFound, "Item not found", nil)
	ErrPathNotExist         = serializer.NewError(serializer.CodeParentNotExist, "Parent folder not found", nil)
	ErrInvalidDestination   = serializer.NewError(serializer.CodeInvalidDestination, "Invalid destination", nil)
	ErrNameSpaceExhausted   = serializer.NewError(serializer.CodeNameSpaceExhausted, "Cannot find a free name at destination", nil)
	ErrInsufficientCapacity = serializer.NewError(serializer.CodeInsufficientCapacity, "Insufficient capacity", nil)
	ErrObjectStoreFailure   = serializer.NewError(serializer.CodeObjectStoreFailure, "Object store operation failed", nil)
	ErrCatalogFailure       = serializer.NewError(serializer.CodeDBError, "Failed to update catalog", nil)
	ErrCatalogRead          = serializer.NewError(serializer.CodeDBReadError, "Failed to read catalog", nil)
	ErrCorruptHierarchy     = serializer.NewError(serializer.CodeCorruptHierarchy, "Folder hierarchy is corrupted", nil)
	ErrIllegalObjectName    = serializer.NewError(serializer.CodeIllegalObjectName, "Invalid object name", nil)
	ErrFileExisted          = serializer.NewError(serializer.CodeObjectExist, "Object existed", nil)
	ErrNotFullySuccess      = serializer.NewError(serializer.CodeNotFullySuccess, "Some items cannot be deleted", nil)
)
