package explorer

import (
	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/hashid"
	"github.com/docfold/docfold/pkg/serializer"
)

// ScopeService addresses the (owner, visibility) partition of a request.
// Owner is the hashed ID of the owning user.
type ScopeService struct {
	Owner      string `json:"owner" form:"owner" binding:"required"`
	Visibility string `json:"visibility" form:"visibility" binding:"required,oneof=private shared"`
}

// Raw decodes the scope.
func (service *ScopeService) Raw() (model.Scope, error) {
	uid, err := hashid.DecodeHashID(service.Owner, hashid.UserID)
	if err != nil {
		return model.Scope{}, serializer.NewError(serializer.CodeParamErr, "Invalid owner", err)
	}

	return model.Scope{OwnerID: uid, Visibility: model.Visibility(service.Visibility)}, nil
}
