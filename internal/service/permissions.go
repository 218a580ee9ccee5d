package service

import (
	"github.com/delvoid/authgate/internal/apierror"
	"github.com/delvoid/authgate/internal/model"
)

// CheckPermissions allows access to a resource for its owner or an admin
// and rejects everyone else.
func CheckPermissions(caller model.TokenUser, resourceUserID string) error {
	if caller.Role == model.RoleAdmin {
		return nil
	}
	if caller.UserID == resourceUserID {
		return nil
	}
	return apierror.Forbidden("Not authorized to access this route")
}
