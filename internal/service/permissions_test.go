package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/delvoid/authgate/internal/model"
)

func TestCheckPermissions(t *testing.T) {
	admin := model.TokenUser{Name: "Admin", UserID: "admin-id", Role: model.RoleAdmin}
	user := model.TokenUser{Name: "User", UserID: "user-id", Role: model.RoleUser}

	assert.NoError(t, CheckPermissions(admin, "anyone-else"))
	assert.NoError(t, CheckPermissions(user, "user-id"))

	err := CheckPermissions(user, "someone-else")
	assert.EqualError(t, err, "Not authorized to access this route")
}
