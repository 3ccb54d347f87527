package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
)

func TestCapabilityTable(t *testing.T) {
	cases := []struct {
		role string
		op   Op
		want bool
	}{
		{models.RoleUser, OpRead, true},
		{models.RoleUser, OpCreate, false},
		{models.RoleUser, OpUpdate, false},
		{models.RoleUser, OpDelete, false},
		{models.RoleUser, OpViewAudit, false},

		{models.RoleManager, OpRead, true},
		{models.RoleManager, OpCreate, true},
		{models.RoleManager, OpUpdate, true},
		{models.RoleManager, OpDelete, true},
		{models.RoleManager, OpDeleteInvoice, false},
		{models.RoleManager, OpManageUsers, false},
		{models.RoleManager, OpViewAudit, true},

		{models.RoleAdmin, OpDeleteInvoice, true},
		{models.RoleAdmin, OpManageUsers, true},
		{models.RoleAdmin, OpViewAudit, true},

		{"intern", OpRead, false},
		{"", OpRead, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Can(tc.role, tc.op), "role=%q op=%d", tc.role, tc.op)
	}
}

func TestRequireOrdering(t *testing.T) {
	// No session beats no permission: empty role is 401, not 403
	err := Require("", OpManageUsers)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	err = Require(models.RoleUser, OpManageUsers)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	assert.NoError(t, Require(models.RoleAdmin, OpManageUsers))
}
