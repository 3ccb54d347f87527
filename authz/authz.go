// Package authz is the single authorization policy: a capability table keyed
// by (operation class, role). Handlers consult it after the auth middleware
// has established a session and before any business-rule validation runs.
package authz

import (
	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
)

type Op int

const (
	// OpRead covers list/get on any entity.
	OpRead Op = iota
	// OpCreate and OpUpdate cover entity creation and mutation.
	OpCreate
	OpUpdate
	// OpDelete covers generic deletes.
	OpDelete
	// OpDeleteInvoice is stricter than OpDelete: admin only.
	OpDeleteInvoice
	// OpManageUsers covers user account administration.
	OpManageUsers
	// OpViewAudit covers reading the audit trail.
	OpViewAudit
)

var capabilities = map[Op]map[string]bool{
	OpRead: {
		models.RoleAdmin:   true,
		models.RoleManager: true,
		models.RoleUser:    true,
	},
	OpCreate: {
		models.RoleAdmin:   true,
		models.RoleManager: true,
	},
	OpUpdate: {
		models.RoleAdmin:   true,
		models.RoleManager: true,
	},
	OpDelete: {
		models.RoleAdmin:   true,
		models.RoleManager: true,
	},
	OpDeleteInvoice: {
		models.RoleAdmin: true,
	},
	OpManageUsers: {
		models.RoleAdmin: true,
	},
	OpViewAudit: {
		models.RoleAdmin:   true,
		models.RoleManager: true,
	},
}

func Can(role string, op Op) bool {
	return capabilities[op][role]
}

// Require returns an Unauthorized error when role is empty (no session) and
// a Forbidden error when the role lacks the capability. The ordering matters:
// authentication is checked before authorization.
func Require(role string, op Op) error {
	if role == "" {
		return apperr.New(apperr.KindUnauthorized, "authentication required")
	}
	if !Can(role, op) {
		return apperr.New(apperr.KindForbidden, "insufficient permissions")
	}
	return nil
}
