// Package mongostore implements the store interfaces on MongoDB collections.
package mongostore

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/store"
)

// New wires every entity store against collections of db.
func New(db *mongo.Database) store.Stores {
	return store.Stores{
		Devices:    &DeviceStore{coll: db.Collection("devices")},
		Components: &ComponentStore{coll: db.Collection("components")},
		Employees:  &EmployeeStore{coll: db.Collection("employees")},
		Accounts:   &AccountStore{coll: db.Collection("accounts")},
		Invoices:   &InvoiceStore{coll: db.Collection("invoices")},
		Users:      &UserStore{coll: db.Collection("users")},
		Audit:      &AuditStore{coll: db.Collection("audit_logs")},
	}
}

func findErr(err error, what string) error {
	if err == mongo.ErrNoDocuments {
		return apperr.Newf(apperr.KindNotFound, "%s not found", what)
	}
	return apperr.Wrap(apperr.KindOperationFailed, what+" lookup failed", err)
}

func writeErr(err error, what string) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Newf(apperr.KindDuplicateKey, "%s violates a unique constraint", what)
	}
	return apperr.Wrap(apperr.KindOperationFailed, what+" write failed", err)
}
