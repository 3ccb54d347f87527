// Package store defines the persistence interfaces the services and handlers
// operate against. The mongostore subpackage backs them with MongoDB; the
// memstore subpackage is an in-memory implementation used by tests.
//
// Implementations translate backend failures into apperr kinds: a missing
// document is apperr.KindNotFound, a unique-index violation is
// apperr.KindDuplicateKey. Account implementations must call
// (*models.Account).Normalize before every insert and update.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/models"
)

// DeviceFilter narrows List results. Zero-value fields are ignored.
type DeviceFilter struct {
	Status     string
	Type       string
	AssignedTo *primitive.ObjectID
}

type ComponentFilter struct {
	Status      string
	Type        string
	AssignedTo  *primitive.ObjectID
	InstalledIn *primitive.ObjectID
}

type EmployeeFilter struct {
	Status     string
	Department string
}

type AccountFilter struct {
	Status           string
	Type             string
	AssignmentStatus string
	AssignedTo       *primitive.ObjectID
}

type InvoiceFilter struct {
	Status string
	Vendor string
}

type DeviceStore interface {
	Insert(ctx context.Context, d *models.Device) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Device, error)
	Update(ctx context.Context, d *models.Device) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, f DeviceFilter) ([]models.Device, error)
}

type ComponentStore interface {
	Insert(ctx context.Context, c *models.Component) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Component, error)
	Update(ctx context.Context, c *models.Component) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, f ComponentFilter) ([]models.Component, error)
}

type EmployeeStore interface {
	Insert(ctx context.Context, e *models.Employee) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, f EmployeeFilter) ([]models.Employee, error)
}

type AccountStore interface {
	Insert(ctx context.Context, a *models.Account) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, f AccountFilter) ([]models.Account, error)
}

type InvoiceStore interface {
	Insert(ctx context.Context, i *models.Invoice) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error)
	Update(ctx context.Context, i *models.Invoice) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	List(ctx context.Context) ([]models.User, error)
}

type AuditStore interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit int64) ([]models.AuditLog, error)
}

// Stores bundles every entity store for wiring.
type Stores struct {
	Devices    DeviceStore
	Components ComponentStore
	Employees  EmployeeStore
	Accounts   AccountStore
	Invoices   InvoiceStore
	Users      UserStore
	Audit      AuditStore
}
