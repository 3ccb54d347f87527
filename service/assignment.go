// service/assignment.go
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
)

// Asset type discriminators accepted by Assign/Unassign.
const (
	AssetTypeDevice    = "device"
	AssetTypeComponent = "component"
	AssetTypeAccount   = "account"
)

// AssignmentService mediates the relationship between employees and devices,
// components, and accounts. A device or account is either unassigned or held
// by exactly one employee; a component has a third latent state, installed in
// a device, which is mutually exclusive with being held by an employee.
type AssignmentService struct {
	stores store.Stores
}

func NewAssignmentService(s store.Stores) *AssignmentService {
	return &AssignmentService{stores: s}
}

// Holdings is everything an employee currently holds, by reverse lookup.
type Holdings struct {
	Devices    []models.Device    `json:"devices"`
	Components []models.Component `json:"components"`
	Accounts   []models.Account   `json:"accounts"`
}

// Assign binds the asset to the employee. The asset must exist and be
// currently unheld; disposed devices and components cannot be assigned.
func (s *AssignmentService) Assign(ctx context.Context, employeeID primitive.ObjectID, assetType string, assetID primitive.ObjectID) (interface{}, error) {
	if _, err := s.stores.Employees.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}

	switch assetType {
	case AssetTypeDevice:
		return s.assignDevice(ctx, employeeID, assetID)
	case AssetTypeComponent:
		return s.assignComponent(ctx, employeeID, assetID)
	case AssetTypeAccount:
		return s.assignAccount(ctx, employeeID, assetID)
	default:
		return nil, apperr.Newf(apperr.KindValidation, "unknown asset type: %q", assetType)
	}
}

func (s *AssignmentService) assignDevice(ctx context.Context, employeeID, deviceID primitive.ObjectID) (*models.Device, error) {
	d, err := s.stores.Devices.FindByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if d.Status == models.DeviceStatusDisposed {
		return nil, apperr.New(apperr.KindValidation, "disposed device cannot be assigned")
	}
	if d.AssignedTo != nil {
		return nil, apperr.New(apperr.KindAlreadyAssigned, "device is already assigned")
	}
	d.AssignedTo = &employeeID
	if err := s.stores.Devices.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *AssignmentService) assignComponent(ctx context.Context, employeeID, componentID primitive.ObjectID) (*models.Component, error) {
	c, err := s.stores.Components.FindByID(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if c.Status == models.DeviceStatusDisposed {
		return nil, apperr.New(apperr.KindValidation, "disposed component cannot be assigned")
	}
	if c.InstalledIn != nil {
		return nil, apperr.New(apperr.KindConflictingAssignment,
			"component is installed in a device; uninstall it before assigning to an employee")
	}
	if c.AssignedTo != nil {
		return nil, apperr.New(apperr.KindAlreadyAssigned, "component is already assigned")
	}
	c.AssignedTo = &employeeID
	if err := s.stores.Components.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AssignmentService) assignAccount(ctx context.Context, employeeID, accountID primitive.ObjectID) (*models.Account, error) {
	a, err := s.stores.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a.AssignedTo != nil {
		return nil, apperr.New(apperr.KindAlreadyAssigned, "account is already assigned")
	}
	a.AssignedTo = &employeeID
	// assignmentStatus flips to "assigned" inside the store write path.
	if err := s.stores.Accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Unassign releases the asset, which must currently be held by employeeID.
func (s *AssignmentService) Unassign(ctx context.Context, assetType string, assetID, employeeID primitive.ObjectID) (interface{}, error) {
	switch assetType {
	case AssetTypeDevice:
		d, err := s.stores.Devices.FindByID(ctx, assetID)
		if err != nil {
			return nil, err
		}
		if d.AssignedTo == nil || *d.AssignedTo != employeeID {
			return nil, apperr.New(apperr.KindNotAssigned, "device is not assigned to this employee")
		}
		d.AssignedTo = nil
		if err := s.stores.Devices.Update(ctx, d); err != nil {
			return nil, err
		}
		return d, nil
	case AssetTypeComponent:
		c, err := s.stores.Components.FindByID(ctx, assetID)
		if err != nil {
			return nil, err
		}
		if c.AssignedTo == nil || *c.AssignedTo != employeeID {
			return nil, apperr.New(apperr.KindNotAssigned, "component is not assigned to this employee")
		}
		c.AssignedTo = nil
		if err := s.stores.Components.Update(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	case AssetTypeAccount:
		a, err := s.stores.Accounts.FindByID(ctx, assetID)
		if err != nil {
			return nil, err
		}
		if a.AssignedTo == nil || *a.AssignedTo != employeeID {
			return nil, apperr.New(apperr.KindNotAssigned, "account is not assigned to this employee")
		}
		a.AssignedTo = nil
		if err := s.stores.Accounts.Update(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, apperr.Newf(apperr.KindValidation, "unknown asset type: %q", assetType)
	}
}

// Install puts the component inside a device. The component must not be held
// by an employee, and the target device must exist and not be disposed.
func (s *AssignmentService) Install(ctx context.Context, componentID, deviceID primitive.ObjectID) (*models.Component, error) {
	d, err := s.stores.Devices.FindByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if d.Status == models.DeviceStatusDisposed {
		return nil, apperr.New(apperr.KindValidation, "cannot install into a disposed device")
	}

	c, err := s.stores.Components.FindByID(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if c.AssignedTo != nil {
		return nil, apperr.New(apperr.KindConflictingAssignment,
			"component is assigned to an employee; unassign it before installing into a device")
	}
	if c.InstalledIn != nil {
		return nil, apperr.New(apperr.KindAlreadyAssigned, "component is already installed in a device")
	}
	c.InstalledIn = &deviceID
	if err := s.stores.Components.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Uninstall removes the component from the device it is installed in.
func (s *AssignmentService) Uninstall(ctx context.Context, componentID, deviceID primitive.ObjectID) (*models.Component, error) {
	c, err := s.stores.Components.FindByID(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if c.InstalledIn == nil || *c.InstalledIn != deviceID {
		return nil, apperr.New(apperr.KindNotAssigned, "component is not installed in this device")
	}
	c.InstalledIn = nil
	if err := s.stores.Components.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListHeldBy returns every device, component, and account whose assignedTo
// references the employee. Read-only and idempotent.
func (s *AssignmentService) ListHeldBy(ctx context.Context, employeeID primitive.ObjectID) (*Holdings, error) {
	if _, err := s.stores.Employees.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}

	devices, err := s.stores.Devices.List(ctx, store.DeviceFilter{AssignedTo: &employeeID})
	if err != nil {
		return nil, err
	}
	components, err := s.stores.Components.List(ctx, store.ComponentFilter{AssignedTo: &employeeID})
	if err != nil {
		return nil, err
	}
	accounts, err := s.stores.Accounts.List(ctx, store.AccountFilter{AssignedTo: &employeeID})
	if err != nil {
		return nil, err
	}

	return &Holdings{Devices: devices, Components: components, Accounts: accounts}, nil
}
