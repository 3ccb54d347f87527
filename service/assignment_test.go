// service/assignment_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/store/memstore"
)

func seedEmployee(t *testing.T, s store.Stores, name string) *models.Employee {
	t.Helper()
	e := &models.Employee{
		Name:       name,
		EmployeeID: "EMP-" + name,
		Email:      name + "@example.com",
		Status:     models.EmployeeStatusActive,
	}
	require.NoError(t, s.Employees.Insert(context.Background(), e))
	return e
}

func seedDevice(t *testing.T, s store.Stores, serial string) *models.Device {
	t.Helper()
	d := &models.Device{
		Name:         "Laptop " + serial,
		Type:         "laptop",
		SerialNumber: serial,
		Manufacturer: "Lenovo",
		Status:       models.DeviceStatusAvailable,
	}
	require.NoError(t, s.Devices.Insert(context.Background(), d))
	return d
}

func seedComponent(t *testing.T, s store.Stores, name string) *models.Component {
	t.Helper()
	c := &models.Component{
		Name:         name,
		Type:         "ram",
		Manufacturer: "Kingston",
		Status:       models.DeviceStatusAvailable,
	}
	require.NoError(t, s.Components.Insert(context.Background(), c))
	return c
}

func seedAccount(t *testing.T, s store.Stores, name string) *models.Account {
	t.Helper()
	a := &models.Account{
		Name:     name,
		Type:     "vpn",
		Username: name + "-user",
		Password: "s3cret",
	}
	require.NoError(t, s.Accounts.Insert(context.Background(), a))
	return a
}

func TestAssignDevice(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	emp := seedEmployee(t, s, "alice")
	dev := seedDevice(t, s, "SN-001")

	got, err := svc.Assign(ctx, emp.ID, AssetTypeDevice, dev.ID)
	require.NoError(t, err)
	d, ok := got.(*models.Device)
	require.True(t, ok)
	require.NotNil(t, d.AssignedTo)
	assert.Equal(t, emp.ID, *d.AssignedTo)

	// Assigning again must fail regardless of target employee
	other := seedEmployee(t, s, "bob")
	_, err = svc.Assign(ctx, other.ID, AssetTypeDevice, dev.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyAssigned))
}

func TestAssignDeviceDisposed(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	emp := seedEmployee(t, s, "alice")
	dev := seedDevice(t, s, "SN-002")
	dev.Status = models.DeviceStatusDisposed
	require.NoError(t, s.Devices.Update(ctx, dev))

	_, err := svc.Assign(ctx, emp.ID, AssetTypeDevice, dev.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAssignUnknownEmployee(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	dev := seedDevice(t, s, "SN-003")
	_, err := svc.Assign(ctx, dev.ID /* not an employee */, AssetTypeDevice, dev.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestAssignUnknownAssetType(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	emp := seedEmployee(t, s, "alice")
	dev := seedDevice(t, s, "SN-004")
	_, err := svc.Assign(ctx, emp.ID, "printer", dev.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestComponentEmployeeDeviceExclusivity(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	emp := seedEmployee(t, s, "alice")
	dev := seedDevice(t, s, "SN-005")
	comp := seedComponent(t, s, "16GB DIMM")

	// Installed components cannot be handed to an employee
	_, err := svc.Install(ctx, comp.ID, dev.ID)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, emp.ID, AssetTypeComponent, comp.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflictingAssignment))

	// And back: an assigned component cannot be installed
	_, err = svc.Uninstall(ctx, comp.ID, dev.ID)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, emp.ID, AssetTypeComponent, comp.ID)
	require.NoError(t, err)
	_, err = svc.Install(ctx, comp.ID, dev.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflictingAssignment))
}

func TestUnassignWrongHolder(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	alice := seedEmployee(t, s, "alice")
	bob := seedEmployee(t, s, "bob")
	dev := seedDevice(t, s, "SN-006")

	_, err := svc.Assign(ctx, alice.ID, AssetTypeDevice, dev.ID)
	require.NoError(t, err)

	_, err = svc.Unassign(ctx, AssetTypeDevice, dev.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAssigned))

	got, err := svc.Unassign(ctx, AssetTypeDevice, dev.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got.(*models.Device).AssignedTo)

	// Unassigning an unheld device fails too
	_, err = svc.Unassign(ctx, AssetTypeDevice, dev.ID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAssigned))
}

func TestAssignAccountFlipsAssignmentStatus(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	emp := seedEmployee(t, s, "alice")
	acc := seedAccount(t, s, "vpn-main")
	assert.Equal(t, models.AssignmentStatusAvailable, acc.AssignmentStatus)

	got, err := svc.Assign(ctx, emp.ID, AssetTypeAccount, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusAssigned, got.(*models.Account).AssignmentStatus)

	got, err = svc.Unassign(ctx, AssetTypeAccount, acc.ID, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusAvailable, got.(*models.Account).AssignmentStatus)
}

func TestInstallIntoDisposedDevice(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	dev := seedDevice(t, s, "SN-007")
	dev.Status = models.DeviceStatusDisposed
	require.NoError(t, s.Devices.Update(ctx, dev))
	comp := seedComponent(t, s, "SSD")

	_, err := svc.Install(ctx, comp.ID, dev.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUninstallWrongDevice(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	devA := seedDevice(t, s, "SN-008")
	devB := seedDevice(t, s, "SN-009")
	comp := seedComponent(t, s, "GPU")

	_, err := svc.Install(ctx, comp.ID, devA.ID)
	require.NoError(t, err)
	_, err = svc.Uninstall(ctx, comp.ID, devB.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAssigned))
}

func TestListHeldBy(t *testing.T) {
	s := memstore.New()
	svc := NewAssignmentService(s)
	ctx := context.Background()

	alice := seedEmployee(t, s, "alice")
	bob := seedEmployee(t, s, "bob")

	d1 := seedDevice(t, s, "SN-010")
	d2 := seedDevice(t, s, "SN-011")
	comp := seedComponent(t, s, "DIMM")
	acc := seedAccount(t, s, "cloud")

	_, err := svc.Assign(ctx, alice.ID, AssetTypeDevice, d1.ID)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, alice.ID, AssetTypeComponent, comp.ID)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, alice.ID, AssetTypeAccount, acc.ID)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, bob.ID, AssetTypeDevice, d2.ID)
	require.NoError(t, err)

	holdings, err := svc.ListHeldBy(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, holdings.Devices, 1)
	assert.Len(t, holdings.Components, 1)
	assert.Len(t, holdings.Accounts, 1)
	assert.Equal(t, d1.ID, holdings.Devices[0].ID)

	holdings, err = svc.ListHeldBy(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, holdings.Devices, 1)
	assert.Empty(t, holdings.Components)
	assert.Empty(t, holdings.Accounts)
}
