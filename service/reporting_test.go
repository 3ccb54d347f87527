// service/reporting_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store/memstore"
)

func TestWarrantyBucket(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, WarrantyNone, WarrantyBucket(nil, now))

	past := now.AddDate(0, 0, -1)
	assert.Equal(t, WarrantyExpired, WarrantyBucket(&past, now))

	soon := now.AddDate(0, 0, 10)
	assert.Equal(t, WarrantyExpiringSoon, WarrantyBucket(&soon, now))

	edge := now.Add(30*24*time.Hour - time.Minute)
	assert.Equal(t, WarrantyExpiringSoon, WarrantyBucket(&edge, now))

	far := now.AddDate(1, 0, 0)
	assert.Equal(t, WarrantyValid, WarrantyBucket(&far, now))
}

func TestAgeBucket(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, AgeUnknown, AgeBucket(nil, now))

	future := now.AddDate(0, 0, 1)
	assert.Equal(t, AgeUnknown, AgeBucket(&future, now))

	cases := []struct {
		months int
		want   string
	}{
		{1, AgeUnder6Months},
		{7, AgeUnder1Year},
		{14, AgeUnder2Years},
		{30, AgeUnder3Years},
		{48, AgeOver3Years},
	}
	for _, tc := range cases {
		purchase := now.Add(-time.Duration(tc.months) * 30 * 24 * time.Hour)
		assert.Equal(t, tc.want, AgeBucket(&purchase, now), "age %d months", tc.months)
	}
}

func TestDeviceStatusAndTypeCounts(t *testing.T) {
	s := memstore.New()
	svc := NewReportingService(s)
	ctx := context.Background()

	seedDevice(t, s, "SN-R1")
	d2 := seedDevice(t, s, "SN-R2")
	d2.Status = models.DeviceStatusUnderRepair
	require.NoError(t, s.Devices.Update(ctx, d2))
	d3 := seedDevice(t, s, "SN-R3")
	d3.Type = ""
	require.NoError(t, s.Devices.Update(ctx, d3))

	status, err := svc.DeviceStatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, status[models.DeviceStatusAvailable])
	assert.Equal(t, 1, status[models.DeviceStatusUnderRepair])

	types, err := svc.DeviceTypeCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, types["laptop"])
	assert.Equal(t, 1, types["uncategorized"])
}

func TestDepartmentReport(t *testing.T) {
	s := memstore.New()
	assignSvc := NewAssignmentService(s)
	svc := NewReportingService(s)
	ctx := context.Background()

	eng := seedEmployee(t, s, "eng1")
	eng.Department = "Engineering"
	require.NoError(t, s.Employees.Update(ctx, eng))
	noDept := seedEmployee(t, s, "nodept")

	d1 := seedDevice(t, s, "SN-D1")
	d2 := seedDevice(t, s, "SN-D2")
	acc := seedAccount(t, s, "repo")
	seedDevice(t, s, "SN-D3") // stays unassigned

	_, err := assignSvc.Assign(ctx, eng.ID, AssetTypeDevice, d1.ID)
	require.NoError(t, err)
	_, err = assignSvc.Assign(ctx, eng.ID, AssetTypeAccount, acc.ID)
	require.NoError(t, err)
	_, err = assignSvc.Assign(ctx, noDept.ID, AssetTypeDevice, d2.ID)
	require.NoError(t, err)

	counts, err := svc.DepartmentReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["Engineering"])
	assert.Equal(t, 1, counts["unassigned"])
}

func TestGetOverview(t *testing.T) {
	s := memstore.New()
	assignSvc := NewAssignmentService(s)
	invSvc := NewInvoiceService(s)
	svc := NewReportingService(s)
	ctx := context.Background()

	emp := seedEmployee(t, s, "alice")
	d1 := seedDevice(t, s, "SN-O1")
	seedDevice(t, s, "SN-O2")
	seedComponent(t, s, "DIMM")
	seedAccount(t, s, "vpn")

	_, err := assignSvc.Assign(ctx, emp.ID, AssetTypeDevice, d1.ID)
	require.NoError(t, err)

	in := testInvoiceInput()
	inv, err := invSvc.Create(ctx, in, emp.ID)
	require.NoError(t, err)
	_, err = invSvc.ProcessItem(ctx, inv.ID, 0, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-O3"})
	require.NoError(t, err)

	o, err := svc.GetOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, o.TotalDevices) // two seeded + one from the invoice
	assert.Equal(t, 1, o.AssignedDevices)
	assert.Equal(t, 1, o.TotalEmployees)
	assert.Equal(t, 1, o.ActiveEmployees)
	assert.Equal(t, 1, o.TotalAccounts)
	assert.Equal(t, 1, o.AssignedAccounts)
	assert.Equal(t, 1, o.TotalInvoices)
	assert.Equal(t, 1, o.PendingInvoices)
	assert.Equal(t, 0, o.ProcessedInvoices)
}

func TestWarrantyAndAgeReports(t *testing.T) {
	s := memstore.New()
	svc := NewReportingService(s)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	expired := now.AddDate(-1, 0, 0)
	valid := now.AddDate(2, 0, 0)
	old := now.AddDate(-4, 0, 0)

	d1 := seedDevice(t, s, "SN-W1")
	d1.WarrantyExpiryDate = &expired
	d1.PurchaseDate = &old
	require.NoError(t, s.Devices.Update(ctx, d1))

	d2 := seedDevice(t, s, "SN-W2")
	d2.WarrantyExpiryDate = &valid
	require.NoError(t, s.Devices.Update(ctx, d2))

	warranty, err := svc.WarrantyReport(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, warranty[WarrantyExpired])
	assert.Equal(t, 1, warranty[WarrantyValid])

	age, err := svc.AgeReport(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, age[AgeOver3Years])
	assert.Equal(t, 1, age[AgeUnknown])
}
