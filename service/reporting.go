// service/reporting.go
package service

import (
	"context"
	"time"

	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
)

// Warranty window buckets.
const (
	WarrantyExpired      = "expired"
	WarrantyExpiringSoon = "expiring_soon" // within 30 days
	WarrantyValid        = "valid"
	WarrantyNone         = "none"
)

// Device age buckets, computed from purchaseDate.
const (
	AgeUnder6Months = "under_6_months"
	AgeUnder1Year   = "under_1_year"
	AgeUnder2Years  = "under_2_years"
	AgeUnder3Years  = "under_3_years"
	AgeOver3Years   = "over_3_years"
	AgeUnknown      = "unknown"
)

// ReportingService computes read-only grouped counts over the entity stores.
// Every report is a pure function of stored data and the supplied time; no
// caching, full recomputation per request.
type ReportingService struct {
	stores store.Stores
}

func NewReportingService(s store.Stores) *ReportingService {
	return &ReportingService{stores: s}
}

// WarrantyBucket classifies a warranty expiry date relative to now.
func WarrantyBucket(expiry *time.Time, now time.Time) string {
	if expiry == nil {
		return WarrantyNone
	}
	if expiry.Before(now) {
		return WarrantyExpired
	}
	if expiry.Before(now.Add(30 * 24 * time.Hour)) {
		return WarrantyExpiringSoon
	}
	return WarrantyValid
}

// AgeBucket classifies a purchase date relative to now.
func AgeBucket(purchase *time.Time, now time.Time) string {
	if purchase == nil || purchase.After(now) {
		return AgeUnknown
	}
	age := now.Sub(*purchase)
	const month = 30 * 24 * time.Hour
	switch {
	case age < 6*month:
		return AgeUnder6Months
	case age < 12*month:
		return AgeUnder1Year
	case age < 24*month:
		return AgeUnder2Years
	case age < 36*month:
		return AgeUnder3Years
	default:
		return AgeOver3Years
	}
}

func (s *ReportingService) DeviceStatusCounts(ctx context.Context) (map[string]int, error) {
	devices, err := s.stores.Devices.List(ctx, store.DeviceFilter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for i := range devices {
		counts[devices[i].Status]++
	}
	return counts, nil
}

func (s *ReportingService) DeviceTypeCounts(ctx context.Context) (map[string]int, error) {
	devices, err := s.stores.Devices.List(ctx, store.DeviceFilter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for i := range devices {
		t := devices[i].Type
		if t == "" {
			t = "uncategorized"
		}
		counts[t]++
	}
	return counts, nil
}

func (s *ReportingService) ComponentStatusCounts(ctx context.Context) (map[string]int, error) {
	components, err := s.stores.Components.List(ctx, store.ComponentFilter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for i := range components {
		counts[components[i].Status]++
	}
	return counts, nil
}

func (s *ReportingService) AccountStatusCounts(ctx context.Context) (map[string]int, error) {
	accounts, err := s.stores.Accounts.List(ctx, store.AccountFilter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for i := range accounts {
		counts[accounts[i].Status]++
	}
	return counts, nil
}

// WarrantyReport groups devices by warranty window at the supplied time.
func (s *ReportingService) WarrantyReport(ctx context.Context, now time.Time) (map[string]int, error) {
	devices, err := s.stores.Devices.List(ctx, store.DeviceFilter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for i := range devices {
		counts[WarrantyBucket(devices[i].WarrantyExpiryDate, now)]++
	}
	return counts, nil
}

// AgeReport groups devices by age bucket at the supplied time.
func (s *ReportingService) AgeReport(ctx context.Context, now time.Time) (map[string]int, error) {
	devices, err := s.stores.Devices.List(ctx, store.DeviceFilter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for i := range devices {
		counts[AgeBucket(devices[i].PurchaseDate, now)]++
	}
	return counts, nil
}

// DepartmentReport counts assigned devices, components, and accounts per
// department, joining against employees through assignedTo.
func (s *ReportingService) DepartmentReport(ctx context.Context) (map[string]int, error) {
	employees, err := s.stores.Employees.List(ctx, store.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	deptByEmployee := map[string]string{}
	for i := range employees {
		dept := employees[i].Department
		if dept == "" {
			dept = "unassigned"
		}
		deptByEmployee[employees[i].ID.Hex()] = dept
	}

	counts := map[string]int{}
	bump := func(holder *string) {
		if holder == nil {
			return
		}
		if dept, ok := deptByEmployee[*holder]; ok {
			counts[dept]++
		}
	}

	devices, err := s.stores.Devices.List(ctx, store.DeviceFilter{})
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].AssignedTo != nil {
			h := devices[i].AssignedTo.Hex()
			bump(&h)
		}
	}
	components, err := s.stores.Components.List(ctx, store.ComponentFilter{})
	if err != nil {
		return nil, err
	}
	for i := range components {
		if components[i].AssignedTo != nil {
			h := components[i].AssignedTo.Hex()
			bump(&h)
		}
	}
	accounts, err := s.stores.Accounts.List(ctx, store.AccountFilter{})
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].AssignedTo != nil {
			h := accounts[i].AssignedTo.Hex()
			bump(&h)
		}
	}
	return counts, nil
}

// Overview is the dashboard summary across all collections.
type Overview struct {
	TotalDevices      int `json:"totalDevices"`
	AssignedDevices   int `json:"assignedDevices"`
	AvailableDevices  int `json:"availableDevices"`
	TotalComponents   int `json:"totalComponents"`
	TotalEmployees    int `json:"totalEmployees"`
	ActiveEmployees   int `json:"activeEmployees"`
	TotalAccounts     int `json:"totalAccounts"`
	AssignedAccounts  int `json:"assignedAccounts"`
	TotalInvoices     int `json:"totalInvoices"`
	PendingInvoices   int `json:"pendingInvoices"`
	ProcessedInvoices int `json:"processedInvoices"`
}

func (s *ReportingService) GetOverview(ctx context.Context) (*Overview, error) {
	o := &Overview{}

	devices, err := s.stores.Devices.List(ctx, store.DeviceFilter{})
	if err != nil {
		return nil, err
	}
	o.TotalDevices = len(devices)
	for i := range devices {
		if devices[i].AssignedTo != nil {
			o.AssignedDevices++
		}
		if devices[i].Status == models.DeviceStatusAvailable {
			o.AvailableDevices++
		}
	}

	components, err := s.stores.Components.List(ctx, store.ComponentFilter{})
	if err != nil {
		return nil, err
	}
	o.TotalComponents = len(components)

	employees, err := s.stores.Employees.List(ctx, store.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	o.TotalEmployees = len(employees)
	for i := range employees {
		if employees[i].Status == models.EmployeeStatusActive {
			o.ActiveEmployees++
		}
	}

	accounts, err := s.stores.Accounts.List(ctx, store.AccountFilter{})
	if err != nil {
		return nil, err
	}
	o.TotalAccounts = len(accounts)
	for i := range accounts {
		if accounts[i].AssignedTo != nil {
			o.AssignedAccounts++
		}
	}

	invoices, err := s.stores.Invoices.List(ctx, store.InvoiceFilter{})
	if err != nil {
		return nil, err
	}
	o.TotalInvoices = len(invoices)
	for i := range invoices {
		switch invoices[i].Status {
		case models.InvoiceStatusPending:
			o.PendingInvoices++
		case models.InvoiceStatusProcessed:
			o.ProcessedInvoices++
		}
	}

	return o, nil
}
