// Package memstore is an in-memory implementation of the store interfaces.
// It enforces the same unique constraints the Mongo indexes do and returns
// records in stable insertion order. Used by service tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
)

// New returns a fully wired in-memory store set.
func New() store.Stores {
	m := &mem{}
	return store.Stores{
		Devices:    &deviceStore{m: m},
		Components: &componentStore{m: m},
		Employees:  &employeeStore{m: m},
		Accounts:   &accountStore{m: m},
		Invoices:   &invoiceStore{m: m},
		Users:      &userStore{m: m},
		Audit:      &auditStore{m: m},
	}
}

type mem struct {
	mu         sync.RWMutex
	devices    []models.Device
	components []models.Component
	employees  []models.Employee
	accounts   []models.Account
	invoices   []models.Invoice
	users      []models.User
	audit      []models.AuditLog
}

func oidCopy(p *primitive.ObjectID) *primitive.ObjectID {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func timeCopy(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func mapCopy(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneDevice(d models.Device) models.Device {
	d.AssignedTo = oidCopy(d.AssignedTo)
	d.PurchaseDate = timeCopy(d.PurchaseDate)
	d.WarrantyExpiryDate = timeCopy(d.WarrantyExpiryDate)
	d.LastMaintenanceDate = timeCopy(d.LastMaintenanceDate)
	d.NextMaintenanceDate = timeCopy(d.NextMaintenanceDate)
	d.Specs = mapCopy(d.Specs)
	d.MaintenanceHistory = append([]models.MaintenanceRecord(nil), d.MaintenanceHistory...)
	return d
}

func cloneComponent(c models.Component) models.Component {
	c.AssignedTo = oidCopy(c.AssignedTo)
	c.InstalledIn = oidCopy(c.InstalledIn)
	c.PurchaseDate = timeCopy(c.PurchaseDate)
	c.WarrantyExpiryDate = timeCopy(c.WarrantyExpiryDate)
	c.LastMaintenanceDate = timeCopy(c.LastMaintenanceDate)
	c.NextMaintenanceDate = timeCopy(c.NextMaintenanceDate)
	c.Specs = mapCopy(c.Specs)
	c.MaintenanceHistory = append([]models.MaintenanceRecord(nil), c.MaintenanceHistory...)
	return c
}

func cloneEmployee(e models.Employee) models.Employee {
	e.Manager = oidCopy(e.Manager)
	e.JoinDate = timeCopy(e.JoinDate)
	e.LeaveDate = timeCopy(e.LeaveDate)
	return e
}

func cloneAccount(a models.Account) models.Account {
	a.AssignedTo = oidCopy(a.AssignedTo)
	a.ExpiryDate = timeCopy(a.ExpiryDate)
	return a
}

func cloneInvoice(i models.Invoice) models.Invoice {
	i.PurchaseDate = timeCopy(i.PurchaseDate)
	items := make([]models.InvoiceItem, len(i.Items))
	for idx, it := range i.Items {
		it.CreatedItemID = oidCopy(it.CreatedItemID)
		it.Specifications = mapCopy(it.Specifications)
		items[idx] = it
	}
	i.Items = items
	return i
}

func cloneUser(u models.User) models.User {
	u.Employee = oidCopy(u.Employee)
	u.LastLogin = timeCopy(u.LastLogin)
	return u
}

type deviceStore struct{ m *mem }

func (s *deviceStore) Insert(_ context.Context, d *models.Device) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.devices {
		if s.m.devices[i].SerialNumber == d.SerialNumber {
			return apperr.New(apperr.KindDuplicateKey, "device violates a unique constraint")
		}
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.m.devices = append(s.m.devices, cloneDevice(*d))
	return nil
}

func (s *deviceStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Device, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for i := range s.m.devices {
		if s.m.devices[i].ID == id {
			d := cloneDevice(s.m.devices[i])
			return &d, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "device not found")
}

func (s *deviceStore) Update(_ context.Context, d *models.Device) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.devices {
		if s.m.devices[i].SerialNumber == d.SerialNumber && s.m.devices[i].ID != d.ID {
			return apperr.New(apperr.KindDuplicateKey, "device violates a unique constraint")
		}
	}
	for i := range s.m.devices {
		if s.m.devices[i].ID == d.ID {
			d.UpdatedAt = time.Now().UTC()
			s.m.devices[i] = cloneDevice(*d)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "device not found")
}

func (s *deviceStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.devices {
		if s.m.devices[i].ID == id {
			s.m.devices = append(s.m.devices[:i], s.m.devices[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "device not found")
}

func (s *deviceStore) List(_ context.Context, f store.DeviceFilter) ([]models.Device, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := []models.Device{}
	for i := range s.m.devices {
		d := s.m.devices[i]
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.Type != "" && d.Type != f.Type {
			continue
		}
		if f.AssignedTo != nil && (d.AssignedTo == nil || *d.AssignedTo != *f.AssignedTo) {
			continue
		}
		out = append(out, cloneDevice(d))
	}
	return out, nil
}

type componentStore struct{ m *mem }

func (s *componentStore) Insert(_ context.Context, c *models.Component) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.m.components = append(s.m.components, cloneComponent(*c))
	return nil
}

func (s *componentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Component, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for i := range s.m.components {
		if s.m.components[i].ID == id {
			c := cloneComponent(s.m.components[i])
			return &c, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "component not found")
}

func (s *componentStore) Update(_ context.Context, c *models.Component) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.components {
		if s.m.components[i].ID == c.ID {
			c.UpdatedAt = time.Now().UTC()
			s.m.components[i] = cloneComponent(*c)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "component not found")
}

func (s *componentStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.components {
		if s.m.components[i].ID == id {
			s.m.components = append(s.m.components[:i], s.m.components[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "component not found")
}

func (s *componentStore) List(_ context.Context, f store.ComponentFilter) ([]models.Component, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := []models.Component{}
	for i := range s.m.components {
		c := s.m.components[i]
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.AssignedTo != nil && (c.AssignedTo == nil || *c.AssignedTo != *f.AssignedTo) {
			continue
		}
		if f.InstalledIn != nil && (c.InstalledIn == nil || *c.InstalledIn != *f.InstalledIn) {
			continue
		}
		out = append(out, cloneComponent(c))
	}
	return out, nil
}

type employeeStore struct{ m *mem }

func (s *employeeStore) Insert(_ context.Context, e *models.Employee) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.employees {
		if s.m.employees[i].EmployeeID == e.EmployeeID || s.m.employees[i].Email == e.Email {
			return apperr.New(apperr.KindDuplicateKey, "employee violates a unique constraint")
		}
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.m.employees = append(s.m.employees, cloneEmployee(*e))
	return nil
}

func (s *employeeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for i := range s.m.employees {
		if s.m.employees[i].ID == id {
			e := cloneEmployee(s.m.employees[i])
			return &e, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "employee not found")
}

func (s *employeeStore) Update(_ context.Context, e *models.Employee) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.employees {
		if s.m.employees[i].ID != e.ID &&
			(s.m.employees[i].EmployeeID == e.EmployeeID || s.m.employees[i].Email == e.Email) {
			return apperr.New(apperr.KindDuplicateKey, "employee violates a unique constraint")
		}
	}
	for i := range s.m.employees {
		if s.m.employees[i].ID == e.ID {
			e.UpdatedAt = time.Now().UTC()
			s.m.employees[i] = cloneEmployee(*e)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "employee not found")
}

func (s *employeeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.employees {
		if s.m.employees[i].ID == id {
			s.m.employees = append(s.m.employees[:i], s.m.employees[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "employee not found")
}

func (s *employeeStore) List(_ context.Context, f store.EmployeeFilter) ([]models.Employee, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := []models.Employee{}
	for i := range s.m.employees {
		e := s.m.employees[i]
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Department != "" && e.Department != f.Department {
			continue
		}
		out = append(out, cloneEmployee(e))
	}
	return out, nil
}

type accountStore struct{ m *mem }

func (s *accountStore) Insert(_ context.Context, a *models.Account) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.Normalize()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.m.accounts = append(s.m.accounts, cloneAccount(*a))
	return nil
}

func (s *accountStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for i := range s.m.accounts {
		if s.m.accounts[i].ID == id {
			a := cloneAccount(s.m.accounts[i])
			return &a, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "account not found")
}

func (s *accountStore) Update(_ context.Context, a *models.Account) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a.Normalize()
	for i := range s.m.accounts {
		if s.m.accounts[i].ID == a.ID {
			a.UpdatedAt = time.Now().UTC()
			s.m.accounts[i] = cloneAccount(*a)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "account not found")
}

func (s *accountStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.accounts {
		if s.m.accounts[i].ID == id {
			s.m.accounts = append(s.m.accounts[:i], s.m.accounts[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "account not found")
}

func (s *accountStore) List(_ context.Context, f store.AccountFilter) ([]models.Account, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := []models.Account{}
	for i := range s.m.accounts {
		a := s.m.accounts[i]
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.AssignmentStatus != "" && a.AssignmentStatus != f.AssignmentStatus {
			continue
		}
		if f.AssignedTo != nil && (a.AssignedTo == nil || *a.AssignedTo != *f.AssignedTo) {
			continue
		}
		out = append(out, cloneAccount(a))
	}
	return out, nil
}

type invoiceStore struct{ m *mem }

func (s *invoiceStore) Insert(_ context.Context, inv *models.Invoice) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.invoices {
		if s.m.invoices[i].InvoiceNumber == inv.InvoiceNumber {
			return apperr.New(apperr.KindDuplicateKey, "invoice violates a unique constraint")
		}
	}
	if inv.ID.IsZero() {
		inv.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	s.m.invoices = append(s.m.invoices, cloneInvoice(*inv))
	return nil
}

func (s *invoiceStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for i := range s.m.invoices {
		if s.m.invoices[i].ID == id {
			inv := cloneInvoice(s.m.invoices[i])
			return &inv, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "invoice not found")
}

func (s *invoiceStore) FindByNumber(_ context.Context, invoiceNumber string) (*models.Invoice, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for i := range s.m.invoices {
		if s.m.invoices[i].InvoiceNumber == invoiceNumber {
			inv := cloneInvoice(s.m.invoices[i])
			return &inv, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "invoice not found")
}

func (s *invoiceStore) Update(_ context.Context, inv *models.Invoice) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.invoices {
		if s.m.invoices[i].InvoiceNumber == inv.InvoiceNumber && s.m.invoices[i].ID != inv.ID {
			return apperr.New(apperr.KindDuplicateKey, "invoice violates a unique constraint")
		}
	}
	for i := range s.m.invoices {
		if s.m.invoices[i].ID == inv.ID {
			inv.UpdatedAt = time.Now().UTC()
			s.m.invoices[i] = cloneInvoice(*inv)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "invoice not found")
}

func (s *invoiceStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.invoices {
		if s.m.invoices[i].ID == id {
			s.m.invoices = append(s.m.invoices[:i], s.m.invoices[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "invoice not found")
}

func (s *invoiceStore) List(_ context.Context, f store.InvoiceFilter) ([]models.Invoice, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := []models.Invoice{}
	for i := range s.m.invoices {
		inv := s.m.invoices[i]
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.Vendor != "" && inv.Vendor != f.Vendor {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	return out, nil
}

type userStore struct{ m *mem }

func (s *userStore) Insert(_ context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.users {
		if s.m.users[i].Email == u.Email {
			return apperr.New(apperr.KindDuplicateKey, "user violates a unique constraint")
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.m.users = append(s.m.users, cloneUser(*u))
	return nil
}

func (s *userStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for i := range s.m.users {
		if s.m.users[i].ID == id {
			u := cloneUser(s.m.users[i])
			return &u, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "user not found")
}

func (s *userStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for i := range s.m.users {
		if s.m.users[i].Email == email {
			u := cloneUser(s.m.users[i])
			return &u, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "user not found")
}

func (s *userStore) Update(_ context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.users {
		if s.m.users[i].Email == u.Email && s.m.users[i].ID != u.ID {
			return apperr.New(apperr.KindDuplicateKey, "user violates a unique constraint")
		}
	}
	for i := range s.m.users {
		if s.m.users[i].ID == u.ID {
			u.UpdatedAt = time.Now().UTC()
			s.m.users[i] = cloneUser(*u)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "user not found")
}

func (s *userStore) List(_ context.Context) ([]models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.User, 0, len(s.m.users))
	for i := range s.m.users {
		out = append(out, cloneUser(s.m.users[i]))
	}
	return out, nil
}

type auditStore struct{ m *mem }

func (s *auditStore) Insert(_ context.Context, entry *models.AuditLog) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.m.audit = append(s.m.audit, *entry)
	return nil
}

func (s *auditStore) List(_ context.Context, limit int64) ([]models.AuditLog, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	out := []models.AuditLog{}
	for i := len(s.m.audit) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, s.m.audit[i])
	}
	return out, nil
}
