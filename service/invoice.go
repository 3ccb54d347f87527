// service/invoice.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
)

// InvoiceService tracks a purchase document through intake, per-item asset
// creation, and completion. Processing is idempotent at item granularity:
// a processed item is never processed again, so exactly one asset record
// exists per line item.
type InvoiceService struct {
	stores store.Stores
}

func NewInvoiceService(s store.Stores) *InvoiceService {
	return &InvoiceService{stores: s}
}

type CreateInvoiceInput struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	Vendor        string               `json:"vendor"`
	PurchaseDate  *time.Time           `json:"purchaseDate,omitempty"`
	TotalAmount   float64              `json:"totalAmount"`
	Currency      string               `json:"currency"`
	Items         []models.InvoiceItem `json:"items"`
	Notes         string               `json:"notes,omitempty"`
}

// Create persists a new pending invoice with every item unprocessed.
func (s *InvoiceService) Create(ctx context.Context, in CreateInvoiceInput, createdBy primitive.ObjectID) (*models.Invoice, error) {
	inv := &models.Invoice{
		InvoiceNumber: in.InvoiceNumber,
		Vendor:        in.Vendor,
		PurchaseDate:  in.PurchaseDate,
		TotalAmount:   in.TotalAmount,
		Currency:      in.Currency,
		Status:        models.InvoiceStatusPending,
		Items:         in.Items,
		Notes:         in.Notes,
		CreatedBy:     createdBy,
	}
	for i := range inv.Items {
		inv.Items[i].Processed = false
		inv.Items[i].CreatedItemID = nil
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := s.stores.Invoices.Insert(ctx, inv); err != nil {
		if apperr.IsKind(err, apperr.KindDuplicateKey) {
			return nil, apperr.Newf(apperr.KindDuplicateKey, "invoice number %s already exists", in.InvoiceNumber)
		}
		return nil, err
	}
	return inv, nil
}

// Import is the entry point for the file-importer collaborator: the payload
// has already been parsed from PDF/Excel upstream and goes through the same
// validation and persistence as a manually entered invoice.
func (s *InvoiceService) Import(ctx context.Context, in CreateInvoiceInput, createdBy primitive.ObjectID) (*models.Invoice, error) {
	return s.Create(ctx, in, createdBy)
}

// ItemDetails supplements a line item when it is processed into an asset.
// Name falls back to the line item's name when absent.
type ItemDetails struct {
	Name               string            `json:"name,omitempty"`
	Type               string            `json:"type,omitempty"`
	SubType            string            `json:"subType,omitempty"`
	Category           string            `json:"category,omitempty"`
	Manufacturer       string            `json:"manufacturer"`
	Model              string            `json:"model,omitempty"`
	SerialNumber       string            `json:"serialNumber,omitempty"`
	WarrantyExpiryDate *time.Time        `json:"warrantyExpiryDate,omitempty"`
	Location           string            `json:"location,omitempty"`
	Specs              map[string]string `json:"specs,omitempty"`
}

type ProcessItemResult struct {
	Device    *models.Device    `json:"device,omitempty"`
	Component *models.Component `json:"component,omitempty"`
	Invoice   *models.Invoice   `json:"invoice"`
}

// ProcessItem converts the line item at index into exactly one Device or
// Component record, marks the item processed, and flips the invoice to
// processed when it was the last unprocessed item.
//
// The asset insert and the invoice update are not transactional: a failure
// between the two leaves the created asset orphaned and the item unprocessed.
func (s *InvoiceService) ProcessItem(ctx context.Context, invoiceID primitive.ObjectID, index int, details ItemDetails) (*ProcessItemResult, error) {
	inv, err := s.stores.Invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	// Cancelled is terminal: no item may be processed, so the invoice can
	// never flip cancelled -> processed.
	if inv.Status == models.InvoiceStatusCancelled {
		return nil, apperr.New(apperr.KindValidation, "invoice is cancelled; items cannot be processed")
	}
	if index < 0 || index >= len(inv.Items) {
		return nil, apperr.Newf(apperr.KindValidation, "item index %d out of range", index)
	}
	item := &inv.Items[index]
	if item.Processed {
		return nil, apperr.Newf(apperr.KindAlreadyProcessed, "item %d has already been processed", index)
	}

	name := details.Name
	if name == "" {
		name = item.Name
	}
	specs := map[string]string{}
	for k, v := range item.Specifications {
		specs[k] = v
	}
	for k, v := range details.Specs {
		specs[k] = v
	}
	if len(specs) == 0 {
		specs = nil
	}
	notes := fmt.Sprintf("Purchased from %s (invoice %s)", inv.Vendor, inv.InvoiceNumber)

	result := &ProcessItemResult{}
	var createdID primitive.ObjectID

	switch item.Type {
	case models.ItemTypeDevice:
		d := &models.Device{
			Name:               name,
			Type:               details.Type,
			SubType:            details.SubType,
			Category:           details.Category,
			SerialNumber:       details.SerialNumber,
			Manufacturer:       details.Manufacturer,
			Model:              details.Model,
			PurchaseDate:       inv.PurchaseDate,
			WarrantyExpiryDate: details.WarrantyExpiryDate,
			Status:             models.DeviceStatusAvailable,
			Location:           details.Location,
			Specs:              specs,
			Notes:              notes,
		}
		if err := d.Validate(); err != nil {
			return nil, apperr.Wrap(apperr.KindValidation, "asset creation failed: "+err.Error(), err)
		}
		if err := s.stores.Devices.Insert(ctx, d); err != nil {
			return nil, err
		}
		result.Device = d
		createdID = d.ID
	case models.ItemTypeComponent:
		c := &models.Component{
			Name:               name,
			Type:               details.Type,
			SubType:            details.SubType,
			Category:           details.Category,
			SerialNumber:       details.SerialNumber,
			Manufacturer:       details.Manufacturer,
			Model:              details.Model,
			PurchaseDate:       inv.PurchaseDate,
			WarrantyExpiryDate: details.WarrantyExpiryDate,
			Status:             models.DeviceStatusAvailable,
			Location:           details.Location,
			Specs:              specs,
			Notes:              notes,
		}
		if err := c.Validate(); err != nil {
			return nil, apperr.Wrap(apperr.KindValidation, "asset creation failed: "+err.Error(), err)
		}
		if err := s.stores.Components.Insert(ctx, c); err != nil {
			return nil, err
		}
		result.Component = c
		createdID = c.ID
	default:
		return nil, apperr.Newf(apperr.KindValidation, "invalid item type: %q", item.Type)
	}

	item.Processed = true
	item.CreatedItemID = &createdID
	if inv.AllProcessed() {
		inv.Status = models.InvoiceStatusProcessed
	}
	if err := s.stores.Invoices.Update(ctx, inv); err != nil {
		return nil, err
	}

	result.Invoice = inv
	return result, nil
}

type UpdateInvoiceInput struct {
	InvoiceNumber *string               `json:"invoiceNumber,omitempty"`
	Vendor        *string               `json:"vendor,omitempty"`
	PurchaseDate  *time.Time            `json:"purchaseDate,omitempty"`
	TotalAmount   *float64              `json:"totalAmount,omitempty"`
	Currency      *string               `json:"currency,omitempty"`
	Status        *string               `json:"status,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	Items         *[]models.InvoiceItem `json:"items,omitempty"`
}

// Update merges header-field patches. Items may only be replaced while no
// item has been processed, which keeps processed flags and createdItemId
// bookkeeping consistent.
func (s *InvoiceService) Update(ctx context.Context, invoiceID primitive.ObjectID, patch UpdateInvoiceInput) (*models.Invoice, error) {
	inv, err := s.stores.Invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if patch.Items != nil {
		if inv.HasProcessedItems() {
			return nil, apperr.New(apperr.KindValidation, "items cannot be modified after processing has started")
		}
		inv.Items = *patch.Items
		for i := range inv.Items {
			inv.Items[i].Processed = false
			inv.Items[i].CreatedItemID = nil
		}
	}
	if patch.InvoiceNumber != nil {
		inv.InvoiceNumber = *patch.InvoiceNumber
	}
	if patch.Vendor != nil {
		inv.Vendor = *patch.Vendor
	}
	if patch.PurchaseDate != nil {
		inv.PurchaseDate = patch.PurchaseDate
	}
	if patch.TotalAmount != nil {
		inv.TotalAmount = *patch.TotalAmount
	}
	if patch.Currency != nil {
		inv.Currency = *patch.Currency
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.InvoiceStatusPending, models.InvoiceStatusProcessed, models.InvoiceStatusCancelled:
			inv.Status = *patch.Status
		default:
			return nil, apperr.Newf(apperr.KindValidation, "invalid invoice status: %s", *patch.Status)
		}
	}
	if patch.Notes != nil {
		inv.Notes = *patch.Notes
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := s.stores.Invoices.Update(ctx, inv); err != nil {
		if apperr.IsKind(err, apperr.KindDuplicateKey) {
			return nil, apperr.Newf(apperr.KindDuplicateKey, "invoice number %s already exists", inv.InvoiceNumber)
		}
		return nil, err
	}
	return inv, nil
}

// Delete refuses to remove an invoice once any item has been processed.
func (s *InvoiceService) Delete(ctx context.Context, invoiceID primitive.ObjectID) error {
	inv, err := s.stores.Invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.HasProcessedItems() {
		return apperr.New(apperr.KindHasProcessedItems, "invoice has processed items and cannot be deleted")
	}
	return s.stores.Invoices.Delete(ctx, invoiceID)
}
