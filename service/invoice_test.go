// service/invoice_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
	"github.com/dangtoan2205/asset-manager-sub000/store/memstore"
)

func testInvoiceInput() CreateInvoiceInput {
	purchase := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return CreateInvoiceInput{
		InvoiceNumber: "INV-001",
		Vendor:        "TechSupply Co",
		PurchaseDate:  &purchase,
		TotalAmount:   3200,
		Currency:      "USD",
		Items: []models.InvoiceItem{
			{Type: models.ItemTypeDevice, Name: "ThinkPad T14", Quantity: 1, UnitPrice: 1500},
			{Type: models.ItemTypeComponent, Name: "32GB DIMM", Quantity: 2, UnitPrice: 850,
				Specifications: map[string]string{"capacity": "32GB"}},
		},
	}
}

func TestCreateInvoice(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, inv.Status)
	for _, item := range inv.Items {
		assert.False(t, item.Processed)
		assert.Nil(t, item.CreatedItemID)
	}

	// Duplicate invoice numbers are rejected
	_, err = svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicateKey))
}

func TestCreateInvoiceRequiresItems(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)

	in := testInvoiceInput()
	in.Items = nil
	_, err := svc.Create(context.Background(), in, primitive.NewObjectID())
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestProcessItemCreatesDevice(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)

	res, err := svc.ProcessItem(ctx, inv.ID, 0, ItemDetails{
		Manufacturer: "Lenovo",
		SerialNumber: "SN-T14-01",
		Type:         "laptop",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Device)
	assert.Nil(t, res.Component)
	assert.Equal(t, "ThinkPad T14", res.Device.Name)
	assert.Equal(t, models.DeviceStatusAvailable, res.Device.Status)
	assert.Equal(t, inv.PurchaseDate, res.Device.PurchaseDate)
	assert.Contains(t, res.Device.Notes, "TechSupply Co")
	assert.Contains(t, res.Device.Notes, "INV-001")

	require.True(t, res.Invoice.Items[0].Processed)
	require.NotNil(t, res.Invoice.Items[0].CreatedItemID)
	assert.Equal(t, res.Device.ID, *res.Invoice.Items[0].CreatedItemID)

	// One item still unprocessed, invoice stays pending
	assert.Equal(t, models.InvoiceStatusPending, res.Invoice.Status)
}

func TestProcessItemIdempotent(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)

	_, err = svc.ProcessItem(ctx, inv.ID, 0, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-T14-01"})
	require.NoError(t, err)

	// Processing the same item again must not create a second asset
	_, err = svc.ProcessItem(ctx, inv.ID, 0, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-T14-01"})
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyProcessed))

	devices, err := s.Devices.List(ctx, store.DeviceFilter{})
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestProcessLastItemCompletesInvoice(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)

	_, err = svc.ProcessItem(ctx, inv.ID, 0, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-T14-01"})
	require.NoError(t, err)
	res, err := svc.ProcessItem(ctx, inv.ID, 1, ItemDetails{
		Manufacturer: "Kingston",
		Specs:        map[string]string{"speed": "3200MHz"},
	})
	require.NoError(t, err)

	require.NotNil(t, res.Component)
	// Line item specs merge under supplied details
	assert.Equal(t, "32GB", res.Component.Specs["capacity"])
	assert.Equal(t, "3200MHz", res.Component.Specs["speed"])
	assert.Equal(t, models.InvoiceStatusProcessed, res.Invoice.Status)
}

func TestProcessItemIndexOutOfRange(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)

	_, err = svc.ProcessItem(ctx, inv.ID, 5, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-T14-01"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = svc.ProcessItem(ctx, inv.ID, -1, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-T14-01"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpdateInvoiceItemsBlockedAfterProcessing(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)

	// Header patches are fine before and after processing
	vendor := "Other Vendor"
	updated, err := svc.Update(ctx, inv.ID, UpdateInvoiceInput{Vendor: &vendor})
	require.NoError(t, err)
	assert.Equal(t, vendor, updated.Vendor)

	_, err = svc.ProcessItem(ctx, inv.ID, 0, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-T14-01"})
	require.NoError(t, err)

	newItems := []models.InvoiceItem{{Type: models.ItemTypeDevice, Name: "Replacement", Quantity: 1, UnitPrice: 10}}
	_, err = svc.Update(ctx, inv.ID, UpdateInvoiceInput{Items: &newItems})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	notes := "still editable"
	updated, err = svc.Update(ctx, inv.ID, UpdateInvoiceInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
}

func TestUpdateInvoiceStatusValidation(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)

	bad := "shipped"
	_, err = svc.Update(ctx, inv.ID, UpdateInvoiceInput{Status: &bad})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	cancelled := models.InvoiceStatusCancelled
	updated, err := svc.Update(ctx, inv.ID, UpdateInvoiceInput{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, updated.Status)
}

func TestProcessItemRejectedOnCancelledInvoice(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)

	_, err = svc.ProcessItem(ctx, inv.ID, 0, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-T14-01"})
	require.NoError(t, err)

	cancelled := models.InvoiceStatusCancelled
	_, err = svc.Update(ctx, inv.ID, UpdateInvoiceInput{Status: &cancelled})
	require.NoError(t, err)

	// Cancelled is terminal: processing the remaining item must fail and the
	// invoice must never flip to processed
	_, err = svc.ProcessItem(ctx, inv.ID, 1, ItemDetails{Manufacturer: "Kingston"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	got, err := s.Invoices.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, got.Status)
	assert.False(t, got.Items[1].Processed)

	// And no component was created for the rejected item
	components, err := s.Components.List(ctx, store.ComponentFilter{})
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestDeleteInvoiceGuard(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	inv, err := svc.Create(ctx, testInvoiceInput(), primitive.NewObjectID())
	require.NoError(t, err)

	_, err = svc.ProcessItem(ctx, inv.ID, 0, ItemDetails{Manufacturer: "Lenovo", SerialNumber: "SN-T14-01"})
	require.NoError(t, err)

	err = svc.Delete(ctx, inv.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindHasProcessedItems))

	// An untouched invoice deletes cleanly
	in := testInvoiceInput()
	in.InvoiceNumber = "INV-002"
	inv2, err := svc.Create(ctx, in, primitive.NewObjectID())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, inv2.ID))
	_, err = s.Invoices.FindByID(ctx, inv2.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestImportInvoice(t *testing.T) {
	s := memstore.New()
	svc := NewInvoiceService(s)
	ctx := context.Background()

	in := testInvoiceInput()
	in.InvoiceNumber = "INV-IMP-001"
	// Pre-marked items from a malformed import are reset
	in.Items[0].Processed = true
	id := primitive.NewObjectID()
	in.Items[0].CreatedItemID = &id

	inv, err := svc.Import(ctx, in, primitive.NewObjectID())
	require.NoError(t, err)
	assert.False(t, inv.Items[0].Processed)
	assert.Nil(t, inv.Items[0].CreatedItemID)
}
