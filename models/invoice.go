// models/invoice.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
)

const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusProcessed = "processed"
	InvoiceStatusCancelled = "cancelled"

	ItemTypeDevice    = "device"
	ItemTypeComponent = "component"
)

// InvoiceItem is one purchase line destined to become a Device or Component
// record. Once Processed is set, the item and its CreatedItemID are permanent.
type InvoiceItem struct {
	Type           string              `bson:"type" json:"type"`
	Name           string              `bson:"name" json:"name"`
	Quantity       int                 `bson:"quantity" json:"quantity"`
	UnitPrice      float64             `bson:"unitPrice" json:"unitPrice"`
	Specifications map[string]string   `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Processed      bool                `bson:"processed" json:"processed"`
	CreatedItemID  *primitive.ObjectID `bson:"createdItemId,omitempty" json:"createdItemId,omitempty"`
}

type Invoice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvoiceNumber string             `bson:"invoiceNumber" json:"invoiceNumber"`
	Vendor        string             `bson:"vendor" json:"vendor"`
	PurchaseDate  *time.Time         `bson:"purchaseDate,omitempty" json:"purchaseDate,omitempty"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Currency      string             `bson:"currency" json:"currency"`
	Status        string             `bson:"status" json:"status"`
	Items         []InvoiceItem      `bson:"items" json:"items"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidItemType(t string) bool {
	return t == ItemTypeDevice || t == ItemTypeComponent
}

func (it *InvoiceItem) Validate() error {
	if !ValidItemType(it.Type) {
		return apperr.Newf(apperr.KindValidation, "invalid item type: %q (must be device or component)", it.Type)
	}
	if it.Name == "" {
		return apperr.New(apperr.KindValidation, "item name is required")
	}
	if it.Quantity < 1 {
		return apperr.New(apperr.KindValidation, "item quantity must be at least 1")
	}
	if it.UnitPrice < 0 {
		return apperr.New(apperr.KindValidation, "item unitPrice cannot be negative")
	}
	return nil
}

func (i *Invoice) Validate() error {
	if i.InvoiceNumber == "" {
		return apperr.New(apperr.KindValidation, "invoiceNumber is required")
	}
	if i.Vendor == "" {
		return apperr.New(apperr.KindValidation, "vendor is required")
	}
	if len(i.Items) == 0 {
		return apperr.New(apperr.KindValidation, "invoice must have at least one item")
	}
	for idx := range i.Items {
		if err := i.Items[idx].Validate(); err != nil {
			return err
		}
	}
	if i.Status == "" {
		i.Status = InvoiceStatusPending
	}
	return nil
}

// AllProcessed reports whether every line item has been processed.
func (i *Invoice) AllProcessed() bool {
	for idx := range i.Items {
		if !i.Items[idx].Processed {
			return false
		}
	}
	return len(i.Items) > 0
}

// HasProcessedItems reports whether any line item has been processed.
// An invoice with processed items cannot be deleted.
func (i *Invoice) HasProcessedItems() bool {
	for idx := range i.Items {
		if i.Items[idx].Processed {
			return true
		}
	}
	return false
}
