package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dangtoan2205/asset-manager-sub000/apperr"
	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/store"
)

type InvoiceStore struct {
	coll *mongo.Collection
}

func (s *InvoiceStore) Insert(ctx context.Context, i *models.Invoice) error {
	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now
	if _, err := s.coll.InsertOne(ctx, i); err != nil {
		return writeErr(err, "invoice")
	}
	return nil
}

func (s *InvoiceStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var i models.Invoice
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&i); err != nil {
		return nil, findErr(err, "invoice")
	}
	return &i, nil
}

func (s *InvoiceStore) FindByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	var i models.Invoice
	if err := s.coll.FindOne(ctx, bson.M{"invoiceNumber": invoiceNumber}).Decode(&i); err != nil {
		return nil, findErr(err, "invoice")
	}
	return &i, nil
}

func (s *InvoiceStore) Update(ctx context.Context, i *models.Invoice) error {
	i.UpdatedAt = time.Now().UTC()
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": i.ID}, i)
	if err != nil {
		return writeErr(err, "invoice")
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.KindNotFound, "invoice not found")
	}
	return nil
}

func (s *InvoiceStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return writeErr(err, "invoice")
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.KindNotFound, "invoice not found")
	}
	return nil
}

func (s *InvoiceStore) List(ctx context.Context, f store.InvoiceFilter) ([]models.Invoice, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Vendor != "" {
		filter["vendor"] = f.Vendor
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "invoice query failed", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err = cursor.All(ctx, &invoices); err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "invoice decode failed", err)
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, nil
}
