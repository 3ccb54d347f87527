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

type DeviceStore struct {
	coll *mongo.Collection
}

func (s *DeviceStore) Insert(ctx context.Context, d *models.Device) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return writeErr(err, "device")
	}
	return nil
}

func (s *DeviceStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Device, error) {
	var d models.Device
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, findErr(err, "device")
	}
	return &d, nil
}

func (s *DeviceStore) Update(ctx context.Context, d *models.Device) error {
	d.UpdatedAt = time.Now().UTC()
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return writeErr(err, "device")
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.KindNotFound, "device not found")
	}
	return nil
}

func (s *DeviceStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return writeErr(err, "device")
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.KindNotFound, "device not found")
	}
	return nil
}

func (s *DeviceStore) List(ctx context.Context, f store.DeviceFilter) ([]models.Device, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.AssignedTo != nil {
		filter["assignedTo"] = *f.AssignedTo
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "device query failed", err)
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	if err = cursor.All(ctx, &devices); err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "device decode failed", err)
	}
	if devices == nil {
		devices = []models.Device{}
	}
	return devices, nil
}
