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

type ComponentStore struct {
	coll *mongo.Collection
}

func (s *ComponentStore) Insert(ctx context.Context, c *models.Component) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.coll.InsertOne(ctx, c); err != nil {
		return writeErr(err, "component")
	}
	return nil
}

func (s *ComponentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Component, error) {
	var c models.Component
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, findErr(err, "component")
	}
	return &c, nil
}

func (s *ComponentStore) Update(ctx context.Context, c *models.Component) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return writeErr(err, "component")
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.KindNotFound, "component not found")
	}
	return nil
}

func (s *ComponentStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return writeErr(err, "component")
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.KindNotFound, "component not found")
	}
	return nil
}

func (s *ComponentStore) List(ctx context.Context, f store.ComponentFilter) ([]models.Component, error) {
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
	if f.InstalledIn != nil {
		filter["installedIn"] = *f.InstalledIn
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "component query failed", err)
	}
	defer cursor.Close(ctx)

	var components []models.Component
	if err = cursor.All(ctx, &components); err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "component decode failed", err)
	}
	if components == nil {
		components = []models.Component{}
	}
	return components, nil
}
