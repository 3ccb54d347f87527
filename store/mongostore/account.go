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

type AccountStore struct {
	coll *mongo.Collection
}

func (s *AccountStore) Insert(ctx context.Context, a *models.Account) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.Normalize()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		return writeErr(err, "account")
	}
	return nil
}

func (s *AccountStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var a models.Account
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, findErr(err, "account")
	}
	return &a, nil
}

func (s *AccountStore) Update(ctx context.Context, a *models.Account) error {
	a.Normalize()
	a.UpdatedAt = time.Now().UTC()
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return writeErr(err, "account")
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.KindNotFound, "account not found")
	}
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return writeErr(err, "account")
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.KindNotFound, "account not found")
	}
	return nil
}

func (s *AccountStore) List(ctx context.Context, f store.AccountFilter) ([]models.Account, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.AssignmentStatus != "" {
		filter["assignmentStatus"] = f.AssignmentStatus
	}
	if f.AssignedTo != nil {
		filter["assignedTo"] = *f.AssignedTo
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "account query failed", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "account decode failed", err)
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}
