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

type EmployeeStore struct {
	coll *mongo.Collection
}

func (s *EmployeeStore) Insert(ctx context.Context, e *models.Employee) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		return writeErr(err, "employee")
	}
	return nil
}

func (s *EmployeeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var e models.Employee
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, findErr(err, "employee")
	}
	return &e, nil
}

func (s *EmployeeStore) Update(ctx context.Context, e *models.Employee) error {
	e.UpdatedAt = time.Now().UTC()
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return writeErr(err, "employee")
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.KindNotFound, "employee not found")
	}
	return nil
}

func (s *EmployeeStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return writeErr(err, "employee")
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.KindNotFound, "employee not found")
	}
	return nil
}

func (s *EmployeeStore) List(ctx context.Context, f store.EmployeeFilter) ([]models.Employee, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "employee query failed", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, apperr.Wrap(apperr.KindOperationFailed, "employee decode failed", err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}
