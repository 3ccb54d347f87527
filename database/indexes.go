// database/indexes.go
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the application relies on.
// Safe to call on every startup; CreateMany is a no-op for existing indexes.
func EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := DB()
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		"devices": {
			{Keys: bson.D{{Key: "serialNumber", Value: 1}}, Options: unique},
		},
		"employees": {
			{Keys: bson.D{{Key: "employeeId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"invoices": {
			{Keys: bson.D{{Key: "invoiceNumber", Value: 1}}, Options: unique},
		},
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"components": {
			{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
			{Keys: bson.D{{Key: "installedIn", Value: 1}}},
		},
		"accounts": {
			{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
