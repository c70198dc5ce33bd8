package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IDAllocator hands out monotonically increasing int64 identifiers, one
// counter document per collection.
type IDAllocator struct {
	counters *mongo.Collection
}

// NewIDAllocator creates an IDAllocator backed by the counters collection
func NewIDAllocator(db *mongo.Database) *IDAllocator {
	return &IDAllocator{counters: db.Collection("counters")}
}

// Next returns the next identifier for the named counter
func (a *IDAllocator) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Value int64 `bson:"value"`
	}
	err := a.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", name, err)
	}
	return doc.Value, nil
}
