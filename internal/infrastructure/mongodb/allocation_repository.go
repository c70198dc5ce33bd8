package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/outbound-config-service/internal/application"
	"github.com/wms-platform/outbound-config-service/internal/domain"
)

const allocationsCollection = "stock_allocations"

// StockAllocationRepository persists stock allocation strategies. The unique
// index on inventoryGroupId+mode enforces at most one strategy per mode per
// group.
type StockAllocationRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewStockAllocationRepository creates a new StockAllocationRepository
func NewStockAllocationRepository(db *mongo.Database, ids *IDAllocator) *StockAllocationRepository {
	repo := &StockAllocationRepository{
		collection: db.Collection(allocationsCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *StockAllocationRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "inventoryGroupId", Value: 1},
				{Key: "mode", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *StockAllocationRepository) Save(ctx context.Context, strategy *domain.StockAllocationStrategy) error {
	if strategy.ID == 0 {
		id, err := r.ids.Next(ctx, allocationsCollection)
		if err != nil {
			return err
		}
		strategy.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, strategy); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save stock allocation: %w", err)
	}
	return nil
}

func (r *StockAllocationRepository) FindByID(ctx context.Context, id int64) (*domain.StockAllocationStrategy, error) {
	var strategy domain.StockAllocationStrategy
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&strategy)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &strategy, err
}

func (r *StockAllocationRepository) FindByGroupID(ctx context.Context, groupID int64) ([]*domain.StockAllocationStrategy, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"inventoryGroupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var strategies []*domain.StockAllocationStrategy
	err = cursor.All(ctx, &strategies)
	return strategies, err
}

func (r *StockAllocationRepository) FindByGroupAndMode(ctx context.Context, groupID int64, mode domain.AllocationMode) ([]*domain.StockAllocationStrategy, error) {
	filter := bson.M{"inventoryGroupId": groupID, "mode": mode}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var strategies []*domain.StockAllocationStrategy
	err = cursor.All(ctx, &strategies)
	return strategies, err
}

func (r *StockAllocationRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.StockAllocationStrategy, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var strategies []*domain.StockAllocationStrategy
	err = cursor.All(ctx, &strategies)
	return strategies, err
}

func (r *StockAllocationRepository) Update(ctx context.Context, strategy *domain.StockAllocationStrategy, expectedVersion int64) error {
	filter := bson.M{"_id": strategy.ID, "version": expectedVersion}

	result, err := r.collection.ReplaceOne(ctx, filter, strategy)
	if err != nil {
		return fmt.Errorf("failed to update stock allocation: %w", err)
	}
	if result.MatchedCount == 0 {
		return application.ErrVersionConflict
	}
	return nil
}

func (r *StockAllocationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *StockAllocationRepository) DeleteByGroupID(ctx context.Context, groupID int64) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"inventoryGroupId": groupID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *StockAllocationRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
