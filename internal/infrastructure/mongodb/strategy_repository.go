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

const strategiesCollection = "pick_strategies"

// PickStrategyRepository persists pick strategy configurations
type PickStrategyRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewPickStrategyRepository creates a new PickStrategyRepository
func NewPickStrategyRepository(db *mongo.Database, ids *IDAllocator) *PickStrategyRepository {
	repo := &PickStrategyRepository{
		collection: db.Collection(strategiesCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *PickStrategyRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "inventoryGroupId", Value: 1}}},
		{Keys: bson.D{{Key: "taskKind", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *PickStrategyRepository) Save(ctx context.Context, cfg *domain.PickStrategyConfiguration) error {
	if cfg.ID == 0 {
		id, err := r.ids.Next(ctx, strategiesCollection)
		if err != nil {
			return err
		}
		cfg.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, cfg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save pick strategy: %w", err)
	}
	return nil
}

func (r *PickStrategyRepository) FindByID(ctx context.Context, id int64) (*domain.PickStrategyConfiguration, error) {
	var cfg domain.PickStrategyConfiguration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *PickStrategyRepository) FindByGroupID(ctx context.Context, groupID int64) ([]*domain.PickStrategyConfiguration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"inventoryGroupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cfgs []*domain.PickStrategyConfiguration
	err = cursor.All(ctx, &cfgs)
	return cfgs, err
}

func (r *PickStrategyRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.PickStrategyConfiguration, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cfgs []*domain.PickStrategyConfiguration
	err = cursor.All(ctx, &cfgs)
	return cfgs, err
}

func (r *PickStrategyRepository) Update(ctx context.Context, cfg *domain.PickStrategyConfiguration, expectedVersion int64) error {
	filter := bson.M{"_id": cfg.ID, "version": expectedVersion}

	result, err := r.collection.ReplaceOne(ctx, filter, cfg)
	if err != nil {
		return fmt.Errorf("failed to update pick strategy: %w", err)
	}
	if result.MatchedCount == 0 {
		return application.ErrVersionConflict
	}
	return nil
}

func (r *PickStrategyRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *PickStrategyRepository) DeleteByGroupID(ctx context.Context, groupID int64) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"inventoryGroupId": groupID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *PickStrategyRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
