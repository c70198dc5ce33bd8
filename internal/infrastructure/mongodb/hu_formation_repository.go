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

const huFormationsCollection = "hu_formations"

// HUFormationRepository persists HU formation configurations. The unique
// index on pickStrategyId enforces the one-to-one relation to the parent
// strategy.
type HUFormationRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewHUFormationRepository creates a new HUFormationRepository
func NewHUFormationRepository(db *mongo.Database, ids *IDAllocator) *HUFormationRepository {
	repo := &HUFormationRepository{
		collection: db.Collection(huFormationsCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *HUFormationRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pickStrategyId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *HUFormationRepository) Save(ctx context.Context, cfg *domain.HUFormationConfiguration) error {
	if cfg.ID == 0 {
		id, err := r.ids.Next(ctx, huFormationsCollection)
		if err != nil {
			return err
		}
		cfg.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, cfg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save hu formation: %w", err)
	}
	return nil
}

func (r *HUFormationRepository) FindByID(ctx context.Context, id int64) (*domain.HUFormationConfiguration, error) {
	var cfg domain.HUFormationConfiguration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *HUFormationRepository) FindByStrategyID(ctx context.Context, strategyID int64) (*domain.HUFormationConfiguration, error) {
	var cfg domain.HUFormationConfiguration
	err := r.collection.FindOne(ctx, bson.M{"pickStrategyId": strategyID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *HUFormationRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.HUFormationConfiguration, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cfgs []*domain.HUFormationConfiguration
	err = cursor.All(ctx, &cfgs)
	return cfgs, err
}

func (r *HUFormationRepository) Update(ctx context.Context, cfg *domain.HUFormationConfiguration, expectedVersion int64) error {
	filter := bson.M{"_id": cfg.ID, "version": expectedVersion}

	result, err := r.collection.ReplaceOne(ctx, filter, cfg)
	if err != nil {
		return fmt.Errorf("failed to update hu formation: %w", err)
	}
	if result.MatchedCount == 0 {
		return application.ErrVersionConflict
	}
	return nil
}

func (r *HUFormationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *HUFormationRepository) DeleteByStrategyID(ctx context.Context, strategyID int64) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"pickStrategyId": strategyID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *HUFormationRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
