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

const workOrdersCollection = "work_order_managements"

// WorkOrderManagementRepository persists work order management configurations,
// one per pick strategy.
type WorkOrderManagementRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewWorkOrderManagementRepository creates a new WorkOrderManagementRepository
func NewWorkOrderManagementRepository(db *mongo.Database, ids *IDAllocator) *WorkOrderManagementRepository {
	repo := &WorkOrderManagementRepository{
		collection: db.Collection(workOrdersCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *WorkOrderManagementRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pickStrategyId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *WorkOrderManagementRepository) Save(ctx context.Context, cfg *domain.WorkOrderManagementConfiguration) error {
	if cfg.ID == 0 {
		id, err := r.ids.Next(ctx, workOrdersCollection)
		if err != nil {
			return err
		}
		cfg.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, cfg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save work order management: %w", err)
	}
	return nil
}

func (r *WorkOrderManagementRepository) FindByID(ctx context.Context, id int64) (*domain.WorkOrderManagementConfiguration, error) {
	var cfg domain.WorkOrderManagementConfiguration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *WorkOrderManagementRepository) FindByStrategyID(ctx context.Context, strategyID int64) (*domain.WorkOrderManagementConfiguration, error) {
	var cfg domain.WorkOrderManagementConfiguration
	err := r.collection.FindOne(ctx, bson.M{"pickStrategyId": strategyID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *WorkOrderManagementRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.WorkOrderManagementConfiguration, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cfgs []*domain.WorkOrderManagementConfiguration
	err = cursor.All(ctx, &cfgs)
	return cfgs, err
}

func (r *WorkOrderManagementRepository) Update(ctx context.Context, cfg *domain.WorkOrderManagementConfiguration, expectedVersion int64) error {
	filter := bson.M{"_id": cfg.ID, "version": expectedVersion}

	result, err := r.collection.ReplaceOne(ctx, filter, cfg)
	if err != nil {
		return fmt.Errorf("failed to update work order management: %w", err)
	}
	if result.MatchedCount == 0 {
		return application.ErrVersionConflict
	}
	return nil
}

func (r *WorkOrderManagementRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *WorkOrderManagementRepository) DeleteByStrategyID(ctx context.Context, strategyID int64) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"pickStrategyId": strategyID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *WorkOrderManagementRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
