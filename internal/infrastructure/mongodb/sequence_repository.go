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

const sequencesCollection = "task_sequences"

// TaskSequenceRepository persists task sequence configurations
type TaskSequenceRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewTaskSequenceRepository creates a new TaskSequenceRepository
func NewTaskSequenceRepository(db *mongo.Database, ids *IDAllocator) *TaskSequenceRepository {
	repo := &TaskSequenceRepository{
		collection: db.Collection(sequencesCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TaskSequenceRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "inventoryGroupId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *TaskSequenceRepository) Save(ctx context.Context, cfg *domain.TaskSequenceConfiguration) error {
	if cfg.ID == 0 {
		id, err := r.ids.Next(ctx, sequencesCollection)
		if err != nil {
			return err
		}
		cfg.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, cfg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save task sequence: %w", err)
	}
	return nil
}

func (r *TaskSequenceRepository) FindByID(ctx context.Context, id int64) (*domain.TaskSequenceConfiguration, error) {
	var cfg domain.TaskSequenceConfiguration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *TaskSequenceRepository) FindByGroupID(ctx context.Context, groupID int64) ([]*domain.TaskSequenceConfiguration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"inventoryGroupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cfgs []*domain.TaskSequenceConfiguration
	err = cursor.All(ctx, &cfgs)
	return cfgs, err
}

func (r *TaskSequenceRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.TaskSequenceConfiguration, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cfgs []*domain.TaskSequenceConfiguration
	err = cursor.All(ctx, &cfgs)
	return cfgs, err
}

func (r *TaskSequenceRepository) Update(ctx context.Context, cfg *domain.TaskSequenceConfiguration, expectedVersion int64) error {
	filter := bson.M{"_id": cfg.ID, "version": expectedVersion}

	result, err := r.collection.ReplaceOne(ctx, filter, cfg)
	if err != nil {
		return fmt.Errorf("failed to update task sequence: %w", err)
	}
	if result.MatchedCount == 0 {
		return application.ErrVersionConflict
	}
	return nil
}

func (r *TaskSequenceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *TaskSequenceRepository) DeleteByGroupID(ctx context.Context, groupID int64) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"inventoryGroupId": groupID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *TaskSequenceRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
