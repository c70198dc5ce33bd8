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

const executionsCollection = "task_executions"

// TaskExecutionRepository persists task execution configurations, one per
// task planning configuration.
type TaskExecutionRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewTaskExecutionRepository creates a new TaskExecutionRepository
func NewTaskExecutionRepository(db *mongo.Database, ids *IDAllocator) *TaskExecutionRepository {
	repo := &TaskExecutionRepository{
		collection: db.Collection(executionsCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TaskExecutionRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "taskPlanningId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *TaskExecutionRepository) Save(ctx context.Context, cfg *domain.TaskExecutionConfiguration) error {
	if cfg.ID == 0 {
		id, err := r.ids.Next(ctx, executionsCollection)
		if err != nil {
			return err
		}
		cfg.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, cfg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save task execution: %w", err)
	}
	return nil
}

func (r *TaskExecutionRepository) FindByID(ctx context.Context, id int64) (*domain.TaskExecutionConfiguration, error) {
	var cfg domain.TaskExecutionConfiguration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *TaskExecutionRepository) FindByPlanningID(ctx context.Context, planningID int64) (*domain.TaskExecutionConfiguration, error) {
	var cfg domain.TaskExecutionConfiguration
	err := r.collection.FindOne(ctx, bson.M{"taskPlanningId": planningID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *TaskExecutionRepository) Update(ctx context.Context, cfg *domain.TaskExecutionConfiguration, expectedVersion int64) error {
	filter := bson.M{"_id": cfg.ID, "version": expectedVersion}

	result, err := r.collection.ReplaceOne(ctx, filter, cfg)
	if err != nil {
		return fmt.Errorf("failed to update task execution: %w", err)
	}
	if result.MatchedCount == 0 {
		return application.ErrVersionConflict
	}
	return nil
}

func (r *TaskExecutionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *TaskExecutionRepository) DeleteByPlanningID(ctx context.Context, planningID int64) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"taskPlanningId": planningID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
