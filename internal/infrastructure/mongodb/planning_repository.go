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

const planningCollection = "task_plannings"

// TaskPlanningRepository persists task planning configurations
type TaskPlanningRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewTaskPlanningRepository creates a new TaskPlanningRepository
func NewTaskPlanningRepository(db *mongo.Database, ids *IDAllocator) *TaskPlanningRepository {
	repo := &TaskPlanningRepository{
		collection: db.Collection(planningCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TaskPlanningRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "inventoryGroupId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *TaskPlanningRepository) Save(ctx context.Context, cfg *domain.TaskPlanningConfiguration) error {
	if cfg.ID == 0 {
		id, err := r.ids.Next(ctx, planningCollection)
		if err != nil {
			return err
		}
		cfg.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, cfg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save task planning: %w", err)
	}
	return nil
}

func (r *TaskPlanningRepository) FindByID(ctx context.Context, id int64) (*domain.TaskPlanningConfiguration, error) {
	var cfg domain.TaskPlanningConfiguration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &cfg, err
}

func (r *TaskPlanningRepository) FindByGroupID(ctx context.Context, groupID int64) ([]*domain.TaskPlanningConfiguration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"inventoryGroupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cfgs []*domain.TaskPlanningConfiguration
	err = cursor.All(ctx, &cfgs)
	return cfgs, err
}

func (r *TaskPlanningRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.TaskPlanningConfiguration, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cfgs []*domain.TaskPlanningConfiguration
	err = cursor.All(ctx, &cfgs)
	return cfgs, err
}

func (r *TaskPlanningRepository) Update(ctx context.Context, cfg *domain.TaskPlanningConfiguration, expectedVersion int64) error {
	filter := bson.M{"_id": cfg.ID, "version": expectedVersion}

	result, err := r.collection.ReplaceOne(ctx, filter, cfg)
	if err != nil {
		return fmt.Errorf("failed to update task planning: %w", err)
	}
	if result.MatchedCount == 0 {
		return application.ErrVersionConflict
	}
	return nil
}

func (r *TaskPlanningRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *TaskPlanningRepository) DeleteByGroupID(ctx context.Context, groupID int64) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"inventoryGroupId": groupID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
