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

const groupsCollection = "inventory_groups"

// InventoryGroupRepository persists inventory groups
type InventoryGroupRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewInventoryGroupRepository creates a new InventoryGroupRepository
func NewInventoryGroupRepository(db *mongo.Database, ids *IDAllocator) *InventoryGroupRepository {
	repo := &InventoryGroupRepository{
		collection: db.Collection(groupsCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *InventoryGroupRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "storageInstruction", Value: 1},
				{Key: "locationInstruction", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *InventoryGroupRepository) Save(ctx context.Context, group *domain.InventoryGroup) error {
	if group.ID == 0 {
		id, err := r.ids.Next(ctx, groupsCollection)
		if err != nil {
			return err
		}
		group.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, group); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save inventory group: %w", err)
	}
	return nil
}

func (r *InventoryGroupRepository) FindByID(ctx context.Context, id int64) (*domain.InventoryGroup, error) {
	var group domain.InventoryGroup
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &group, err
}

func (r *InventoryGroupRepository) FindByIdentifiers(ctx context.Context, storageInstruction, locationInstruction string) (*domain.InventoryGroup, error) {
	filter := bson.M{
		"storageInstruction":  storageInstruction,
		"locationInstruction": locationInstruction,
	}

	var group domain.InventoryGroup
	err := r.collection.FindOne(ctx, filter).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &group, err
}

func (r *InventoryGroupRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.InventoryGroup, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []*domain.InventoryGroup
	err = cursor.All(ctx, &groups)
	return groups, err
}

func (r *InventoryGroupRepository) Update(ctx context.Context, group *domain.InventoryGroup, expectedVersion int64) error {
	filter := bson.M{"_id": group.ID, "version": expectedVersion}

	result, err := r.collection.ReplaceOne(ctx, filter, group)
	if err != nil {
		return fmt.Errorf("failed to update inventory group: %w", err)
	}
	if result.MatchedCount == 0 {
		return application.ErrVersionConflict
	}
	return nil
}

func (r *InventoryGroupRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *InventoryGroupRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
