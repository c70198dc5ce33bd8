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

const templatesCollection = "templates"

// TemplateRepository persists configuration templates
type TemplateRepository struct {
	collection *mongo.Collection
	ids        *IDAllocator
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *mongo.Database, ids *IDAllocator) *TemplateRepository {
	repo := &TemplateRepository{
		collection: db.Collection(templatesCollection),
		ids:        ids,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TemplateRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *TemplateRepository) Save(ctx context.Context, template *domain.Template) error {
	if template.ID == 0 {
		id, err := r.ids.Next(ctx, templatesCollection)
		if err != nil {
			return err
		}
		template.ID = id
	}

	if _, err := r.collection.InsertOne(ctx, template); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id int64) (*domain.Template, error) {
	var template domain.Template
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &template, err
}

func (r *TemplateRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Template, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*domain.Template
	err = cursor.All(ctx, &templates)
	return templates, err
}

func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
