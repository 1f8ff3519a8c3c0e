package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/database"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
)

// AreaRepository defines the interface for shipping area data access.
type AreaRepository interface {
	FindAll(ctx context.Context, activeOnly bool) ([]*models.ShippingArea, error)
	FindBySlug(ctx context.Context, slug string) (*models.ShippingArea, error)
	Create(ctx context.Context, area *models.ShippingArea) error
	Update(ctx context.Context, id uuid.UUID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// MongoAreaRepository implements AreaRepository on a mongo collection.
type MongoAreaRepository struct {
	collection *mongo.Collection
}

func NewMongoAreaRepository(db *mongo.Database) *MongoAreaRepository {
	return &MongoAreaRepository{collection: db.Collection(database.AreasCollection)}
}

// EnsureIndexes creates the unique slug index.
func (r *MongoAreaRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoAreaRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.ShippingArea, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var areas []*models.ShippingArea
	if err := cursor.All(ctx, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *MongoAreaRepository) FindBySlug(ctx context.Context, slug string) (*models.ShippingArea, error) {
	var area models.ShippingArea
	if err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&area); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &area, nil
}

func (r *MongoAreaRepository) Create(ctx context.Context, area *models.ShippingArea) error {
	if _, err := r.collection.InsertOne(ctx, area); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *MongoAreaRepository) Update(ctx context.Context, id uuid.UUID, updates bson.M) (int64, error) {
	updates["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *MongoAreaRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
