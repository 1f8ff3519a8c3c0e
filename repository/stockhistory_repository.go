package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/database"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
)

// StockHistoryRepository is append-only: entries are inserted and read, never
// updated or removed.
type StockHistoryRepository interface {
	Insert(ctx context.Context, entry *models.StockHistoryEntry) error
	FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.StockHistoryEntry, error)
	FindAll(ctx context.Context, page, limit int) ([]models.StockHistoryEntry, int64, error)
}

// MongoStockHistoryRepository implements StockHistoryRepository on a mongo
// collection.
type MongoStockHistoryRepository struct {
	collection *mongo.Collection
}

func NewMongoStockHistoryRepository(db *mongo.Database) *MongoStockHistoryRepository {
	return &MongoStockHistoryRepository{collection: db.Collection(database.StockHistoryCollection)}
}

// EnsureIndexes creates the per-product recency index.
func (r *MongoStockHistoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *MongoStockHistoryRepository) Insert(ctx context.Context, entry *models.StockHistoryEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *MongoStockHistoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.StockHistoryEntry, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.StockHistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MongoStockHistoryRepository) FindAll(ctx context.Context, page, limit int) ([]models.StockHistoryEntry, int64, error) {
	skip := (page - 1) * limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []models.StockHistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
