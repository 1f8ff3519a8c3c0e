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

// ProductFilter narrows product listings.
type ProductFilter struct {
	Page       int
	PerPage    int
	CategoryID *uuid.UUID
	Search     string
	Featured   *bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	Find(ctx context.Context, filter ProductFilter) ([]*models.Product, int64, error)
	FindPage(ctx context.Context, page, perPage int) ([]*models.Product, int64, error)
	FindStockAtOrBelow(ctx context.Context, threshold int) ([]*models.Product, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, updates bson.M) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
	CompareAndSetStock(ctx context.Context, id uuid.UUID, previous, next int) error
	DeductStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error)
	RestoreStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error)
}

// MongoProductRepository implements ProductRepository on a mongo collection.
type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection(database.ProductsCollection)}
}

// EnsureIndexes creates the unique slug index.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func notDeleted() bson.M {
	return bson.M{"$exists": false}
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	filter := bson.M{"_id": id, "deleted_at": notDeleted()}
	var product models.Product
	if err := r.collection.FindOne(ctx, filter).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	filter := bson.M{"slug": slug, "deleted_at": notDeleted()}
	var product models.Product
	if err := r.collection.FindOne(ctx, filter).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) Find(ctx context.Context, filter ProductFilter) ([]*models.Product, int64, error) {
	query := bson.M{"deleted_at": notDeleted()}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}
	if filter.Featured != nil {
		query["is_featured"] = *filter.Featured
	}

	skip := (filter.Page - 1) * filter.PerPage
	findOptions := options.Find().
		SetLimit(int64(filter.PerPage)).
		SetSkip(int64(skip)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *MongoProductRepository) FindPage(ctx context.Context, page, perPage int) ([]*models.Product, int64, error) {
	return r.Find(ctx, ProductFilter{Page: page, PerPage: perPage})
}

func (r *MongoProductRepository) FindStockAtOrBelow(ctx context.Context, threshold int) ([]*models.Product, error) {
	filter := bson.M{"stock": bson.M{"$lte": threshold}, "deleted_at": notDeleted()}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "stock", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"category_id": categoryID, "deleted_at": notDeleted()})
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *MongoProductRepository) Update(ctx context.Context, id uuid.UUID, updates bson.M) (int64, error) {
	filter := bson.M{"_id": id, "deleted_at": notDeleted()}
	updates["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, ErrDuplicateSlug
		}
		return 0, err
	}
	return result.MatchedCount, nil
}

// SoftDelete sets deleted_at so the product disappears from listings without
// breaking order item references.
func (r *MongoProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	filter := bson.M{"_id": id, "deleted_at": notDeleted()}
	update := bson.M{"$set": bson.M{"deleted_at": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CompareAndSetStock writes stock and the derived in_stock flag only if the
// current stock still equals previous. ErrStockConflict means another writer
// won; the caller re-reads and retries.
func (r *MongoProductRepository) CompareAndSetStock(ctx context.Context, id uuid.UUID, previous, next int) error {
	filter := bson.M{"_id": id, "stock": previous, "deleted_at": notDeleted()}
	update := bson.M{"$set": bson.M{
		"stock":      next,
		"in_stock":   next > 0,
		"updated_at": time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrStockConflict
	}
	return nil
}

// DeductStock atomically decrements stock by quantity, guarded by
// stock >= quantity, and recomputes in_stock in the same update pipeline.
// Returns the post-update product.
func (r *MongoProductRepository) DeductStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error) {
	return r.applyStockDelta(ctx, id, -quantity, bson.M{"stock": bson.M{"$gte": quantity}})
}

// RestoreStock atomically increments stock by quantity and recomputes
// in_stock. Returns the post-update product.
func (r *MongoProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error) {
	return r.applyStockDelta(ctx, id, quantity, nil)
}

func (r *MongoProductRepository) applyStockDelta(ctx context.Context, id uuid.UUID, delta int, guard bson.M) (*models.Product, error) {
	filter := bson.M{"_id": id, "deleted_at": notDeleted()}
	for k, v := range guard {
		filter[k] = v
	}

	// Pipeline update: the second stage sees the adjusted stock, so the flag
	// and the counter change in one atomic document write.
	update := bson.A{
		bson.M{"$set": bson.M{"stock": bson.M{"$add": bson.A{"$stock", delta}}}},
		bson.M{"$set": bson.M{
			"in_stock":   bson.M{"$gt": bson.A{"$stock", 0}},
			"updated_at": time.Now().UTC(),
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			if delta < 0 {
				return nil, ErrInsufficientStock
			}
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}
