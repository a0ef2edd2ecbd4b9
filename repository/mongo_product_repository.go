package repository

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lessence/models"
)

// MongoProductRepository keeps products in the "products" collection, keyed by the
// numeric "id" field rather than _id
type MongoProductRepository struct {
	Collection *mongo.Collection
}

// NewMongoProductRepository creates a repository over database's products collection
func NewMongoProductRepository(client *mongo.Client, database string) *MongoProductRepository {
	return &MongoProductRepository{
		Collection: client.Database(database).Collection("products"),
	}
}

var _ ProductRepository = (*MongoProductRepository)(nil)

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, errors.Wrap(err, "decode product")
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(err, "read products")
	}
	return products, nil
}

// List returns every product
func (r *MongoProductRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

// ListByCategory returns the products of one category
func (r *MongoProductRepository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"category": category})
}

// GetByID finds a product by its numeric id
func (r *MongoProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var product models.Product
	err := r.Collection.FindOne(ctx, bson.M{"id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, errors.Wrapf(err, "find product %d", id)
	}
	return product, nil
}

// DecrementStock applies $inc with -quantity; a missing product is not an error
func (r *MongoProductRepository) DecrementStock(ctx context.Context, id, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.Collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$inc": bson.M{"stock": -quantity},
	})
	if err != nil {
		return errors.Wrapf(err, "decrement stock of product %d", id)
	}
	return nil
}

// SetStock overwrites the stock field
func (r *MongoProductRepository) SetStock(ctx context.Context, id, stock int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.Collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"stock": stock},
	})
	if err != nil {
		return errors.Wrapf(err, "set stock of product %d", id)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
