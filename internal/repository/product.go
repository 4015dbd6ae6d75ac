package repository

import (
	"context"
	"fmt"

	"ormseed/internal/model"
	"ormseed/internal/schema"
	"ormseed/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IProductRepository defines product persistence
type IProductRepository interface {
	InsertMany(ctx context.Context, products []*model.Product) error
	UpsertByName(ctx context.Context, product *model.Product) (bool, error)
	FindByName(ctx context.Context, name string) ([]*model.Product, error)
	Count(ctx context.Context) (int64, error)
}

// ProductRepository implements product persistence
type ProductRepository struct {
	base *generic.MongoBaseRepository[*model.Product]
}

func NewProductRepository(db *mongo.Database) IProductRepository {
	return &ProductRepository{
		base: generic.NewBaseRepository[*model.Product](db.Collection(schema.CollProducts)),
	}
}

func (r *ProductRepository) InsertMany(ctx context.Context, products []*model.Product) error {
	if err := r.base.CreateMany(ctx, products); err != nil {
		return fmt.Errorf("insertMany products: %w", classify(err))
	}
	return nil
}

// UpsertByName inserts product unless a document with the same name exists.
// An existing document is left untouched. Reports whether it inserted.
func (r *ProductRepository) UpsertByName(ctx context.Context, product *model.Product) (bool, error) {
	res, err := r.base.Collection.UpdateOne(ctx,
		bson.M{"name": product.Name},
		bson.M{"$setOnInsert": bson.M{
			"name":        product.Name,
			"price":       product.Price,
			"description": product.Description,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("upsert product %q: %w", product.Name, classify(err))
	}
	return res.UpsertedCount > 0, nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]*model.Product, error) {
	products, err := r.base.Find(ctx, bson.M{"name": name})
	if err != nil {
		return nil, fmt.Errorf("find product %q: %w", name, err)
	}
	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.base.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
