package generic

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository Interface
type BaseRepository[T Entity] interface {
	Create(ctx context.Context, entity T) error
	CreateMany(ctx context.Context, entities []T) error
	FindOne(ctx context.Context, filter interface{}) (T, error)
	Find(ctx context.Context, filter interface{}) ([]T, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
}

// MongoBaseRepository Implementation
type MongoBaseRepository[T Entity] struct {
	Collection *mongo.Collection
}

func NewBaseRepository[T Entity](collection *mongo.Collection) *MongoBaseRepository[T] {
	return &MongoBaseRepository[T]{Collection: collection}
}

// 1. Create
func (r *MongoBaseRepository[T]) Create(ctx context.Context, entity T) error {
	if entity.GetID().IsZero() {
		entity.SetID(primitive.NewObjectID())
	}
	_, err := r.Collection.InsertOne(ctx, entity)
	return err
}

// 2. CreateMany (ordered, stops at the first failing document)
func (r *MongoBaseRepository[T]) CreateMany(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entities))
	for i, e := range entities {
		if e.GetID().IsZero() {
			e.SetID(primitive.NewObjectID())
		}
		docs[i] = e
	}
	_, err := r.Collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// 3. FindOne
func (r *MongoBaseRepository[T]) FindOne(ctx context.Context, filter interface{}) (T, error) {
	var entity T
	if filter == nil {
		filter = bson.M{}
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity, ErrNotFound
	}
	return entity, err
}

// 4. Find
func (r *MongoBaseRepository[T]) Find(ctx context.Context, filter interface{}) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// 5. Count
func (r *MongoBaseRepository[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.Collection.CountDocuments(ctx, filter)
}

var ErrNotFound = errors.New("not found")
