package repository

import (
	"context"
	"fmt"
	"time"

	"ormseed/internal/model"
	"ormseed/internal/schema"
	"ormseed/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IOrderRepository defines order persistence
type IOrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	CountPlacedAt(ctx context.Context, at time.Time) (int64, error)
}

// OrderRepository implements order persistence
type OrderRepository struct {
	base *generic.MongoBaseRepository[*model.Order]
}

func NewOrderRepository(db *mongo.Database) IOrderRepository {
	return &OrderRepository{
		base: generic.NewBaseRepository[*model.Order](db.Collection(schema.CollOrders)),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if order.Status == "" {
		order.Status = model.OrderPending
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if err := r.base.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", classify(err))
	}
	return order, nil
}

// CountPlacedAt counts orders with exactly this orderDate.
func (r *OrderRepository) CountPlacedAt(ctx context.Context, at time.Time) (int64, error) {
	return r.base.Count(ctx, bson.M{"orderDate": at})
}
