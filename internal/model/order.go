package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Order is a document in the orders collection, indexed by orderDate.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderDate time.Time          `bson:"orderDate" json:"orderDate"`
	Status    OrderStatus        `bson:"status" json:"status"`
	UserID    primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
}

func (o *Order) GetID() primitive.ObjectID   { return o.ID }
func (o *Order) SetID(id primitive.ObjectID) { o.ID = id }
