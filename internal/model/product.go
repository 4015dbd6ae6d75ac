package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a document in the products collection.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty" yaml:"-"`
	Name        string             `bson:"name" json:"name" yaml:"name"`
	Price       int                `bson:"price" json:"price" yaml:"price"`
	Description string             `bson:"description" json:"description" yaml:"description"`
}

func (p *Product) GetID() primitive.ObjectID   { return p.ID }
func (p *Product) SetID(id primitive.ObjectID) { p.ID = id }
