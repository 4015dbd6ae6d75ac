// Package schema holds the fixed bootstrap plan for the ORM benchmark
// database: accounts, collections, indexes and seed products.
package schema

import (
	"ormseed/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CollUsers    = "users"
	CollOrders   = "orders"
	CollProducts = "products"
)

// CompletionMessage is written to stdout once the bootstrap finishes.
const CompletionMessage = "MongoDB 초기화 완료"

// Plan is everything the bootstrap creates in a single database.
type Plan struct {
	Database    string
	Accounts    []model.Account
	Collections []string
	Indexes     map[string][]mongo.IndexModel
	Seeds       []*model.Product
}

// DefaultPlan returns the plan targeting db. A new value is built on every
// call so callers may mutate it freely.
func DefaultPlan(db string) *Plan {
	return &Plan{
		Database: db,
		Accounts: []model.Account{
			{
				Username: "admin",
				Password: "password",
				Roles: []model.RoleGrant{
					{Role: model.RoleDBOwner, DB: db},
					{Role: model.RoleReadWrite, DB: db},
				},
			},
			{
				Username: "user",
				Password: "password",
				Roles: []model.RoleGrant{
					{Role: model.RoleReadWrite, DB: db},
				},
			},
		},
		Collections: []string{CollUsers, CollOrders, CollProducts},
		Indexes:     indexes(),
		Seeds: []*model.Product{
			{Name: "Example Product 1", Price: 10000, Description: "테스트 상품 1"},
			{Name: "Example Product 2", Price: 20000, Description: "테스트 상품 2"},
		},
	}
}

// indexes maps a collection to the indexes that must exist on it. Names
// match the server's default so re-creating an index is a no-op.
func indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_1").SetUnique(true),
			},
		},
		CollOrders: {
			{
				Keys:    bson.D{{Key: "orderDate", Value: 1}},
				Options: options.Index().SetName("orderDate_1"),
			},
		},
		CollProducts: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName("name_1"),
			},
		},
	}
}

// IndexCount returns the number of indexes the plan declares.
func (p *Plan) IndexCount() int {
	n := 0
	for _, models := range p.Indexes {
		n += len(models)
	}
	return n
}

// IndexNames returns the declared index names per collection.
func (p *Plan) IndexNames() map[string][]string {
	out := make(map[string][]string, len(p.Indexes))
	for coll, models := range p.Indexes {
		for _, m := range models {
			out[coll] = append(out[coll], IndexName(m))
		}
	}
	return out
}

// IndexName returns the explicit name of m, or "" when none was set.
func IndexName(m mongo.IndexModel) string {
	if m.Options == nil || m.Options.Name == nil {
		return ""
	}
	return *m.Options.Name
}

// IsUnique reports whether m enforces uniqueness.
func IsUnique(m mongo.IndexModel) bool {
	return m.Options != nil && m.Options.Unique != nil && *m.Options.Unique
}
