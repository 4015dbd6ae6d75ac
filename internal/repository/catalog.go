package repository

import (
	"context"
	"fmt"

	"ormseed/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ICatalogRepository defines the database catalog operations: accounts,
// collections and indexes.
type ICatalogRepository interface {
	CreateAccount(ctx context.Context, account model.Account) error
	ListAccounts(ctx context.Context) ([]model.Account, error)
	CreateCollection(ctx context.Context, name string) error
	CollectionNames(ctx context.Context) ([]string, error)
	CreateIndex(ctx context.Context, collection string, index mongo.IndexModel) (string, error)
	IndexNames(ctx context.Context, collection string) ([]string, error)
}

// CatalogRepository implements catalog operations on one database
type CatalogRepository struct {
	db *mongo.Database
}

func NewCatalogRepository(db *mongo.Database) ICatalogRepository {
	return &CatalogRepository{db: db}
}

// CreateAccount issues createUser on the bound database.
func (r *CatalogRepository) CreateAccount(ctx context.Context, account model.Account) error {
	roles := account.Roles
	if roles == nil {
		roles = []model.RoleGrant{}
	}
	cmd := bson.D{
		{Key: "createUser", Value: account.Username},
		{Key: "pwd", Value: account.Password},
		{Key: "roles", Value: roles},
	}
	if err := r.db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("createUser %s: %w", account.Username, classify(err))
	}
	return nil
}

// ListAccounts returns the accounts defined on the bound database.
func (r *CatalogRepository) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var res struct {
		Users []model.Account `bson:"users"`
	}
	err := r.db.RunCommand(ctx, bson.D{{Key: "usersInfo", Value: 1}}).Decode(&res)
	if err != nil {
		return nil, fmt.Errorf("usersInfo: %w", err)
	}
	return res.Users, nil
}

func (r *CatalogRepository) CreateCollection(ctx context.Context, name string) error {
	if err := r.db.CreateCollection(ctx, name); err != nil {
		return fmt.Errorf("createCollection %s: %w", name, classify(err))
	}
	return nil
}

func (r *CatalogRepository) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := r.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listCollections: %w", err)
	}
	return names, nil
}

// CreateIndex creates index on collection and returns the index name.
func (r *CatalogRepository) CreateIndex(ctx context.Context, collection string, index mongo.IndexModel) (string, error) {
	name, err := r.db.Collection(collection).Indexes().CreateOne(ctx, index)
	if err != nil {
		return "", fmt.Errorf("createIndex on %s: %w", collection, classify(err))
	}
	return name, nil
}

// IndexNames lists index names on collection, excluding the implicit _id_ index.
func (r *CatalogRepository) IndexNames(ctx context.Context, collection string) ([]string, error) {
	cur, err := r.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listIndexes on %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var specs []struct {
		Name string `bson:"name"`
	}
	if err := cur.All(ctx, &specs); err != nil {
		return nil, fmt.Errorf("listIndexes on %s: %w", collection, err)
	}

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		if s.Name == "_id_" {
			continue
		}
		names = append(names, s.Name)
	}
	return names, nil
}
