package repository

import (
	"context"
	"errors"
	"fmt"

	"ormseed/internal/model"
	"ormseed/internal/schema"
	"ormseed/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IUserRepository defines user persistence
type IUserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// UserRepository implements user persistence
type UserRepository struct {
	base *generic.MongoBaseRepository[*model.User]
}

func NewUserRepository(db *mongo.Database) IUserRepository {
	return &UserRepository{
		base: generic.NewBaseRepository[*model.User](db.Collection(schema.CollUsers)),
	}
}

// Create inserts user. A second user with the same email fails with
// ErrDuplicateKey once the unique email index exists.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.base.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Email, classify(err))
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := r.base.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		if errors.Is(err, generic.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
