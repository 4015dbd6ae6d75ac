package bootstrap

import (
	"context"
	"fmt"
	"slices"

	"ormseed/internal/model"
	"ormseed/internal/repository"
	"ormseed/internal/schema"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeDB is an in-memory stand-in for one database. It enforces the same
// existence rules the server does for accounts and collections.
type fakeDB struct {
	accounts    []model.Account
	collections []string
	indexes     map[string][]string
	products    []*model.Product

	// failOn makes the named operation return failErr.
	failOn  string
	failErr error
	calls   []string
}

func newFakeDB() *fakeDB {
	return &fakeDB{indexes: map[string][]string{}}
}

func (f *fakeDB) fail(op string) error {
	f.calls = append(f.calls, op)
	if f.failOn == op {
		return f.failErr
	}
	return nil
}

func (f *fakeDB) CreateAccount(_ context.Context, account model.Account) error {
	if err := f.fail("createUser"); err != nil {
		return err
	}
	for _, a := range f.accounts {
		if a.Username == account.Username {
			return fmt.Errorf("createUser %s: %w", account.Username, repository.ErrAccountExists)
		}
	}
	account.Password = ""
	f.accounts = append(f.accounts, account)
	return nil
}

func (f *fakeDB) ListAccounts(context.Context) ([]model.Account, error) {
	if err := f.fail("usersInfo"); err != nil {
		return nil, err
	}
	return slices.Clone(f.accounts), nil
}

func (f *fakeDB) CreateCollection(_ context.Context, name string) error {
	if err := f.fail("create"); err != nil {
		return err
	}
	if slices.Contains(f.collections, name) {
		return fmt.Errorf("createCollection %s: %w", name, repository.ErrCollectionExists)
	}
	f.collections = append(f.collections, name)
	return nil
}

func (f *fakeDB) CollectionNames(context.Context) ([]string, error) {
	if err := f.fail("listCollections"); err != nil {
		return nil, err
	}
	return slices.Clone(f.collections), nil
}

func (f *fakeDB) CreateIndex(_ context.Context, collection string, index mongo.IndexModel) (string, error) {
	if err := f.fail("createIndexes"); err != nil {
		return "", err
	}
	name := schema.IndexName(index)
	if !slices.Contains(f.indexes[collection], name) {
		f.indexes[collection] = append(f.indexes[collection], name)
	}
	return name, nil
}

func (f *fakeDB) IndexNames(_ context.Context, collection string) ([]string, error) {
	if err := f.fail("listIndexes"); err != nil {
		return nil, err
	}
	return slices.Clone(f.indexes[collection]), nil
}

func (f *fakeDB) InsertMany(_ context.Context, products []*model.Product) error {
	if err := f.fail("insert"); err != nil {
		return err
	}
	for _, p := range products {
		cp := *p
		cp.ID = primitive.NewObjectID()
		f.products = append(f.products, &cp)
	}
	return nil
}

func (f *fakeDB) UpsertByName(_ context.Context, product *model.Product) (bool, error) {
	if err := f.fail("update"); err != nil {
		return false, err
	}
	for _, p := range f.products {
		if p.Name == product.Name {
			return false, nil
		}
	}
	cp := *product
	cp.ID = primitive.NewObjectID()
	f.products = append(f.products, &cp)
	return true, nil
}

func (f *fakeDB) FindByName(_ context.Context, name string) ([]*model.Product, error) {
	if err := f.fail("find"); err != nil {
		return nil, err
	}
	var out []*model.Product
	for _, p := range f.products {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeDB) Count(context.Context) (int64, error) {
	if err := f.fail("count"); err != nil {
		return 0, err
	}
	return int64(len(f.products)), nil
}

func (f *fakeDB) indexCount() int {
	n := 0
	for _, names := range f.indexes {
		n += len(names)
	}
	return n
}
