package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"ormseed/internal/model"
	"ormseed/internal/repository"
	"ormseed/internal/schema"
	"ormseed/pkg/timer"

	"go.uber.org/zap"
)

// Report is what Verify found in the database.
type Report struct {
	Accounts    []model.Account
	Collections []string
	Indexes     map[string][]string
	Products    int64
	// Sample holds the products matching the first seed's name.
	Sample []*model.Product
}

// Verifier reads the database back and compares it to a plan.
type Verifier struct {
	plan     *schema.Plan
	catalog  repository.ICatalogRepository
	products repository.IProductRepository
	logger   *zap.Logger
}

func NewVerifier(plan *schema.Plan, catalog repository.ICatalogRepository, products repository.IProductRepository, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{plan: plan, catalog: catalog, products: products, logger: logger}
}

// Collect builds a Report. Indexes are only listed for collections that exist.
func (v *Verifier) Collect(ctx context.Context) (*Report, error) {
	defer timer.Track(v.logger, "verify collect")()

	rep := &Report{Indexes: map[string][]string{}}
	var err error

	if rep.Accounts, err = v.catalog.ListAccounts(ctx); err != nil {
		return nil, err
	}
	if rep.Collections, err = v.catalog.CollectionNames(ctx); err != nil {
		return nil, err
	}
	for coll := range v.plan.Indexes {
		if !slices.Contains(rep.Collections, coll) {
			continue
		}
		names, err := v.catalog.IndexNames(ctx, coll)
		if err != nil {
			return nil, err
		}
		rep.Indexes[coll] = names
	}
	if rep.Products, err = v.products.Count(ctx); err != nil {
		return nil, err
	}
	if len(v.plan.Seeds) > 0 {
		if rep.Sample, err = v.products.FindByName(ctx, v.plan.Seeds[0].Name); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// Check returns nil when rep matches the plan, or every mismatch joined.
func (v *Verifier) Check(rep *Report) error {
	var errs []error

	for _, want := range v.plan.Accounts {
		i := slices.IndexFunc(rep.Accounts, func(a model.Account) bool { return a.Username == want.Username })
		if i < 0 {
			errs = append(errs, fmt.Errorf("account %s missing", want.Username))
			continue
		}
		for _, r := range want.Roles {
			if !rep.Accounts[i].HasRole(r.Role, r.DB) {
				errs = append(errs, fmt.Errorf("account %s lacks role %s on %s", want.Username, r.Role, r.DB))
			}
		}
	}

	for _, c := range v.plan.Collections {
		if !slices.Contains(rep.Collections, c) {
			errs = append(errs, fmt.Errorf("collection %s missing", c))
		}
	}

	for coll, names := range v.plan.IndexNames() {
		for _, n := range names {
			if !slices.Contains(rep.Indexes[coll], n) {
				errs = append(errs, fmt.Errorf("index %s.%s missing", coll, n))
			}
		}
	}

	if want := int64(len(v.plan.Seeds)); rep.Products != want {
		errs = append(errs, fmt.Errorf("products: found %d documents, want %d", rep.Products, want))
	}

	if len(v.plan.Seeds) > 0 {
		want := v.plan.Seeds[0]
		switch {
		case len(rep.Sample) != 1:
			errs = append(errs, fmt.Errorf("product %q: found %d documents, want 1", want.Name, len(rep.Sample)))
		case rep.Sample[0].Price != want.Price || rep.Sample[0].Description != want.Description:
			errs = append(errs, fmt.Errorf("product %q: got price %d description %q", want.Name, rep.Sample[0].Price, rep.Sample[0].Description))
		}
	}

	return errors.Join(errs...)
}

// Verify collects a report and checks it.
func (v *Verifier) Verify(ctx context.Context) (*Report, error) {
	rep, err := v.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read database state: %w", err)
	}
	if err := v.Check(rep); err != nil {
		return rep, err
	}
	return rep, nil
}
