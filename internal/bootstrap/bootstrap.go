// Package bootstrap runs the one-shot database initialization: accounts,
// collections, indexes, seed products and a completion line, in that order.
// The first failing step aborts the run; nothing is rolled back.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"ormseed/internal/repository"
	"ormseed/internal/schema"
	"ormseed/pkg/timer"

	"go.uber.org/zap"
)

// Pipeline steps, in execution order.
const (
	StepAccounts    = "accounts"
	StepCollections = "collections"
	StepIndexes     = "indexes"
	StepSeeds       = "seeds"
	StepNotify      = "notify"
)

// StepError names the step that aborted the run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("bootstrap step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Options tune a run.
type Options struct {
	// Idempotent skips existing accounts and collections and upserts seeds
	// by name instead of failing on a second run.
	Idempotent bool
	// OpTimeout bounds every single database call. Zero means no bound.
	OpTimeout time.Duration
}

// Result records what a run did.
type Result struct {
	AccountsCreated    []string
	AccountsSkipped    []string
	CollectionsCreated []string
	CollectionsSkipped []string
	Indexes            []string
	SeedsInserted      int
	SeedsSkipped       int
}

// Bootstrapper applies a schema.Plan to one database.
type Bootstrapper struct {
	plan     *schema.Plan
	catalog  repository.ICatalogRepository
	products repository.IProductRepository
	logger   *zap.Logger
	out      io.Writer
	opts     Options
}

// New creates a Bootstrapper. The completion line is written to out.
func New(plan *schema.Plan, catalog repository.ICatalogRepository, products repository.IProductRepository, logger *zap.Logger, out io.Writer, opts Options) *Bootstrapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bootstrapper{
		plan:     plan,
		catalog:  catalog,
		products: products,
		logger:   logger.With(zap.String("db", plan.Database)),
		out:      out,
		opts:     opts,
	}
}

// Run executes every step in order and stops at the first failure.
func (b *Bootstrapper) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	sw := timer.NewStopwatch(b.logger)

	steps := []struct {
		name string
		fn   func(context.Context, *Result) error
	}{
		{StepAccounts, b.createAccounts},
		{StepCollections, b.createCollections},
		{StepIndexes, b.createIndexes},
		{StepSeeds, b.loadSeeds},
		{StepNotify, b.notify},
	}

	for _, s := range steps {
		if err := s.fn(ctx, res); err != nil {
			b.logger.Error("bootstrap aborted", zap.String("step", s.name), zap.Error(err))
			return res, &StepError{Step: s.name, Err: err}
		}
		sw.Lap(s.name)
	}

	sw.Total("bootstrap")
	return res, nil
}

func (b *Bootstrapper) createAccounts(ctx context.Context, res *Result) error {
	var existing []string
	if b.opts.Idempotent {
		opCtx, cancel := b.opContext(ctx)
		accounts, err := b.catalog.ListAccounts(opCtx)
		cancel()
		if err != nil {
			return err
		}
		for _, a := range accounts {
			existing = append(existing, a.Username)
		}
	}

	for _, acc := range b.plan.Accounts {
		if slices.Contains(existing, acc.Username) {
			b.logger.Info("account exists, skipping", zap.String("user", acc.Username))
			res.AccountsSkipped = append(res.AccountsSkipped, acc.Username)
			continue
		}

		opCtx, cancel := b.opContext(ctx)
		err := b.catalog.CreateAccount(opCtx, acc)
		cancel()
		if err != nil {
			return err
		}
		b.logger.Info("account created", zap.String("user", acc.Username), zap.Int("roles", len(acc.Roles)))
		res.AccountsCreated = append(res.AccountsCreated, acc.Username)
	}
	return nil
}

func (b *Bootstrapper) createCollections(ctx context.Context, res *Result) error {
	var existing []string
	if b.opts.Idempotent {
		opCtx, cancel := b.opContext(ctx)
		names, err := b.catalog.CollectionNames(opCtx)
		cancel()
		if err != nil {
			return err
		}
		existing = names
	}

	for _, name := range b.plan.Collections {
		if slices.Contains(existing, name) {
			b.logger.Info("collection exists, skipping", zap.String("collection", name))
			res.CollectionsSkipped = append(res.CollectionsSkipped, name)
			continue
		}

		opCtx, cancel := b.opContext(ctx)
		err := b.catalog.CreateCollection(opCtx, name)
		cancel()
		if err != nil {
			return err
		}
		b.logger.Info("collection created", zap.String("collection", name))
		res.CollectionsCreated = append(res.CollectionsCreated, name)
	}
	return nil
}

// createIndexes follows the collection order of the plan so runs are
// reproducible. Re-creating an identical index is a server no-op, so both
// modes issue every index.
func (b *Bootstrapper) createIndexes(ctx context.Context, res *Result) error {
	for _, coll := range b.indexedCollections() {
		for _, idx := range b.plan.Indexes[coll] {
			opCtx, cancel := b.opContext(ctx)
			name, err := b.catalog.CreateIndex(opCtx, coll, idx)
			cancel()
			if err != nil {
				return err
			}
			b.logger.Info("index created",
				zap.String("collection", coll),
				zap.String("index", name),
				zap.Bool("unique", schema.IsUnique(idx)))
			res.Indexes = append(res.Indexes, coll+"."+name)
		}
	}
	return nil
}

func (b *Bootstrapper) indexedCollections() []string {
	out := make([]string, 0, len(b.plan.Indexes))
	for _, c := range b.plan.Collections {
		if _, ok := b.plan.Indexes[c]; ok {
			out = append(out, c)
		}
	}
	// indexes on collections outside the plan's list still get built
	var extra []string
	for c := range b.plan.Indexes {
		if !slices.Contains(out, c) {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

func (b *Bootstrapper) loadSeeds(ctx context.Context, res *Result) error {
	if !b.opts.Idempotent {
		opCtx, cancel := b.opContext(ctx)
		err := b.products.InsertMany(opCtx, b.plan.Seeds)
		cancel()
		if err != nil {
			return err
		}
		res.SeedsInserted = len(b.plan.Seeds)
		b.logger.Info("seed products inserted", zap.Int("count", res.SeedsInserted))
		return nil
	}

	for _, p := range b.plan.Seeds {
		opCtx, cancel := b.opContext(ctx)
		inserted, err := b.products.UpsertByName(opCtx, p)
		cancel()
		if err != nil {
			return err
		}
		if inserted {
			res.SeedsInserted++
		} else {
			res.SeedsSkipped++
		}
	}
	b.logger.Info("seed products upserted",
		zap.Int("inserted", res.SeedsInserted),
		zap.Int("skipped", res.SeedsSkipped))
	return nil
}

func (b *Bootstrapper) notify(_ context.Context, _ *Result) error {
	if b.out == nil {
		return errors.New("no output writer")
	}
	_, err := fmt.Fprintln(b.out, schema.CompletionMessage)
	return err
}

func (b *Bootstrapper) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.opts.OpTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.opts.OpTimeout)
}
