package main

import (
	"context"
	"fmt"
	"sort"

	"ormseed/internal/bootstrap"
	"ormseed/internal/database"
	"ormseed/internal/repository"
	"ormseed/internal/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the database matches the bootstrap plan",
		Args:  cobra.NoArgs,
		RunE:  a.runVerify,
	}
}

func (a *app) runVerify(cmd *cobra.Command, _ []string) error {
	client, err := database.Connect(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Disconnect(client, a.cfg); err != nil {
			a.logger.Warn("disconnect failed", zap.Error(err))
		}
	}()
	db := database.Select(client, a.cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), a.opTimeout())
	defer cancel()

	v := bootstrap.NewVerifier(
		schema.DefaultPlan(db.Name()),
		repository.NewCatalogRepository(db),
		repository.NewProductRepository(db),
		a.logger,
	)
	rep, err := v.Verify(ctx)
	if rep != nil {
		printReport(cmd, db.Name(), rep)
	}
	return err
}

func printReport(cmd *cobra.Command, db string, rep *bootstrap.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database:    %s\n", db)
	fmt.Fprintf(out, "accounts:    %d\n", len(rep.Accounts))
	fmt.Fprintf(out, "collections: %d\n", len(rep.Collections))

	colls := make([]string, 0, len(rep.Indexes))
	n := 0
	for c, names := range rep.Indexes {
		colls = append(colls, c)
		n += len(names)
	}
	sort.Strings(colls)
	fmt.Fprintf(out, "indexes:     %d\n", n)
	for _, c := range colls {
		fmt.Fprintf(out, "  %s: %v\n", c, rep.Indexes[c])
	}
	fmt.Fprintf(out, "products:    %d\n", rep.Products)
}
