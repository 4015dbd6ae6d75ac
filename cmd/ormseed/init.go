package main

import (
	"ormseed/internal/bootstrap"
	"ormseed/internal/database"
	"ormseed/internal/repository"
	"ormseed/internal/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create accounts, collections, indexes and seed products",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := database.Connect(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Disconnect(client, a.cfg); err != nil {
			a.logger.Warn("disconnect failed", zap.Error(err))
		}
	}()
	db := database.Select(client, a.cfg)

	a.logger.Info("bootstrapping database",
		zap.String("db", db.Name()),
		zap.Bool("idempotent", a.cfg.Bootstrap.Idempotent))

	b := bootstrap.New(
		schema.DefaultPlan(db.Name()),
		repository.NewCatalogRepository(db),
		repository.NewProductRepository(db),
		a.logger,
		cmd.OutOrStdout(),
		bootstrap.Options{
			Idempotent: a.cfg.Bootstrap.Idempotent,
			OpTimeout:  a.opTimeout(),
		},
	)
	_, err = b.Run(ctx)
	return err
}
