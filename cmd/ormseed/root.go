package main

import (
	"time"

	"ormseed/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand performs the bootstrap, so the binary can be dropped into a
// database init hook as is.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "ormseed",
		Short: "ormseed - bootstrap the ORM benchmark MongoDB database",
		Long: `ormseed creates the accounts, collections, indexes and seed products
of the ORM benchmark database, then prints a completion line.

Settings come from flags, environment variables or a config file:
- MONGO_URI, MONGO_DB, MONGO_CONNECT_TIMEOUT_SEC, MONGO_OP_TIMEOUT_SEC
- BOOTSTRAP_IDEMPOTENT
- LOG_LEVEL={debug|info|warn|error}, LOG_FORMAT={json|console}
Flags take precedence over environment variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runInit,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("uri", config.DefaultMongoURI, "MongoDB connection string")
	flags.String("db", config.DefaultMongoDB, "target database")
	flags.Int("connect-timeout", config.DefaultConnectTimeoutSec, "connect and ping timeout in seconds")
	flags.Int("op-timeout", config.DefaultOpTimeoutSec, "per-operation timeout in seconds")
	flags.String("log-level", config.DefaultLogLevel, "log level")
	flags.String("log-format", config.DefaultLogFormat, "log format: json or console")
	flags.Bool("idempotent", config.DefaultIdempotent, "skip existing accounts/collections and upsert seeds")

	a.bind(flags, map[string]string{
		config.KeyMongoURI:          "uri",
		config.KeyMongoDB:           "db",
		config.KeyConnectTimeoutSec: "connect-timeout",
		config.KeyOpTimeoutSec:      "op-timeout",
		config.KeyLogLevel:          "log-level",
		config.KeyLogFormat:         "log-format",
		config.KeyIdempotent:        "idempotent",
	})

	cmd.AddCommand(
		a.newInitCmd(),
		a.newVerifyCmd(),
		a.newPlanCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) bind(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		// Lookup never misses: every name above is registered on fs.
		_ = a.v.BindPFlag(key, fs.Lookup(name))
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	a.cfg = config.FromViper(a.v)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(a.cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) opTimeout() time.Duration {
	return a.cfg.Mongo.OpTimeout
}
