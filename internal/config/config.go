package config

import (
	"fmt"
	"strings"
	"time"

	"ormseed/pkg/util"

	"github.com/spf13/viper"
)

// MongoDB configuration
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	OpTimeout      time.Duration
}

// Bootstrap configuration
type BootstrapConfig struct {
	Idempotent bool
}

// Logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Config holds all application configuration
type Config struct {
	Mongo     MongoConfig
	Bootstrap BootstrapConfig
	Log       LogConfig
}

// Configuration keys. Viper maps each one to the upper-cased env variable.
const (
	KeyMongoURI          = "mongo_uri"
	KeyMongoDB           = "mongo_db"
	KeyConnectTimeoutSec = "mongo_connect_timeout_sec"
	KeyOpTimeoutSec      = "mongo_op_timeout_sec"
	KeyIdempotent        = "bootstrap_idempotent"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
)

// Default configuration values
const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDB           = "ormdb"
	DefaultConnectTimeoutSec = 10
	DefaultOpTimeoutSec      = 30
	DefaultIdempotent        = false
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
)

// New returns the configuration resolved from the global viper instance.
func New() *Config {
	return FromViper(viper.GetViper())
}

// FromViper registers defaults on v, enables env lookup and resolves a Config.
// Values already bound to flags or read from a config file take precedence
// over the defaults.
func FromViper(v *viper.Viper) *Config {
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		Mongo: MongoConfig{
			URI:            v.GetString(KeyMongoURI),
			Database:       v.GetString(KeyMongoDB),
			ConnectTimeout: seconds(v.GetInt(KeyConnectTimeoutSec), DefaultConnectTimeoutSec),
			OpTimeout:      seconds(v.GetInt(KeyOpTimeoutSec), DefaultOpTimeoutSec),
		},
		Bootstrap: BootstrapConfig{
			Idempotent: v.GetBool(KeyIdempotent),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
	}
}

// ReadFile merges a config file (yaml, toml, json...) into v.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the values that cannot be defaulted away.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo uri is required")
	}
	if err := util.ValidateDatabaseName(c.Mongo.Database); err != nil {
		return fmt.Errorf("invalid mongo database: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q (want json or console)", c.Log.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyMongoURI, DefaultMongoURI)
	v.SetDefault(KeyMongoDB, DefaultMongoDB)
	v.SetDefault(KeyConnectTimeoutSec, DefaultConnectTimeoutSec)
	v.SetDefault(KeyOpTimeoutSec, DefaultOpTimeoutSec)
	v.SetDefault(KeyIdempotent, DefaultIdempotent)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

func seconds(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback // misconfigured
	}
	return time.Duration(value) * time.Second
}
