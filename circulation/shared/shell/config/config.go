package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported engines and postgres drivers.
const (
	EngineMemory   = "memory"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"

	DriverPGXPool = "pgxpool"
	DriverSQLDB   = "sqldb"
	DriverSQLX    = "sqlx"
)

// EnvPrefix is the prefix of all environment variables, e.g. LIBRARY_DATABASE_ENGINE.
const EnvPrefix = "LIBRARY"

var (
	ErrUnknownEngine         = errors.New("unknown database engine")
	ErrUnknownPostgresDriver = errors.New("unknown postgres driver")
	ErrMissingJWTSecret      = errors.New("auth.jwt_secret must be set")
	ErrMissingPostgresDSN    = errors.New("database.postgres.dsn must be set")
)

// Config is the complete service configuration.
type Config struct {
	HTTP       HTTPConfig
	Auth       AuthConfig
	Database   DatabaseConfig
	EventStore EventStoreConfig
	Borrowing  BorrowingConfig
	Retry      RetryConfig
	Log        LogConfig
	OTel       OTelConfig
	AMQP       AMQPConfig
	Bootstrap  BootstrapConfig
}

type HTTPConfig struct {
	Addr string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type DatabaseConfig struct {
	Engine         string
	PostgresDriver string
	PostgresDSN    string
	SQLitePath     string
}

type EventStoreConfig struct {
	Table string
}

type BorrowingConfig struct {
	StrictReturn bool
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type OTelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// AMQPConfig configures the publishing of appended domain events. An empty URL disables it.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// BootstrapConfig describes the librarian account the bootstrap command seeds.
type BootstrapConfig struct {
	FullName string
	Email    string
	Password string
}

// NewViper returns a viper instance with defaults and LIBRARY_ prefixed environment variables.
// A non-empty configFile is read as YAML.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return v, nil
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 6*time.Hour)
	v.SetDefault("database.engine", EngineSQLite)
	v.SetDefault("database.postgres.driver", DriverPGXPool)
	v.SetDefault("database.postgres.dsn", "")
	v.SetDefault("database.sqlite.path", "data/library.db")
	v.SetDefault("eventstore.table", "events")
	v.SetDefault("borrowing.strict_return", false)
	v.SetDefault("retry.max_attempts", 6)
	v.SetDefault("retry.base_delay", 10*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "localhost:4317")
	v.SetDefault("otel.service_name", "library-circulation")
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "library.events")
	v.SetDefault("bootstrap.name", "Head Librarian")
	v.SetDefault("bootstrap.email", "librarian@library.local")
	v.SetDefault("bootstrap.password", "")
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{Addr: v.GetString("http.addr")},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		Database: DatabaseConfig{
			Engine:         strings.ToLower(v.GetString("database.engine")),
			PostgresDriver: strings.ToLower(v.GetString("database.postgres.driver")),
			PostgresDSN:    v.GetString("database.postgres.dsn"),
			SQLitePath:     v.GetString("database.sqlite.path"),
		},
		EventStore: EventStoreConfig{Table: v.GetString("eventstore.table")},
		Borrowing:  BorrowingConfig{StrictReturn: v.GetBool("borrowing.strict_return")},
		Retry: RetryConfig{
			MaxAttempts: v.GetInt("retry.max_attempts"),
			BaseDelay:   v.GetDuration("retry.base_delay"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		OTel: OTelConfig{
			Enabled:     v.GetBool("otel.enabled"),
			Endpoint:    v.GetString("otel.endpoint"),
			ServiceName: v.GetString("otel.service_name"),
		},
		AMQP: AMQPConfig{
			URL:      v.GetString("amqp.url"),
			Exchange: v.GetString("amqp.exchange"),
		},
		Bootstrap: BootstrapConfig{
			FullName: v.GetString("bootstrap.name"),
			Email:    v.GetString("bootstrap.email"),
			Password: v.GetString("bootstrap.password"),
		},
	}

	if err := cfg.Database.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the engine and driver selection.
func (c DatabaseConfig) Validate() error {
	switch c.Engine {
	case EngineMemory, EngineSQLite:
		return nil

	case EnginePostgres:
		switch c.PostgresDriver {
		case DriverPGXPool, DriverSQLDB, DriverSQLX:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownPostgresDriver, c.PostgresDriver)
		}

		if c.PostgresDSN == "" {
			return ErrMissingPostgresDSN
		}

		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, c.Engine)
	}
}

// RequireJWTSecret fails if no signing secret is configured. Only serving needs one.
func (c AuthConfig) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}

	return nil
}
