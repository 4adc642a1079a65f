package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for database/sql and sqlx

	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-circulation/eventstore/sqliteengine"
)

const (
	pgxMaxConnections    = int32(8)
	pgxMinConnections    = int32(2)
	pgxMaxConnLifetime   = time.Hour
	pgxMaxConnIdleTime   = time.Minute * 5
	pgxHealthCheckPeriod = time.Minute
	pgxConnectTimeout    = time.Second * 5

	sqlMaxOpenConnections = 50
	sqlMaxIdleConnections = 10
	sqlMaxConnLifetime    = time.Hour
	sqlMaxConnIdleTime    = time.Minute * 5
)

// EventStore is an opened event store together with its lifecycle functions.
type EventStore struct {
	shell.EventStore

	createSchema func(ctx context.Context) error
	close        func() error
}

// CreateSchema creates the events table if it does not exist. It is a no-op for the memory engine.
func (es EventStore) CreateSchema(ctx context.Context) error {
	if es.createSchema == nil {
		return nil
	}

	return es.createSchema(ctx)
}

// Close releases the underlying database connection.
func (es EventStore) Close() error {
	if es.close == nil {
		return nil
	}

	return es.close()
}

// OpenEventStore opens the engine selected by cfg.Database.
func OpenEventStore(ctx context.Context, cfg Config, observers Observers) (EventStore, error) {
	switch cfg.Database.Engine {
	case EngineMemory:
		return openMemory(observers)
	case EngineSQLite:
		return openSQLite(cfg, observers)
	case EnginePostgres:
		return openPostgres(ctx, cfg, observers)
	default:
		return EventStore{}, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Database.Engine)
	}
}

func openMemory(observers Observers) (EventStore, error) {
	var options []memengine.Option
	if observers.Logger != nil {
		options = append(options, memengine.WithLogger(observers.Logger))
	}

	es, err := memengine.New(options...)
	if err != nil {
		return EventStore{}, err
	}

	return EventStore{EventStore: es}, nil
}

func openSQLite(cfg Config, observers Observers) (EventStore, error) {
	db, err := sqliteengine.Open(cfg.Database.SQLitePath)
	if err != nil {
		return EventStore{}, err
	}

	options := []sqliteengine.Option{sqliteengine.WithTableName(cfg.EventStore.Table)}
	if observers.Logger != nil {
		options = append(options, sqliteengine.WithLogger(observers.Logger))
	}
	if observers.ContextualLogger != nil {
		options = append(options, sqliteengine.WithContextualLogger(observers.ContextualLogger))
	}
	if observers.Metrics != nil {
		options = append(options, sqliteengine.WithMetrics(observers.Metrics))
	}
	if observers.Tracing != nil {
		options = append(options, sqliteengine.WithTracing(observers.Tracing))
	}

	es, err := sqliteengine.NewEventStoreFromSQLDB(db, options...)
	if err != nil {
		return EventStore{}, errors.Join(err, db.Close())
	}

	return EventStore{EventStore: es, createSchema: es.CreateSchema, close: db.Close}, nil
}

func openPostgres(ctx context.Context, cfg Config, observers Observers) (EventStore, error) {
	options := postgresOptions(cfg, observers)

	switch cfg.Database.PostgresDriver {
	case DriverPGXPool:
		pool, err := OpenPGXPool(ctx, cfg.Database.PostgresDSN)
		if err != nil {
			return EventStore{}, err
		}

		es, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return EventStore{}, err
		}

		return EventStore{
			EventStore:   es,
			createSchema: es.CreateSchema,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case DriverSQLDB:
		db, err := OpenSQLDB(ctx, cfg.Database.PostgresDSN)
		if err != nil {
			return EventStore{}, err
		}

		es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			return EventStore{}, errors.Join(err, db.Close())
		}

		return EventStore{EventStore: es, createSchema: es.CreateSchema, close: db.Close}, nil

	case DriverSQLX:
		db, err := OpenSQLX(ctx, cfg.Database.PostgresDSN)
		if err != nil {
			return EventStore{}, err
		}

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			return EventStore{}, errors.Join(err, db.Close())
		}

		return EventStore{EventStore: es, createSchema: es.CreateSchema, close: db.Close}, nil

	default:
		return EventStore{}, fmt.Errorf("%w: %q", ErrUnknownPostgresDriver, cfg.Database.PostgresDriver)
	}
}

func postgresOptions(cfg Config, observers Observers) []postgresengine.Option {
	options := []postgresengine.Option{postgresengine.WithTableName(cfg.EventStore.Table)}
	if observers.Logger != nil {
		options = append(options, postgresengine.WithLogger(observers.Logger))
	}
	if observers.ContextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(observers.ContextualLogger))
	}
	if observers.Metrics != nil {
		options = append(options, postgresengine.WithMetrics(observers.Metrics))
	}
	if observers.Tracing != nil {
		options = append(options, postgresengine.WithTracing(observers.Tracing))
	}

	return options
}

// OpenPGXPool creates a pgx connection pool for dsn and checks that it is reachable.
func OpenPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	dbConfig.MaxConns = pgxMaxConnections
	dbConfig.MinConns = pgxMinConnections
	dbConfig.MaxConnLifetime = pgxMaxConnLifetime
	dbConfig.MaxConnIdleTime = pgxMaxConnIdleTime
	dbConfig.HealthCheckPeriod = pgxHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = pgxConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// OpenSQLDB opens a database/sql connection pool using the lib/pq driver.
func OpenSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	configurePool(db)

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping postgres: %w", err), db.Close())
	}

	return db, nil
}

// OpenSQLX opens a sqlx connection pool using the lib/pq driver.
func OpenSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	configurePool(db.DB)

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping postgres: %w", err), db.Close())
	}

	return db, nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(sqlMaxOpenConnections)
	db.SetMaxIdleConns(sqlMaxIdleConnections)
	db.SetConnMaxLifetime(sqlMaxConnLifetime)
	db.SetConnMaxIdleTime(sqlMaxConnIdleTime)
}
