package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

func Test_Load_Defaults(t *testing.T) {
	// arrange
	v, err := config.NewViper("")
	require.NoError(t, err)

	// act
	cfg, err := config.Load(v)

	// assert
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 6*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, config.EngineSQLite, cfg.Database.Engine)
	assert.Equal(t, config.DriverPGXPool, cfg.Database.PostgresDriver)
	assert.Equal(t, "events", cfg.EventStore.Table)
	assert.False(t, cfg.Borrowing.StrictReturn)
	assert.Equal(t, 6, cfg.Retry.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Retry.BaseDelay)
	assert.False(t, cfg.OTel.Enabled)
	assert.Empty(t, cfg.AMQP.URL)
}

func Test_Load_FromYAMLFile(t *testing.T) {
	// arrange
	path := filepath.Join(t.TempDir(), "library.yaml")
	content := []byte(`
http:
  addr: ":9090"
database:
  engine: memory
borrowing:
  strict_return: true
retry:
  max_attempts: 3
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	v, err := config.NewViper(path)
	require.NoError(t, err)

	// act
	cfg, err := config.Load(v)

	// assert
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, config.EngineMemory, cfg.Database.Engine)
	assert.True(t, cfg.Borrowing.StrictReturn)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func Test_Load_EnvironmentOverridesDefaults(t *testing.T) {
	// arrange
	t.Setenv("LIBRARY_DATABASE_ENGINE", "memory")
	t.Setenv("LIBRARY_AUTH_JWT_SECRET", "s3cr3t")

	v, err := config.NewViper("")
	require.NoError(t, err)

	// act
	cfg, err := config.Load(v)

	// assert
	require.NoError(t, err)
	assert.Equal(t, config.EngineMemory, cfg.Database.Engine)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
	assert.NoError(t, cfg.Auth.RequireJWTSecret())
}

func Test_Load_MissingConfigFile(t *testing.T) {
	// act
	_, err := config.NewViper(filepath.Join(t.TempDir(), "missing.yaml"))

	// assert
	assert.Error(t, err)
}

func Test_DatabaseConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		dbConfig    config.DatabaseConfig
		expectedErr error
	}{
		{
			description: "unknown engine",
			dbConfig:    config.DatabaseConfig{Engine: "oracle"},
			expectedErr: config.ErrUnknownEngine,
		},
		{
			description: "unknown postgres driver",
			dbConfig:    config.DatabaseConfig{Engine: config.EnginePostgres, PostgresDriver: "gorm", PostgresDSN: "postgres://x"},
			expectedErr: config.ErrUnknownPostgresDriver,
		},
		{
			description: "postgres without dsn",
			dbConfig:    config.DatabaseConfig{Engine: config.EnginePostgres, PostgresDriver: config.DriverSQLX},
			expectedErr: config.ErrMissingPostgresDSN,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			err := tc.dbConfig.Validate()

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_AuthConfig_RequireJWTSecret(t *testing.T) {
	assert.ErrorIs(t, config.AuthConfig{}.RequireJWTSecret(), config.ErrMissingJWTSecret)
}

func Test_OpenEventStore_Memory(t *testing.T) {
	// arrange
	ctx := context.Background()
	cfg := config.Config{Database: config.DatabaseConfig{Engine: config.EngineMemory}}

	// act
	es, err := config.OpenEventStore(ctx, cfg, config.Observers{})

	// assert
	require.NoError(t, err)
	require.NoError(t, es.CreateSchema(ctx))

	events, maxSeq, err := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(0), maxSeq)
	assert.NoError(t, es.Close())
}

func Test_OpenEventStore_SQLite(t *testing.T) {
	// arrange
	ctx := context.Background()
	cfg := config.Config{
		Database:   config.DatabaseConfig{Engine: config.EngineSQLite, SQLitePath: filepath.Join(t.TempDir(), "library.db")},
		EventStore: config.EventStoreConfig{Table: "events"},
	}

	// act
	es, err := config.OpenEventStore(ctx, cfg, config.Observers{})

	// assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = es.Close() })
	require.NoError(t, es.CreateSchema(ctx))

	filter := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("SomethingHappened").Finalize()
	event, err := eventstore.BuildStorableEvent("SomethingHappened", time.Now(), []byte(`{"ID":"1"}`), []byte(`{}`))
	require.NoError(t, err)
	require.NoError(t, es.Append(ctx, filter, 0, event))

	events, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(1), maxSeq)
}

func Test_NewLogger(t *testing.T) {
	// arrange
	var buf bytes.Buffer

	// act
	logger := config.NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	// assert
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
