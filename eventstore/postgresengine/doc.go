// Package postgresengine provides a PostgreSQL implementation of the eventstore Query/Append contract.
//
// It accepts a pgxpool.Pool, a sql.DB (lib/pq) or a sqlx.DB. Payload predicates are
// rendered as JSONB containment, so the GIN index created by CreateSchema serves them.
//
// Usage examples:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("library_events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = store.CreateSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
