package postgresengine

import (
	"context"
	"fmt"
)

const schemaTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s (
	sequence_number BIGSERIAL PRIMARY KEY,
	occurred_at TIMESTAMPTZ NOT NULL,
	event_type TEXT NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS %[1]s_event_type_idx ON %[1]s (event_type);
CREATE INDEX IF NOT EXISTS %[1]s_payload_gin_idx ON %[1]s USING gin (payload jsonb_path_ops);
`

// CreateSchema creates the events table and its indexes if they don't exist yet.
func (es EventStore) CreateSchema(ctx context.Context) error {
	return es.engine.Exec(ctx, fmt.Sprintf(schemaTemplate, es.eventTableName))
}
