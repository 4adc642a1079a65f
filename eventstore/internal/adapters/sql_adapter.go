package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DBAdapter for sql.DB, used with lib/pq and go-sqlite3.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a new SQL adapter.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return s.db.ExecContext(ctx, query)
}

func (s *SQLAdapter) ExecInTx(ctx context.Context, statements ...string) (DBResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return execAndCommit(ctx, tx, statements)
}

// execAndCommit rolls back unless every statement and the commit succeed.
func execAndCommit(ctx context.Context, tx *sql.Tx, statements []string) (DBResult, error) {
	defer func() { _ = tx.Rollback() }()

	var result DBResult
	for _, statement := range statements {
		execResult, err := tx.ExecContext(ctx, statement)
		if err != nil {
			return nil, err
		}

		result = execResult
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

// stdRows wraps sql.Rows so Close also reports iteration errors.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Close() error {
	if err := s.rows.Err(); err != nil {
		_ = s.rows.Close()
		return err
	}

	return s.rows.Close()
}
