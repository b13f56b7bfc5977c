package cursor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"pagefeed/internal/domain"
)

const pingTimeout = 5 * time.Second

// schema creates the cursor table. Applied on store construction; the
// statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS source_cursors (
	source_id   TEXT PRIMARY KEY,
	last_link   TEXT NOT NULL,
	last_run_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore persists cursors in a Postgres table, one row per
// source. Use it when several deployments share resumption state.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open database handle and ensures the
// cursor table exists.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure cursor table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// OpenPostgresStore connects to Postgres with the given DSN and builds
// a store over the connection.
func OpenPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return NewPostgresStore(db)
}

// Load reads the cursor row for sourceID; no row is the cold-start case
// and returns (nil, nil).
func (s *PostgresStore) Load(ctx context.Context, sourceID string) (*domain.Cursor, error) {
	query := `SELECT last_link, last_run_at FROM source_cursors WHERE source_id = $1`

	var c domain.Cursor
	if err := s.db.GetContext(ctx, &c, query, sourceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select cursor for %s: %w", sourceID, err)
	}
	return &c, nil
}

// Save upserts the cursor row for sourceID.
func (s *PostgresStore) Save(ctx context.Context, sourceID string, c domain.Cursor) error {
	query := `
		INSERT INTO source_cursors (source_id, last_link, last_run_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (source_id)
		DO UPDATE SET last_link = EXCLUDED.last_link, last_run_at = EXCLUDED.last_run_at
	`

	if _, err := s.db.ExecContext(ctx, query, sourceID, c.LastLink, c.LastRunAt); err != nil {
		return fmt.Errorf("upsert cursor for %s: %w", sourceID, err)
	}
	return nil
}

// Close releases the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
