package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const createSavesTable = `CREATE TABLE IF NOT EXISTS saves (
	slot       TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLStore keeps saves in a single key/value table on SQLite or Postgres.
type SQLStore struct {
	dialect Dialect
	db      *sql.DB
}

// OpenSQL connects with the driver for dialect, pings, and creates the
// saves table. For SQLite dsn is a file path.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLStore, error) {
	dsn = strings.TrimSpace(dsn)
	var driverName string
	switch dialect {
	case DialectSQLite:
		driverName = "sqlite"
		if dsn == "" {
			return nil, errors.New("sqlite store requires a path")
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	case DialectPostgres:
		driverName = "pgx"
		if dsn == "" {
			return nil, errors.New("postgres store requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}
	if _, err := db.ExecContext(ctx, createSavesTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create saves table: %w", err)
	}
	return &SQLStore{dialect: dialect, db: db}, nil
}

func (s *SQLStore) bind(pos int) string {
	if s.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}

func (s *SQLStore) Save(ctx context.Context, slot string, data []byte) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	q := fmt.Sprintf(
		`INSERT INTO saves (slot, data, updated_at) VALUES (%s, %s, %s)
		ON CONFLICT (slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.bind(1), s.bind(2), s.bind(3),
	)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, q, slot, string(data), now); err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, slot string) ([]byte, error) {
	var data string
	q := "SELECT data FROM saves WHERE slot = " + s.bind(1)
	err := s.db.QueryRowContext(ctx, q, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", slot, err)
	}
	return []byte(data), nil
}

func (s *SQLStore) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saves WHERE slot = "+s.bind(1), slot)
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT slot FROM saves ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

func (s *SQLStore) Close() error { return s.db.Close() }
