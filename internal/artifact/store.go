package artifact

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS artifacts (
	module     TEXT PRIMARY KEY,
	unit_id    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	data       BLOB NOT NULL
);
`

// Store keeps encoded artifacts in a SQLite database, one row per
// module. Re-storing a module replaces its previous artifact.
type Store struct {
	db *sql.DB
}

// OpenStore creates or opens the artifact database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}
	// SQLite allows one writer; keep the pool at a single connection
	// to avoid busy errors under concurrent module compilations.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply artifact schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores an artifact, replacing any previous artifact for the same
// module.
func (s *Store) Put(ctx context.Context, a *Artifact) error {
	data, err := a.Encode()
	if err != nil {
		return fmt.Errorf("encode artifact for %s: %w", a.Module, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO artifacts (module, unit_id, created_at, data)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(module) DO UPDATE SET
		   unit_id = excluded.unit_id,
		   created_at = excluded.created_at,
		   data = excluded.data`,
		a.Module, a.UnitID, a.CreatedAt.Format(time.RFC3339), data)
	if err != nil {
		return fmt.Errorf("store artifact for %s: %w", a.Module, err)
	}
	return nil
}

// Get loads a module's artifact. A missing module reports ok=false
// with a nil error.
func (s *Store) Get(ctx context.Context, module string) (*Artifact, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM artifacts WHERE module = ?`, module).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load artifact for %s: %w", module, err)
	}
	a, err := Decode(data)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// List returns the stored module names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT module FROM artifacts ORDER BY module`)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var modules []string
	for rows.Next() {
		var module string
		if err := rows.Scan(&module); err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	return modules, rows.Err()
}
