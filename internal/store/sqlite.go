package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	scope       TEXT NOT NULL,
	county      TEXT NOT NULL DEFAULT '',
	radius      INTEGER NOT NULL,
	providers   INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS run_providers (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	name     TEXT NOT NULL,
	address  TEXT NOT NULL,
	phone    TEXT NOT NULL DEFAULT '',
	type     TEXT NOT NULL DEFAULT '',
	lat      REAL NOT NULL DEFAULT 0,
	lng      REAL NOT NULL DEFAULT 0,
	distance REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_scope ON runs(scope);
CREATE INDEX IF NOT EXISTS idx_runs_county ON runs(county);
CREATE INDEX IF NOT EXISTS idx_run_providers_run_id ON run_providers(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, scope, county string, radius int) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Scope:     scope,
		County:    county,
		Radius:    radius,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, scope, county, radius, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Scope, run.County, run.Radius, run.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, providerCount int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET providers = ?, finished_at = ? WHERE id = ?`,
		providerCount, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	return checkRowsAffected(res, runID)
}

func (s *SQLiteStore) SaveProviders(ctx context.Context, runID string, providers []locator.Provider) error {
	if len(providers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_providers (run_id, name, address, phone, type, lat, lng, distance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, p := range providers {
		if _, err := stmt.ExecContext(ctx, runID, p.Name, p.Address, p.Phone, p.Type, p.Lat, p.Lng, p.Distance); err != nil {
			return eris.Wrapf(err, "sqlite: insert provider %q", p.Name)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit providers")
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scope, county, radius, providers, started_at, finished_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []Run
	for rows.Next() {
		var r Run
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Scope, &r.County, &r.Radius, &r.ProviderCount, &r.StartedAt, &finished); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		r.FinishedAt = finished.Time
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	var r Run
	var finished sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT id, scope, county, radius, providers, started_at, finished_at
		 FROM runs WHERE id = ?`, runID,
	).Scan(&r.ID, &r.Scope, &r.County, &r.Radius, &r.ProviderCount, &r.StartedAt, &finished)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: run %s not found", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	r.FinishedAt = finished.Time
	return &r, nil
}

func (s *SQLiteStore) RunProviders(ctx context.Context, runID string) ([]locator.Provider, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, address, phone, type, lat, lng, distance
		 FROM run_providers WHERE run_id = ? ORDER BY name`, runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: run providers %s", runID)
	}
	defer rows.Close() //nolint:errcheck

	var providers []locator.Provider
	for rows.Next() {
		var p locator.Provider
		if err := rows.Scan(&p.Name, &p.Address, &p.Phone, &p.Type, &p.Lat, &p.Lng, &p.Distance); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan provider")
		}
		providers = append(providers, p)
	}
	return providers, eris.Wrap(rows.Err(), "sqlite: run providers iterate")
}

func checkRowsAffected(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}
