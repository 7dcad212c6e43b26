package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"cartrade-engine/internal/domain"
	"cartrade-engine/internal/jobs"
)

// SQLite is the local/offline backend: one engine process, one writer.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite wants a single writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ran_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  manual INTEGER NOT NULL DEFAULT 0,
  triggered_by TEXT NOT NULL DEFAULT '',
  duplicates INTEGER NOT NULL DEFAULT 0,
  ads_failed_to_create INTEGER NOT NULL DEFAULT 0,
  total_ads_created INTEGER NOT NULL DEFAULT 0,
  completed INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS ads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at TEXT NOT NULL,
  fob INTEGER,
  cif INTEGER,
  currency TEXT NOT NULL DEFAULT 'USD',
  make TEXT NOT NULL DEFAULT '',
  model TEXT NOT NULL DEFAULT '',
  registered TEXT,
  mileage INTEGER,
  cc INTEGER,
  transmission TEXT NOT NULL DEFAULT '',
  steering TEXT NOT NULL DEFAULT '',
  fuel TEXT NOT NULL DEFAULT '',
  doors INTEGER,
  url TEXT NOT NULL UNIQUE,
  from_job INTEGER
);`)
	if err != nil {
		return fmt.Errorf("sqlite migrate: %w", err)
	}
	return nil
}

func (s *SQLite) InsertAd(ctx context.Context, ad domain.Ad, jobID int64) (jobs.Outcome, error) {
	var registered any
	if ad.Info.Registration != nil {
		registered = ad.Info.Registration.Format("2006-01-02")
	}

	res, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO ads (created_at, fob, cif, currency, make, model, registered,
                           mileage, cc, transmission, steering, fuel, doors, url, from_job)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		ad.CreatedAt.Format(time.RFC3339),
		optMoney(ad.Price.FOB),
		optMoney(ad.Price.CIF),
		ad.Price.Currency,
		ad.Info.Make,
		ad.Info.Model,
		registered,
		opt(ad.Info.Mileage),
		opt(ad.Info.EngineCC),
		ad.Info.Transmission,
		ad.Info.Steering,
		ad.Info.Fuel,
		opt(ad.Info.Doors),
		ad.URL,
		jobID,
	)
	if err != nil {
		return jobs.Failed, fmt.Errorf("insert ad %s: %w", ad.URL, err)
	}

	// INSERT OR IGNORE swallows the unique-constraint hit on url. The rows
	// affected by this statement tell the two cases apart; a follow-up
	// SELECT changes() would race other goroutines' inserts on the shared
	// connection.
	n, err := res.RowsAffected()
	if err != nil {
		return jobs.Failed, fmt.Errorf("insert ad %s: rows affected: %w", ad.URL, err)
	}
	if n == 0 {
		return jobs.Duplicate, nil
	}
	return jobs.Created, nil
}

func (s *SQLite) CreateJob(ctx context.Context, j jobs.Job) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO jobs (ran_at, created_at, manual, triggered_by,
                  duplicates, ads_failed_to_create, total_ads_created, completed)
VALUES (?,?,?,?,?,?,?,?);`,
		j.RanAt.Format(time.RFC3339), j.CreatedAt.Format(time.RFC3339),
		j.Manual, j.TriggeredBy,
		j.Duplicates, j.AdsFailedToCreate, j.TotalAdsCreated, j.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("create job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create job: last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLite) UpdateJob(ctx context.Context, id int64, j jobs.Job) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE jobs
SET duplicates = ?, ads_failed_to_create = ?, total_ads_created = ?, completed = ?
WHERE id = ?;`,
		j.Duplicates, j.AdsFailedToCreate, j.TotalAdsCreated, j.Completed, id,
	)
	if err != nil {
		return fmt.Errorf("update job %d: %w", id, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
