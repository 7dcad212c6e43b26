package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cartrade-engine/internal/domain"
	"cartrade-engine/internal/jobs"
)

// uniqueViolation is the SQLSTATE the backend reports when the ads.url
// unique constraint rejects an insert.
const uniqueViolation = "23505"

// Postgres persists to the hosted database the production crawler feeds.
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
  id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  ran_at TIMESTAMPTZ NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  manual BOOLEAN NOT NULL DEFAULT FALSE,
  triggered_by TEXT NOT NULL DEFAULT '',
  duplicates INTEGER NOT NULL DEFAULT 0,
  ads_failed_to_create INTEGER NOT NULL DEFAULT 0,
  total_ads_created INTEGER NOT NULL DEFAULT 0,
  completed BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS ads (
  id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  created_at TIMESTAMPTZ NOT NULL,
  fob BIGINT,
  cif BIGINT,
  currency TEXT NOT NULL DEFAULT 'USD',
  make TEXT NOT NULL DEFAULT '',
  model TEXT NOT NULL DEFAULT '',
  registered DATE,
  mileage INTEGER,
  cc INTEGER,
  transmission TEXT NOT NULL DEFAULT '',
  steering TEXT NOT NULL DEFAULT '',
  fuel TEXT NOT NULL DEFAULT '',
  doors INTEGER,
  url TEXT NOT NULL UNIQUE,
  from_job BIGINT REFERENCES jobs(id)
);`)
	if err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

func (p *Postgres) InsertAd(ctx context.Context, ad domain.Ad, jobID int64) (jobs.Outcome, error) {
	var registered any
	if ad.Info.Registration != nil {
		registered = *ad.Info.Registration
	}

	_, err := p.pool.Exec(ctx, `
INSERT INTO ads (created_at, fob, cif, currency, make, model, registered,
                 mileage, cc, transmission, steering, fuel, doors, url, from_job)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		ad.CreatedAt,
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
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return jobs.Duplicate, nil
		}
		return jobs.Failed, fmt.Errorf("insert ad %s: %w", ad.URL, err)
	}
	return jobs.Created, nil
}

func (p *Postgres) CreateJob(ctx context.Context, j jobs.Job) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx, `
INSERT INTO jobs (ran_at, created_at, manual, triggered_by,
                  duplicates, ads_failed_to_create, total_ads_created, completed)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id`,
		j.RanAt, j.CreatedAt, j.Manual, j.TriggeredBy,
		j.Duplicates, j.AdsFailedToCreate, j.TotalAdsCreated, j.Completed,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create job: %w", err)
	}
	return id, nil
}

func (p *Postgres) UpdateJob(ctx context.Context, id int64, j jobs.Job) error {
	_, err := p.pool.Exec(ctx, `
UPDATE jobs
SET duplicates = $1, ads_failed_to_create = $2, total_ads_created = $3, completed = $4
WHERE id = $5`,
		j.Duplicates, j.AdsFailedToCreate, j.TotalAdsCreated, j.Completed, id,
	)
	if err != nil {
		return fmt.Errorf("update job %d: %w", id, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
