// Package store persists ads and job rows. The crawl depends only on the
// three-outcome insert contract here, not on any particular backend.
package store

import (
	"context"

	"cartrade-engine/internal/domain"
	"cartrade-engine/internal/jobs"
)

// Store is the persistence adapter for one crawl run.
//
// InsertAd reports jobs.Duplicate when the ads table's unique constraint on
// url rejects the row, and jobs.Failed (with the cause) for any other error.
// The returned error is diagnostic only; the run never aborts on it.
type Store interface {
	InsertAd(ctx context.Context, ad domain.Ad, jobID int64) (jobs.Outcome, error)
	CreateJob(ctx context.Context, j jobs.Job) (int64, error)
	UpdateJob(ctx context.Context, id int64, j jobs.Job) error
	Close() error
}

// opt maps an optional field to a driver value: nil stays NULL.
func opt[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// optMoney truncates an optional decimal to a whole amount, the unit the
// ads table stores prices in.
func optMoney(p *float64) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}
