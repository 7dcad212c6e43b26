// Package jobs tracks one crawl run: its metadata row and the
// created/duplicate/failed counters every extraction task reports into.
package jobs

import "time"

const AutomaticWorker = "automatic worker"

// Job is one crawl run's metadata and outcome counters.
type Job struct {
	RanAt             time.Time
	CreatedAt         time.Time
	Manual            bool
	TriggeredBy       string
	Duplicates        int
	AdsFailedToCreate int
	TotalAdsCreated   int
	Completed         bool
}

// JobResponse is a Job after the store assigned it an id.
type JobResponse struct {
	Job
	ID int64
}

// New returns a zero-counter Job stamped with the current time.
// Timestamps are per call, not shared across a run's ads.
func New() Job {
	now := time.Now().UTC()
	return Job{
		RanAt:       now,
		CreatedAt:   now,
		TriggeredBy: AutomaticWorker,
	}
}
