package jobs

import "sync/atomic"

// Outcome is what persisting a single ad produced. Every discovered ad
// contributes to exactly one bucket.
type Outcome int

const (
	Created Outcome = iota
	Duplicate
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Duplicate:
		return "duplicate"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Aggregator accumulates ad outcomes for one run. It is shared by an
// unbounded number of extraction goroutines, so the counters are atomics;
// a plain shared struct would only be safe on a single-threaded scheduler.
type Aggregator struct {
	base Job

	created    atomic.Int64
	duplicates atomic.Int64
	failed     atomic.Int64
}

func NewAggregator(base Job) *Aggregator {
	return &Aggregator{base: base}
}

// Record increments exactly one counter.
func (a *Aggregator) Record(o Outcome) {
	switch o {
	case Created:
		a.created.Add(1)
	case Duplicate:
		a.duplicates.Add(1)
	case Failed:
		a.failed.Add(1)
	}
}

// Total is the number of outcomes recorded so far.
func (a *Aggregator) Total() int {
	return int(a.created.Load() + a.duplicates.Load() + a.failed.Load())
}

// Snapshot returns the Job with the current counter state. Call it with
// completed=true only after the crawl's full join.
func (a *Aggregator) Snapshot(completed bool) Job {
	j := a.base
	j.TotalAdsCreated = int(a.created.Load())
	j.Duplicates = int(a.duplicates.Load())
	j.AdsFailedToCreate = int(a.failed.Load())
	j.Completed = completed
	return j
}
