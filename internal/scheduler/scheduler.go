// Package scheduler runs the crawl on a cron schedule in daemon mode.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"cartrade-engine/internal/jobs"
)

// RunFunc executes one full crawl and returns the finalized job row. manual
// marks runs a person requested over the API rather than the cron tick.
type RunFunc func(ctx context.Context, manual bool) (jobs.JobResponse, error)

// RunStatus is a snapshot of the most recent run.
type RunStatus struct {
	LastRunAt      string
	LastOkAt       string
	LastError      string
	LastCreated    int
	LastDuplicates int
	LastFailed     int
	Running        bool
}

// Scheduler wraps robfig/cron around one recurring crawl.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	run     RunFunc
	status  atomic.Value // RunStatus
	running atomic.Bool
	baseCtx context.Context
}

func New(spec string, run RunFunc) *Scheduler {
	s := &Scheduler{
		cron: cron.New(),
		spec: spec,
		run:  run,
	}
	s.status.Store(RunStatus{})
	return s
}

// Start registers the job and starts the cron loop, plus one immediate run
// so a fresh daemon doesn't sit idle until the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	s.baseCtx = ctx
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx, false)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.spec, err)
	}

	s.cron.Start()
	log.Printf("[scheduler] started, spec=%s", s.spec)

	go s.runOnce(ctx, false)
	return nil
}

// Trigger starts a manual run now unless one is already in flight. It runs
// on the scheduler's own context, not the caller's, so the crawl survives
// the request that asked for it.
func (s *Scheduler) Trigger() bool {
	if s.running.Load() {
		return false
	}
	go s.runOnce(s.baseCtx, true)
	return true
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] stopped")
}

// Status returns the latest run snapshot.
func (s *Scheduler) Status() RunStatus {
	return s.status.Load().(RunStatus)
}

func (s *Scheduler) runOnce(ctx context.Context, manual bool) {
	// Runs never overlap: a tick that lands mid-run is skipped, not queued.
	if !s.running.CompareAndSwap(false, true) {
		log.Println("[scheduler] run already in flight, skipping")
		return
	}
	defer s.running.Store(false)

	st := s.Status()
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	s.status.Store(st)

	resp, err := s.run(ctx, manual)

	st = s.Status()
	st.Running = false
	st.LastCreated = resp.TotalAdsCreated
	st.LastDuplicates = resp.Duplicates
	st.LastFailed = resp.AdsFailedToCreate
	if err != nil {
		st.LastError = err.Error()
		log.Printf("[scheduler] run error: %v", err)
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		log.Printf("[scheduler] run ok: job=%d created=%d duplicates=%d failed=%d",
			resp.ID, resp.TotalAdsCreated, resp.Duplicates, resp.AdsFailedToCreate)
	}
	s.status.Store(st)
}
