package store

import (
	"context"
	"fmt"
	"sync"

	"cartrade-engine/internal/domain"
	"cartrade-engine/internal/jobs"
)

// Memory is an offline Store: dedupe by url in a map, jobs in a slice.
// It backs tests and dry runs against live pages without a database.
type Memory struct {
	mu   sync.Mutex
	ads  map[string]domain.Ad
	jobs []jobs.Job

	// FailURLs forces the generic-failure outcome for specific ad urls.
	FailURLs map[string]bool
}

func NewMemory() *Memory {
	return &Memory{ads: make(map[string]domain.Ad)}
}

func (m *Memory) InsertAd(_ context.Context, ad domain.Ad, _ int64) (jobs.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailURLs[ad.URL] {
		return jobs.Failed, fmt.Errorf("insert ad %s: forced failure", ad.URL)
	}
	if _, exists := m.ads[ad.URL]; exists {
		return jobs.Duplicate, nil
	}
	m.ads[ad.URL] = ad
	return jobs.Created, nil
}

func (m *Memory) CreateJob(_ context.Context, j jobs.Job) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, j)
	return int64(len(m.jobs)), nil
}

func (m *Memory) UpdateJob(_ context.Context, id int64, j jobs.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 || id > int64(len(m.jobs)) {
		return fmt.Errorf("update job %d: not found", id)
	}
	m.jobs[id-1] = j
	return nil
}

func (m *Memory) Close() error { return nil }

// Ads returns the inserted ads keyed by url.
func (m *Memory) Ads() map[string]domain.Ad {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]domain.Ad, len(m.ads))
	for k, v := range m.ads {
		out[k] = v
	}
	return out
}

// Job returns the stored job row for id.
func (m *Memory) Job(id int64) (jobs.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 || id > int64(len(m.jobs)) {
		return jobs.Job{}, false
	}
	return m.jobs[id-1], true
}
