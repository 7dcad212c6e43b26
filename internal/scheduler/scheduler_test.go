package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartrade-engine/internal/jobs"
)

func TestRunOnceUpdatesStatus(t *testing.T) {
	var gotManual bool
	s := New("@every 1h", func(_ context.Context, manual bool) (jobs.JobResponse, error) {
		gotManual = manual
		var resp jobs.JobResponse
		resp.TotalAdsCreated = 3
		resp.Duplicates = 1
		return resp, nil
	})

	s.runOnce(context.Background(), false)

	assert.False(t, gotManual)
	st := s.Status()
	assert.False(t, st.Running)
	assert.Equal(t, 3, st.LastCreated)
	assert.Equal(t, 1, st.LastDuplicates)
	assert.Empty(t, st.LastError)
	assert.NotEmpty(t, st.LastRunAt)
	assert.NotEmpty(t, st.LastOkAt)
}

func TestRunOnceRecordsError(t *testing.T) {
	s := New("@every 1h", func(context.Context, bool) (jobs.JobResponse, error) {
		return jobs.JobResponse{}, errors.New("listing fetch blew up")
	})

	s.runOnce(context.Background(), true)

	st := s.Status()
	assert.False(t, st.Running)
	assert.Equal(t, "listing fetch blew up", st.LastError)
	assert.Empty(t, st.LastOkAt)
}

func TestTriggerRejectsOverlap(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	s := New("@every 1h", func(context.Context, bool) (jobs.JobResponse, error) {
		entered <- struct{}{}
		<-release
		return jobs.JobResponse{}, nil
	})
	s.baseCtx = context.Background()

	go s.runOnce(s.baseCtx, false)
	<-entered

	assert.False(t, s.Trigger(), "trigger must refuse while a run is in flight")

	close(release)
}

func TestTriggerRunsManually(t *testing.T) {
	done := make(chan bool, 1)
	s := New("@every 1h", func(_ context.Context, manual bool) (jobs.JobResponse, error) {
		done <- manual
		return jobs.JobResponse{}, nil
	})
	s.baseCtx = context.Background()

	require.True(t, s.Trigger())
	assert.True(t, <-done)
}
