package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConnReset(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"econnreset", syscall.ECONNRESET, true},
		{"wrapped econnreset", fmt.Errorf("pair audi page 3: %w", syscall.ECONNRESET), true},
		{"unexpected eof", io.ErrUnexpectedEOF, true},
		{"message match", errors.New("read tcp 10.0.0.1:443: connection reset by peer"), true},
		{"idle close message", errors.New("http: server closed idle connection"), true},
		{"plain eof", io.EOF, false},
		{"unrelated", errors.New("no such host"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConnReset(tt.err))
		})
	}
}

func TestRunWithRestart_RetriesResetOnce(t *testing.T) {
	calls := 0
	err := RunWithRestart(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("listing get: %w", syscall.ECONNRESET)
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRunWithRestart_SecondResetSurfaces(t *testing.T) {
	calls := 0
	err := RunWithRestart(context.Background(), func(context.Context) error {
		calls++
		return syscall.ECONNRESET
	})
	assert.ErrorIs(t, err, syscall.ECONNRESET)
	assert.Equal(t, 2, calls)
}

func TestRunWithRestart_OtherErrorsNotRetried(t *testing.T) {
	calls := 0
	sentinel := errors.New("catalog misconfigured")
	err := RunWithRestart(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}
