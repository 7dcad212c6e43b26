package scrape

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"syscall"
)

// IsConnReset reports whether err is the one transport failure a run
// recovers from: the remote tearing the connection down mid-exchange.
func IsConnReset(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "server closed idle connection")
}

// RunWithRestart runs one crawl and, if it failed on a connection reset,
// restarts the entire run from scratch exactly once. The retry is scoped to
// that one error class; anything else, including a reset on the second
// attempt, is returned as is.
func RunWithRestart(ctx context.Context, run func(context.Context) error) error {
	err := run(ctx)
	if err != nil && IsConnReset(err) {
		log.Printf("[crawl] connection reset, restarting run once: %v", err)
		return run(ctx)
	}
	return err
}
