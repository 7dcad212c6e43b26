package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/gofrs/flock"

	"cartrade-engine/internal/domain"
)

// csvColumns is the historical export schema, misspelling included: other
// tooling already reads "milage".
var csvColumns = []string{
	"FOB", "CIF", "currency",
	"make", "model",
	"reg", "milage", "cc", "transmission", "steering", "fuel", "doors",
	"url",
}

// CSVSink appends one row per extracted ad, independent of what the store
// decided about it. A cross-process file lock keeps concurrent engine runs
// from interleaving rows.
type CSVSink struct {
	mu   sync.Mutex
	f    *os.File
	w    *csv.Writer
	lock *flock.Flock
}

func OpenCSVSink(path string) (*CSVSink, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("csv lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("csv %s: locked by another process", path)
	}

	info, statErr := os.Stat(path)
	fresh := statErr != nil || info.Size() == 0

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("csv open %s: %w", path, err)
	}

	s := &CSVSink{f: f, w: csv.NewWriter(f), lock: lock}
	if fresh {
		if err := s.w.Write(csvColumns); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("csv header: %w", err)
		}
		s.w.Flush()
		if err := s.w.Error(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("csv header: %w", err)
		}
	}
	return s, nil
}

// WriteAd appends and flushes one row. Rows land in completion order, which
// is whatever order the network resolved the detail pages in.
func (s *CSVSink) WriteAd(ad domain.Ad) error {
	reg := ""
	if ad.Info.Registration != nil {
		reg = ad.Info.Registration.Format("2006/01")
	}

	rec := []string{
		fmtOptFloat(ad.Price.FOB),
		fmtOptFloat(ad.Price.CIF),
		ad.Price.Currency,
		ad.Info.Make,
		ad.Info.Model,
		reg,
		fmtOptInt(ad.Info.Mileage),
		fmtOptInt(ad.Info.EngineCC),
		ad.Info.Transmission,
		ad.Info.Steering,
		ad.Info.Fuel,
		fmtOptInt(ad.Info.Doors),
		ad.URL,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Write(rec); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	return nil
}

func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Flush()
	err := s.w.Error()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	if lerr := s.lock.Unlock(); err == nil {
		err = lerr
	}
	return err
}

func fmtOptFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func fmtOptInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
