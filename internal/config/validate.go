package config

import (
	"fmt"
	"strings"
)

// Validate checks settings sanity after defaults were applied.
func (s *Settings) Validate() error {
	if s.Crawl.PageCap < 0 {
		return fmt.Errorf("crawl.page_cap must be >= 0, got %d", s.Crawl.PageCap)
	}
	if s.Crawl.Workers < 0 {
		return fmt.Errorf("crawl.workers must be >= 0, got %d", s.Crawl.Workers)
	}
	if s.Crawl.RequestsPerSec < 0 {
		return fmt.Errorf("crawl.requests_per_sec must be >= 0, got %g", s.Crawl.RequestsPerSec)
	}
	for i, p := range s.Catalog {
		if strings.TrimSpace(p.Brand) == "" || strings.TrimSpace(p.Model) == "" {
			return fmt.Errorf("catalog[%d]: brand and model are both required", i)
		}
	}
	return nil
}
