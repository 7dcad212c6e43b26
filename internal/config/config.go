// engine/internal/config/config.go
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"cartrade-engine/internal/catalog"
)

// Settings is the yaml side of configuration: crawl policy knobs and the
// catalog. Everything here has a sane default; the file may be absent.
type Settings struct {
	Crawl struct {
		PageCap        int     `yaml:"page_cap"`
		Workers        int     `yaml:"workers"` // 0 = unbounded
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Burst          int     `yaml:"burst"`
	} `yaml:"crawl"`

	Daemon struct {
		Enabled  bool   `yaml:"enabled"`
		Schedule string `yaml:"schedule"`
		// ListenAddr enables the status API in daemon mode; empty disables it.
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"daemon"`

	Catalog []catalog.Pair `yaml:"catalog"`
}

// Load reads settings from path. A missing file yields pure defaults.
func Load(path string) (Settings, error) {
	var s Settings
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.applyDefaults()
			return s, nil
		}
		return s, err
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, err
	}
	s.applyDefaults()
	return s, s.Validate()
}

func (s *Settings) applyDefaults() {
	if s.Crawl.PageCap == 0 {
		s.Crawl.PageCap = catalog.DefaultPageCap
	}
	if s.Crawl.Burst == 0 {
		s.Crawl.Burst = 1
	}
	if s.Daemon.Schedule == "" {
		s.Daemon.Schedule = "@every 12h"
	}
	if len(s.Catalog) == 0 {
		s.Catalog = catalog.Default()
	}
}
