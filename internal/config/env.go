package config

import (
	"errors"
	"net/url"
	"os"

	"cartrade-engine/internal/secrets"
)

// DefaultBaseURL is the production listing base path.
const DefaultBaseURL = "https://www.japanesecartrade.com/make-model/"

// Env is the environment side of configuration: the base URL and whatever
// credentials the chosen sink needs. Fail-fast: missing required values stop
// the process before any crawl starts.
type Env struct {
	BaseURL     string
	DatabaseURL string // postgres DSN; empty means local mode
	SQLitePath  string
	OutCSV      string // optional CSV side output
	DataDir     string
}

// LoadEnv reads the process environment. At least one of DATABASE_URL and
// CARTRADE_SQLITE must be set; everything else has defaults or is optional.
func LoadEnv() (Env, error) {
	e := Env{
		BaseURL:     os.Getenv("CARTRADE_BASE_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  os.Getenv("CARTRADE_SQLITE"),
		OutCSV:      os.Getenv("CARTRADE_OUT_CSV"),
		DataDir:     os.Getenv("CARTRADE_DATA_DIR"),
	}
	if e.BaseURL == "" {
		e.BaseURL = DefaultBaseURL
	}
	if e.DataDir == "" {
		e.DataDir = "."
	}
	if e.DatabaseURL == "" && e.SQLitePath == "" {
		return e, errors.New("missing environment variables: set DATABASE_URL or CARTRADE_SQLITE")
	}
	if e.DatabaseURL != "" {
		e.DatabaseURL = withDatabaseKey(e.DatabaseURL)
	}
	return e, nil
}

// withDatabaseKey injects the datastore key into a DSN that names a user but
// carries no password. The key comes from CARTRADE_DB_KEY, falling back to
// the OS keyring.
func withDatabaseKey(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, has := u.User.Password(); has {
		return dsn
	}

	key := os.Getenv("CARTRADE_DB_KEY")
	if key == "" {
		key, _ = secrets.GetDatabaseKey(u.User.Username())
	}
	if key == "" {
		return dsn
	}
	u.User = url.UserPassword(u.User.Username(), key)
	return u.String()
}
