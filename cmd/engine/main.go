package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"cartrade-engine/internal/config"
	api "cartrade-engine/internal/http"
	"cartrade-engine/internal/http/handlers"
	"cartrade-engine/internal/jobs"
	"cartrade-engine/internal/scheduler"
	"cartrade-engine/internal/scrape"
	"cartrade-engine/internal/scrape/util"
	"cartrade-engine/internal/secrets"
	"cartrade-engine/internal/store"
)

func main() {
	// Keychain management runs before anything needs config: the stored key
	// is what LoadEnv later injects into the DSN.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "set-key":
			if len(os.Args) != 3 {
				log.Fatal("usage: engine set-key <dsn-user>  (key read from stdin)")
			}
			key, err := readKey(os.Stdin)
			if err != nil {
				log.Fatalf("[engine] read key: %v", err)
			}
			if err := secrets.SetDatabaseKey(os.Args[2], key); err != nil {
				log.Fatalf("[engine] set key: %v", err)
			}
			return
		case "delete-key":
			if len(os.Args) != 3 {
				log.Fatal("usage: engine delete-key <dsn-user>")
			}
			if err := secrets.DeleteDatabaseKey(os.Args[2]); err != nil {
				log.Fatalf("[engine] delete key: %v", err)
			}
			return
		}
	}

	// .env is a convenience for operator machines; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("[engine] %v", err)
	}
	if err := os.MkdirAll(env.DataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	cfgPath, err := config.EnsureUserConfig(env.DataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		log.Fatalf("[engine] config bootstrap failed: %v", err)
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[engine] config load failed (%s): %v", cfgPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, env)
	if err != nil {
		log.Fatalf("[engine] store: %v", err)
	}
	defer st.Close()

	var sink *store.CSVSink
	if env.OutCSV != "" {
		sink, err = store.OpenCSVSink(env.OutCSV)
		if err != nil {
			log.Fatalf("[engine] csv sink: %v", err)
		}
		defer sink.Close()
	}

	var limiter *util.HostLimiter
	if settings.Crawl.RequestsPerSec > 0 {
		limiter = util.NewHostLimiter(settings.Crawl.RequestsPerSec, settings.Crawl.Burst)
	}

	crawler := &scrape.Crawler{
		Store:   st,
		Sink:    sink,
		BaseURL: env.BaseURL,
		Pairs:   settings.Catalog,
		PageCap: settings.Crawl.PageCap,
		Workers: settings.Crawl.Workers,
		Limiter: limiter,
	}

	runOnce := func(ctx context.Context, manual bool) (jobs.JobResponse, error) {
		crawler.Manual = manual
		var resp jobs.JobResponse
		err := scrape.RunWithRestart(ctx, func(ctx context.Context) error {
			var rerr error
			resp, rerr = crawler.Run(ctx)
			return rerr
		})
		return resp, err
	}

	if settings.Daemon.Enabled {
		sched := scheduler.New(settings.Daemon.Schedule, runOnce)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("[engine] scheduler: %v", err)
		}
		if addr := settings.Daemon.ListenAddr; addr != "" {
			go func() {
				if err := api.Start(addr, api.Routes(handlers.Handlers{Sched: sched})); err != nil {
					log.Fatalf("[engine] api: %v", err)
				}
			}()
		}
		<-ctx.Done()
		sched.Stop()
		return
	}

	// One-shot run: a person kicked this off.
	if _, err := runOnce(ctx, true); err != nil {
		log.Fatalf("[engine] crawl failed: %v", err)
	}
}

// readKey reads the key from r so it never shows up in argv or shell
// history: echo "$KEY" | engine set-key worker
func readKey(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func openStore(ctx context.Context, env config.Env) (store.Store, error) {
	if env.DatabaseURL != "" {
		return store.OpenPostgres(ctx, env.DatabaseURL)
	}
	return store.OpenSQLite(env.SQLitePath)
}
