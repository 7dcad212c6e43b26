package scrape

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"cartrade-engine/internal/catalog"
	"cartrade-engine/internal/jobs"
	"cartrade-engine/internal/scrape/util"
	"cartrade-engine/internal/store"
)

// Crawler drives one run: catalog -> listing pages -> detail pages -> store,
// with the job row bracketing the whole thing.
type Crawler struct {
	Store   store.Store
	Sink    *store.CSVSink // optional, written per ad regardless of store outcome
	BaseURL string
	Pairs   []catalog.Pair
	PageCap int

	// Workers bounds concurrent detail-page tasks; 0 keeps the original
	// fire-and-forget behavior of one goroutine per discovered link.
	Workers int

	// Limiter, when set, paces every outbound GET.
	Limiter *util.HostLimiter

	// Manual marks runs a person kicked off rather than the worker schedule.
	Manual bool
}

// Run executes one complete crawl. The job row is created before any fetch,
// mutated in memory for every ad outcome, and persisted again only after all
// scheduled tasks joined. A task error fails the whole join; the job row is
// then left incomplete, same as the process dying would.
func (c *Crawler) Run(ctx context.Context) (jobs.JobResponse, error) {
	job := jobs.New()
	if c.Manual {
		job.Manual = true
		job.TriggeredBy = "manual"
	}

	id, err := c.Store.CreateJob(ctx, job)
	if err != nil {
		return jobs.JobResponse{}, fmt.Errorf("create job: %w", err)
	}
	agg := jobs.NewAggregator(job)

	// Two groups: one goroutine per pair, and one shared group for every
	// detail-page task scheduled underneath them.
	var pairs errgroup.Group
	var tasks errgroup.Group
	if c.Workers > 0 {
		tasks.SetLimit(c.Workers)
	}

	for _, p := range c.Pairs {
		pairs.Go(func() error {
			return c.crawlPair(ctx, p, &tasks, agg, id)
		})
	}

	// Full join, no timeout: wait both groups out even when one already
	// failed, then surface the first error.
	err = pairs.Wait()
	if terr := tasks.Wait(); err == nil {
		err = terr
	}
	if err != nil {
		return jobs.JobResponse{Job: agg.Snapshot(false), ID: id}, err
	}

	final := agg.Snapshot(true)
	if err := c.Store.UpdateJob(ctx, id, final); err != nil {
		return jobs.JobResponse{Job: final, ID: id}, fmt.Errorf("finalize job %d: %w", id, err)
	}

	log.Printf("[crawl] job %d done: created=%d duplicates=%d failed=%d",
		id, final.TotalAdsCreated, final.Duplicates, final.AdsFailedToCreate)
	return jobs.JobResponse{Job: final, ID: id}, nil
}

// crawlPair walks one pair's pages in order (each page URL is derivable up
// front, nothing depends on the previous page's content) and schedules an
// extraction task per discovered link. Connection reuse is scoped to the
// pair: each gets its own client.
func (c *Crawler) crawlPair(ctx context.Context, p catalog.Pair, tasks *errgroup.Group, agg *jobs.Aggregator, jobID int64) error {
	log.Printf("[crawl] starting %s", p)

	hc := newClient()
	for n := 0; n < c.PageCap; n++ {
		url := c.BaseURL + catalog.BuildURL(p, catalog.PageSuffix(n))

		if c.Limiter != nil {
			if err := c.Limiter.WaitURL(ctx, url); err != nil {
				return err
			}
		}

		links, err := ListingLinks(ctx, hc, url)
		if err != nil {
			return fmt.Errorf("pair %s page %d: %w", p, n, err)
		}

		for _, link := range links {
			tasks.Go(func() error {
				return c.processAd(ctx, hc, link, agg, jobID)
			})
		}
	}
	return nil
}

// processAd extracts one detail page and reconciles it against the store.
// Persistence problems are counted, logged and absorbed; only a fetch/parse
// failure aborts the task (and with it the run).
func (c *Crawler) processAd(ctx context.Context, hc *http.Client, link string, agg *jobs.Aggregator, jobID int64) error {
	log.Printf("[crawl] reading %s", link)

	if c.Limiter != nil {
		if err := c.Limiter.WaitURL(ctx, link); err != nil {
			return err
		}
	}

	ad, err := AdFromPage(ctx, hc, link)
	if err != nil {
		return err
	}

	if c.Sink != nil {
		if werr := c.Sink.WriteAd(ad); werr != nil {
			log.Printf("[csv] %s: %v", link, werr)
		}
	}

	outcome, ierr := c.Store.InsertAd(ctx, ad, jobID)
	if ierr != nil {
		log.Printf("[store] %s: %v", link, ierr)
	}
	agg.Record(outcome)
	return nil
}
