package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartrade-engine/internal/catalog"
	"cartrade-engine/internal/store"
)

// One pair, two pages, two listing links pointing at the same detail page:
// the run should record one created ad and one duplicate, and finalize the
// job row.
func TestCrawlerRun(t *testing.T) {
	var listingCalls atomic.Int64

	mux := http.NewServeMux()
	var base string // set once the server is up
	mux.HandleFunc("/make-model/audi-26-a4-375.html", func(w http.ResponseWriter, _ *http.Request) {
		if listingCalls.Add(1) > 1 {
			_, _ = fmt.Fprint(w, `<html><body></body></html>`)
			return
		}
		_, _ = fmt.Fprintf(w, `<html><body>
  <h2 class="list_head"><a href="%s/vehicle/1001.html">Audi A4</a></h2>
  <h2 class="list_head"><a href="%s/vehicle/1001.html">Audi A4 again</a></h2>
</body></html>`, base, base)
	})
	mux.HandleFunc("/vehicle/1001.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body>
  <div class="fob_price"><span>FOB <strong>1,234</strong></span></div>
  <p><span>Make</span> <strong>AUDI</strong></p>
  <p><span>Model</span> <strong>A4</strong></p>
</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	base = server.URL

	mem := store.NewMemory()
	c := &Crawler{
		Store:   mem,
		BaseURL: server.URL + "/make-model/",
		Pairs:   []catalog.Pair{{Brand: "audi-26", Model: "a4-375"}},
		PageCap: 2,
	}

	resp, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.Completed)
	assert.Equal(t, 1, resp.TotalAdsCreated)
	assert.Equal(t, 1, resp.Duplicates)
	assert.Equal(t, 0, resp.AdsFailedToCreate)

	ads := mem.Ads()
	require.Len(t, ads, 1)
	ad := ads[server.URL+"/vehicle/1001.html"]
	require.NotNil(t, ad.Price.FOB)
	assert.Equal(t, 1234.0, *ad.Price.FOB)
	assert.Nil(t, ad.Info.Mileage)
	assert.Equal(t, "AUDI", ad.Info.Make)

	final, ok := mem.Job(resp.ID)
	require.True(t, ok)
	assert.True(t, final.Completed)
	assert.Equal(t, 1, final.TotalAdsCreated)
	assert.Equal(t, 1, final.Duplicates)
}

// Store failures are counted and absorbed: the run still completes.
func TestCrawlerRun_InsertFailureCounted(t *testing.T) {
	mux := http.NewServeMux()
	var base string
	var listingCalls atomic.Int64
	mux.HandleFunc("/make-model/honda-3-accord-710.html", func(w http.ResponseWriter, _ *http.Request) {
		if listingCalls.Add(1) > 1 {
			_, _ = fmt.Fprint(w, `<html><body></body></html>`)
			return
		}
		_, _ = fmt.Fprintf(w, `<html><body>
  <h2 class="list_head"><a href="%s/vehicle/7.html">Accord</a></h2>
</body></html>`, base)
	})
	mux.HandleFunc("/vehicle/7.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body></body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	base = server.URL

	mem := store.NewMemory()
	mem.FailURLs = map[string]bool{server.URL + "/vehicle/7.html": true}

	c := &Crawler{
		Store:   mem,
		BaseURL: server.URL + "/make-model/",
		Pairs:   []catalog.Pair{{Brand: "honda-3", Model: "accord-710"}},
		PageCap: 1,
		Workers: 2,
	}

	resp, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	assert.Equal(t, 0, resp.TotalAdsCreated)
	assert.Equal(t, 1, resp.AdsFailedToCreate)
	assert.Empty(t, mem.Ads())
}

// A listing fetch that dies on the wire fails the whole join and leaves the
// job row as it was at creation time.
func TestCrawlerRun_TransportErrorFailsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html></html>`)
	}))
	server.Close() // refuse every connection

	mem := store.NewMemory()
	c := &Crawler{
		Store:   mem,
		BaseURL: server.URL + "/make-model/",
		Pairs:   []catalog.Pair{{Brand: "audi-26", Model: "a4-375"}},
		PageCap: 1,
	}

	resp, err := c.Run(context.Background())
	require.Error(t, err)
	assert.False(t, resp.Completed)

	row, ok := mem.Job(resp.ID)
	require.True(t, ok)
	assert.False(t, row.Completed)
}
