// Package scrape fetches listing and detail pages and turns them into ads.
package scrape

import (
	"context"
	"net/http"
)

// userAgent mirrors a desktop browser; the site serves different markup to
// obvious bots.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36"

// newClient returns the HTTP client shared by one pair's crawl. No timeout:
// a hung detail page blocks that one task, nothing else.
func newClient() *http.Client {
	return &http.Client{}
}

func get(ctx context.Context, hc *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return hc.Do(req)
}
