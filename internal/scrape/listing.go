package scrape

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// ListingLinks fetches one listing page and returns the ad-detail hrefs, in
// document order. Pages past the real content aren't errors, they just have
// no listing headings. Transport errors propagate to the caller.
func ListingLinks(ctx context.Context, hc *http.Client, url string) ([]string, error) {
	res, err := get(ctx, hc, url)
	if err != nil {
		return nil, fmt.Errorf("listing get %s: %w", url, err)
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("listing parse %s: %w", url, err)
	}

	var links []string
	doc.Find("h2.list_head").Each(func(_ int, h *goquery.Selection) {
		if href, ok := h.Find("a").First().Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links, nil
}
