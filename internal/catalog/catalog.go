// Package catalog enumerates the fixed (brand, model) pairs the crawl
// iterates and the listing-page URL scheme. The pair list and page cap are
// policy data: config may override them, the defaults match production.
package catalog

import "fmt"

// Pair identifies one brand/model listing series. Brand and Model are the
// site's opaque catalog slugs ("audi-26", "a4-375").
type Pair struct {
	Brand string `yaml:"brand"`
	Model string `yaml:"model"`
}

func (p Pair) String() string {
	return p.Brand + " " + p.Model
}

// DefaultPageCap is how many page indices each pair is crawled for. It is a
// hard cap, not an "until empty" probe: pages past real content just yield
// zero links.
const DefaultPageCap = 70

// PageSuffix maps a zero-based page index to the URL fragment for that page.
// The first listing page has no suffix and the site serves it for both
// index 0 and 1.
func PageSuffix(n int) string {
	if n < 2 {
		return ""
	}
	return fmt.Sprintf("p%d", n)
}

// BuildURL returns the listing path for a pair and page fragment, relative
// to the listing base: "audi-26-a4-375.html", "audi-26-a4-375-p3.html".
func BuildURL(p Pair, page string) string {
	if page == "" {
		return fmt.Sprintf("%s-%s.html", p.Brand, p.Model)
	}
	return fmt.Sprintf("%s-%s-%s.html", p.Brand, p.Model, page)
}

// Default returns the production catalog: 8 brands, one model each except
// Nissan, which carries four.
func Default() []Pair {
	return []Pair{
		{Brand: "audi-26", Model: "a4-375"},
		{Brand: "honda-3", Model: "accord-710"},
		{Brand: "nissan-2", Model: "note-277"},
		{Brand: "nissan-2", Model: "silvia-306"},
		{Brand: "nissan-2", Model: "gtr-1843"},
		{Brand: "nissan-2", Model: "leaf-22538"},
		{Brand: "toyota-1", Model: "celica-27"},
		{Brand: "bmw-23", Model: "x5-429"},
		{Brand: "ford-16", Model: "explorer-605"},
		{Brand: "mercedes-128", Model: "g+class-2718"},
	}
}
