package domain

import "time"

// Price is the money block of an ad. FOB is whatever the listing shows;
// CIF is zero at extraction time and filled in by a later pricing step.
// Nil means the source text didn't parse as a number.
type Price struct {
	FOB      *float64
	CIF      *float64
	Currency string
}

// Info holds the descriptive fields of a detail page. Every numeric field is
// a pointer: unparseable source text leaves it nil rather than failing the ad.
type Info struct {
	Registration *time.Time // year or year/month precision
	Mileage      *int       // km
	EngineCC     *int
	Transmission string
	Steering     string
	Fuel         string
	Doors        *int
	Make         string
	Model        string
}

// Ad is one extracted vehicle listing. URL is the natural dedupe key; the
// store's unique constraint on it decides duplicates, not the crawler.
type Ad struct {
	Price     Price
	URL       string
	Info      Info
	CreatedAt time.Time
}
