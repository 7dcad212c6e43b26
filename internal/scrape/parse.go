package scrape

import (
	"strconv"
	"strings"
	"time"

	"cartrade-engine/internal/scrape/util"
)

// Field parsing is deliberately lossy: anything that doesn't look like the
// expected number or date becomes nil, never an error. The site's free-text
// placeholders ("—", "N/A", "Ask") all land in the nil bucket.

// parseUnitInt strips a unit suffix ("KM", "CC") and thousands separators,
// then parses the rest as an integer.
func parseUnitInt(s, unit string) *int {
	s = util.CleanText(s)
	if u := strings.ToUpper(s); strings.HasSuffix(u, unit) {
		s = s[:len(s)-len(unit)]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parseMileage(s string) *int {
	return parseUnitInt(s, "KM")
}

func parseEngineCC(s string) *int {
	return parseUnitInt(s, "CC")
}

// parseDoors handles both "4" and the labeled forms "4 Doors" / "4D".
func parseDoors(s string) *int {
	s = util.CleanText(s)
	u := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(u, "DOORS"):
		s = s[:len(s)-len("DOORS")]
	case strings.HasSuffix(u, "D"):
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// parseRegistration accepts "YYYY/MM" and "YYYY", told apart by the
// separator. Year-only dates default to January.
func parseRegistration(s string) *time.Time {
	s = util.CleanText(s)
	if s == "" {
		return nil
	}

	layout := "2006"
	if strings.Contains(s, "/") {
		layout = "2006/01"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// parsePrice strips thousands separators and parses a decimal amount.
func parsePrice(s string) *float64 {
	s = util.CleanText(s)
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
