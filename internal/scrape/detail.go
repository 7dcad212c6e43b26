package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cartrade-engine/internal/domain"
	"cartrade-engine/internal/scrape/util"
)

// Currency selection on the site is client-side rendered, so scraping it is
// a lost race; every price is quoted in USD anyway.
const currency = "USD"

// AdFromPage fetches a detail page and extracts it into an Ad. Every field
// is independent and best-effort: a missing element or unparseable value
// leaves that field empty/nil and never fails the ad. Only transport and
// HTML-parse failures surface as errors.
func AdFromPage(ctx context.Context, hc *http.Client, link string) (domain.Ad, error) {
	res, err := get(ctx, hc, link)
	if err != nil {
		return domain.Ad{}, fmt.Errorf("detail get %s: %w", link, err)
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return domain.Ad{}, fmt.Errorf("detail parse %s: %w", link, err)
	}

	// Spec rows are label spans keyed by aria-label; the value is the text
	// of the enclosing element. Absent label means empty value.
	attr := func(label string) string {
		el := doc.Find(fmt.Sprintf("span[aria-label='%s']", label)).First()
		if el.Length() == 0 {
			return ""
		}
		return util.CleanText(el.Parent().Text())
	}

	// Make/Model live in caption/value pairs; first exact caption wins.
	var mk, model string
	doc.Find("span").Each(func(_ int, s *goquery.Selection) {
		switch s.Text() {
		case "Make":
			if mk == "" {
				mk = util.CleanText(s.Parent().Find("strong").First().Text())
			}
		case "Model":
			if model == "" {
				model = util.CleanText(s.Parent().Find("strong").First().Text())
			}
		}
	})

	priceText := "0"
	if block := doc.Find("div.fob_price").First(); block.Length() > 0 {
		priceText = block.Find("span strong").First().Text()
	}

	cif := 0.0
	return domain.Ad{
		Price: domain.Price{
			FOB:      parsePrice(priceText),
			CIF:      &cif,
			Currency: currency,
		},
		URL: link,
		Info: domain.Info{
			Registration: parseRegistration(attr("Reg. Year/Month")),
			Mileage:      parseMileage(attr("Mileage")),
			EngineCC:     parseEngineCC(attr("Engine CC")),
			Transmission: attr("Transmission"),
			Steering:     attr("Steering"),
			Fuel:         attr("Fuel"),
			Doors:        parseDoors(attr("Doors")),
			Make:         mk,
			Model:        model,
		},
		CreatedAt: time.Now().UTC(),
	}, nil
}
