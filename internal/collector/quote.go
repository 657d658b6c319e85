package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

const yahooQuoteBaseURL = "https://finance.yahoo.com"

// QuoteScraper reads the live price from a quote page. The value is for
// display only and never feeds an indicator.
type QuoteScraper struct {
	BaseURL string
	Client  *http.Client
}

// NewQuoteScraper creates a scraper with optional proxy support.
func NewQuoteScraper(proxyURL string) *QuoteScraper {
	return &QuoteScraper{
		BaseURL: yahooQuoteBaseURL,
		Client:  newHTTPClient(proxyURL),
	}
}

// Quote returns the regular market price shown on the symbol's quote page.
// ok is false when the page has no price tag.
func (q *QuoteScraper) Quote(ctx context.Context, symbol string) (price decimal.Decimal, ok bool, err error) {
	u := fmt.Sprintf("%s/quote/%s/", q.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, false, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := q.Client.Do(req)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("quote fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, false, fmt.Errorf("quote fetch %s: status %d", u, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("quote parse: %w", err)
	}
	tag := doc.Find(`fin-streamer[data-field="regularMarketPrice"]`).First()
	if tag.Length() == 0 {
		return decimal.Zero, false, nil
	}

	text := tag.AttrOr("data-value", "")
	if text == "" {
		text = tag.Text()
	}
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	price, err = decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("quote value %q: %w", text, err)
	}
	return price, true, nil
}
