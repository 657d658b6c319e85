// Package symbol converts between ticker symbols and market-page URLs.
package symbol

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// InvalidSymbol is returned by BuildURLFromSymbol for ill-formed symbols.
const InvalidSymbol = ""

const pageURLFormat = "https://finance.yahoo.com/quote/%s/history/"

var (
	ErrMalformedURL = errors.New("malformed market page url")

	tickerPattern = regexp.MustCompile(`^[A-Z]+$`)
)

// Valid reports whether s is an all-uppercase ticker symbol.
func Valid(s string) bool {
	return tickerPattern.MatchString(s)
}

// BuildURLFromSymbol returns the market-page URL for sym. The second result is
// false, and the URL InvalidSymbol, when sym is not a valid ticker.
func BuildURLFromSymbol(sym string) (string, bool) {
	if !Valid(sym) {
		return InvalidSymbol, false
	}
	return fmt.Sprintf(pageURLFormat, sym), true
}

// ResolveSymbolFromURL extracts the ticker from a market-page URL such as
// https://finance.yahoo.com/quote/COST/history/. The ticker is the third
// segment from the end when splitting on "/".
func ResolveSymbolFromURL(pageURL string) (string, error) {
	parts := strings.Split(pageURL, "/")
	if len(parts) < 3 {
		return "", fmt.Errorf("%w: %q has %d path segments", ErrMalformedURL, pageURL, len(parts))
	}
	sym := parts[len(parts)-3]
	if !Valid(sym) {
		return "", fmt.Errorf("%w: segment %q of %q is not a ticker symbol", ErrMalformedURL, sym, pageURL)
	}
	return sym, nil
}

// Normalize accepts either a ticker or a market-page URL and returns the ticker.
func Normalize(input string) (string, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "/") {
		return ResolveSymbolFromURL(input)
	}
	if !Valid(input) {
		return "", fmt.Errorf("invalid ticker symbol %q", input)
	}
	return input, nil
}
