package symbol

import (
	"errors"
	"testing"
)

func TestBuildURLFromSymbol(t *testing.T) {
	tests := []struct {
		sym  string
		ok   bool
		want string
	}{
		{"COST", true, "https://finance.yahoo.com/quote/COST/history/"},
		{"A", true, "https://finance.yahoo.com/quote/A/history/"},
		{"teD", false, InvalidSymbol},
		{"cost", false, InvalidSymbol},
		{"BRK.B", false, InvalidSymbol},
		{"X1", false, InvalidSymbol},
		{"", false, InvalidSymbol},
		{" COST", false, InvalidSymbol},
	}
	for _, tt := range tests {
		got, ok := BuildURLFromSymbol(tt.sym)
		if ok != tt.ok || got != tt.want {
			t.Errorf("BuildURLFromSymbol(%q) = (%q, %v), want (%q, %v)", tt.sym, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveSymbolFromURL(t *testing.T) {
	got, err := ResolveSymbolFromURL("https://finance.yahoo.com/quote/COST/history/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "COST" {
		t.Errorf("got %q, want COST", got)
	}

	for _, bad := range []string{"", "COST", "a/b", "https://finance.yahoo.com/quote/brk-b/history/"} {
		if _, err := ResolveSymbolFromURL(bad); !errors.Is(err, ErrMalformedURL) {
			t.Errorf("ResolveSymbolFromURL(%q): expected ErrMalformedURL, got %v", bad, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, sym := range []string{"COST", "AAPL", "T"} {
		u, ok := BuildURLFromSymbol(sym)
		if !ok {
			t.Fatalf("%s rejected", sym)
		}
		got, err := ResolveSymbolFromURL(u)
		if err != nil || got != sym {
			t.Errorf("round trip %s: got (%q, %v)", sym, got, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got, err := Normalize(" NVDA "); err != nil || got != "NVDA" {
		t.Errorf("ticker: got (%q, %v)", got, err)
	}
	if got, err := Normalize("https://finance.yahoo.com/quote/MSFT/history/"); err != nil || got != "MSFT" {
		t.Errorf("url: got (%q, %v)", got, err)
	}
	if _, err := Normalize("msft"); err == nil {
		t.Error("lowercase ticker accepted")
	}
}
