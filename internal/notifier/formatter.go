package notifier

import (
	"fmt"
	"html"
	"strings"

	"TrendScope/internal/model"
)

// markup decides how headings are emphasised.
type markup struct {
	bold   func(string) string
	escape func(string) string
}

var (
	htmlMarkup = markup{
		bold:   func(s string) string { return "<b>" + s + "</b>" },
		escape: html.EscapeString,
	}
	plainMarkup = markup{
		bold:   func(s string) string { return s },
		escape: func(s string) string { return s },
	}
)

// FormatReport renders a report as Telegram HTML.
func FormatReport(rep *model.Report) string {
	return formatReport(rep, htmlMarkup)
}

// FormatPlain renders a report for terminals and logs.
func FormatPlain(rep *model.Report) string {
	return formatReport(rep, plainMarkup)
}

func formatReport(rep *model.Report, m markup) string {
	var b strings.Builder

	header := fmt.Sprintf("📊 %s", m.escape(rep.Symbol))
	if !rep.AsOf.IsZero() {
		header += " | " + rep.AsOf.Format("2006-01-02")
	}
	b.WriteString(m.bold(header) + "\n")
	if rep.PageURL != "" {
		b.WriteString(m.escape(rep.PageURL) + "\n")
	}
	b.WriteString("\n")

	if rep.Quote != nil {
		b.WriteString(fmt.Sprintf("Live quote: %s\n", rep.Quote.StringFixed(2)))
	}

	if s := rep.Snapshot; s != nil {
		b.WriteString(fmt.Sprintf("Close: %.2f\n", s.Close))
		for _, ma := range s.Averages {
			if !ma.Valid {
				b.WriteString(fmt.Sprintf("SMA%d: n/a (fewer than %d bars)\n", ma.Window, ma.Window))
				continue
			}
			dev := 0.0
			if ma.Value != 0 {
				dev = (s.Close - ma.Value) / ma.Value * 100
			}
			b.WriteString(fmt.Sprintf("SMA%d: %.2f (%+.1f%%)\n", ma.Window, ma.Value, dev))
		}
	}

	if e := rep.EMA; e != nil {
		b.WriteString(fmt.Sprintf("EMA%d (smoothing %g): %.2f\n", e.Days, e.Smoothing, e.Value))
	}

	if rep.ADLToday != nil {
		line := fmt.Sprintf("ADL: %s", formatVolume(*rep.ADLToday))
		if rep.ADLYesterday != nil {
			line += fmt.Sprintf(" (prev %s, %s)", formatVolume(*rep.ADLYesterday), trendWord(*rep.ADLToday, *rep.ADLYesterday))
		}
		b.WriteString(line + "\n")
	}

	if rep.Stage2 != nil || rep.HighLiquid != nil {
		b.WriteString("\n" + m.bold("Classification") + "\n")
		if rep.Stage2 != nil {
			b.WriteString(fmt.Sprintf("  Stage 2 uptrend: %s\n", yesNo(*rep.Stage2)))
		}
		if rep.HighLiquid != nil {
			b.WriteString(fmt.Sprintf("  Rising liquidity: %s\n", yesNo(*rep.HighLiquid)))
		}
	}

	if len(rep.Unavailable) > 0 {
		b.WriteString("\n" + m.bold("⚠️ Unavailable") + "\n")
		for _, u := range rep.Unavailable {
			b.WriteString(fmt.Sprintf("  %s: %s\n", u.Indicator, m.escape(u.Reason)))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatWatchlist lists the configured symbols.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "Watchlist is empty."
	}
	return fmt.Sprintf("👀 <b>Watchlist</b> (%d)\n%s", len(symbols), strings.Join(symbols, ", "))
}

// FormatHelp describes the supported commands.
func FormatHelp() string {
	return "Commands:\n" +
		"/analyze SYMBOL - analyze a ticker, e.g. /analyze COST\n" +
		"/analyze URL - analyze a market page URL\n" +
		"/watchlist - list the daily watchlist\n" +
		"/daily - run the watchlist analysis now\n" +
		"/help - show this message"
}

// FormatDailySummary closes a daily run.
func FormatDailySummary(total, failed int) string {
	if failed == 0 {
		return fmt.Sprintf("✅ Daily analysis finished: %d symbols", total)
	}
	return fmt.Sprintf("⚠️ Daily analysis finished: %d symbols, %d failed", total, failed)
}

func formatVolume(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func trendWord(today, yesterday float64) string {
	switch {
	case today > yesterday:
		return "accumulating"
	case today < yesterday:
		return "distributing"
	default:
		return "flat"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
