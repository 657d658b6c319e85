// Command analyze prints the indicator report for one ticker or market-page URL.
//
//	analyze -symbol COST
//	analyze -url https://finance.yahoo.com/quote/COST/history/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"TrendScope/internal/collector"
	"TrendScope/internal/config"
	"TrendScope/internal/notifier"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		sym      = flag.String("symbol", "", "ticker symbol, e.g. COST")
		pageURL  = flag.String("url", "", "market page URL, e.g. https://finance.yahoo.com/quote/COST/history/")
		provider = flag.String("provider", "", "data provider override: yahoo, alpaca or mock")
		quote    = flag.Bool("quote", false, "scrape the live quote for display")
		cfgPath  = flag.String("config", "configs/config.yaml", "optional config file")
		timeout  = flag.Duration("timeout", 60*time.Second, "overall deadline")
	)
	flag.Parse()

	input := *sym
	if *pageURL != "" {
		input = *pageURL
	}
	if input == "" || (*sym != "" && *pageURL != "") {
		fmt.Fprintln(os.Stderr, "exactly one of -symbol or -url is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *provider != "" {
		cfg.DataSource.Provider = *provider
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	fetcher, err := collector.NewFetcher(collector.FetcherOptions{
		Provider:     cfg.DataSource.Provider,
		AlpacaKey:    cfg.DataSource.AlpacaKey,
		AlpacaSecret: cfg.DataSource.AlpacaSecret,
		Proxy:        cfg.Proxy,
	})
	if err != nil {
		log.Fatalf("[FATAL] init fetcher: %v", err)
	}

	var quotes collector.QuoteSource
	if *quote || cfg.DataSource.LiveQuote {
		quotes = collector.NewQuoteScraper(cfg.Proxy)
	}
	col := collector.NewCollector(fetcher, quotes, nil, collector.Settings{
		MAWindows:    cfg.Indicators.MAWindows,
		EMASmoothing: cfg.Indicators.EMASmoothing,
		EMADays:      cfg.Indicators.EMADays,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	rep, err := col.Analyze(ctx, input)
	if err != nil {
		log.Fatalf("[FATAL] analyze %s: %v", input, err)
	}
	fmt.Println(notifier.FormatPlain(rep))
	if len(rep.Unavailable) > 0 {
		os.Exit(1)
	}
}
