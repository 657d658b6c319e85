package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TrendScope/internal/collector"
	"TrendScope/internal/config"
	"TrendScope/internal/metrics"
	"TrendScope/internal/notifier"
	"TrendScope/internal/recorder"
	"TrendScope/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TrendScope starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher, err := collector.NewFetcher(collector.FetcherOptions{
		Provider:     cfg.DataSource.Provider,
		AlpacaKey:    cfg.DataSource.AlpacaKey,
		AlpacaSecret: cfg.DataSource.AlpacaSecret,
		Proxy:        cfg.Proxy,
	})
	if err != nil {
		log.Fatalf("[FATAL] init fetcher: %v", err)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	m := metrics.NewMetrics()
	var quotes collector.QuoteSource
	if cfg.DataSource.LiveQuote {
		quotes = collector.NewQuoteScraper(cfg.Proxy)
	}
	col := collector.NewCollector(fetcher, quotes, m, collector.Settings{
		MAWindows:    cfg.Indicators.MAWindows,
		EMASmoothing: cfg.Indicators.EMASmoothing,
		EMADays:      cfg.Indicators.EMADays,
	})

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Telegram notifier
	var (
		tn     *notifier.TelegramNotifier
		sender scheduler.Sender
	)
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Println("[WARN] Telegram not configured, reports are only logged")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, sender, rec, cfg.Watchlist)
	if err := sched.RegisterDaily(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("[INFO] metrics listening on %s", cfg.Metrics.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily task now")
		sched.RunDailyAsync()
	}

	log.Printf("[INFO] TrendScope is running with %d watchlist symbols. Press Ctrl+C to stop.", len(cfg.Watchlist))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] metrics shutdown: %v", err)
	}
	log.Println("[INFO] TrendScope stopped")
}
