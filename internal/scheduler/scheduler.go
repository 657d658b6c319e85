package scheduler

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"TrendScope/internal/model"
	"TrendScope/internal/notifier"
	"TrendScope/internal/recorder"
)

// Analyzer produces a report for a ticker or market-page URL.
type Analyzer interface {
	Analyze(ctx context.Context, input string) (*model.Report, error)
}

// Sender delivers formatted messages. A nil Sender means reports are only logged.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron tasks and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  Analyzer
	Notifier  Sender
	Recorder  recorder.Recorder
	Watchlist []string
	Ctx       context.Context

	// running guards against overlapping daily runs.
	running sync.Mutex
	// background tracks runs started outside cron.
	background sync.WaitGroup
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an Analyzer, sender Sender, rec recorder.Recorder, watchlist []string) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  an,
		Notifier:  sender,
		Recorder:  rec,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

// RegisterDaily registers the watchlist analysis task.
func (s *Scheduler) RegisterDaily(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs, including
// runs started with RunDailyAsync.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.background.Wait()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately.
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// RunDailyAsync starts the daily task in the background (RUN_ON_START, /daily).
func (s *Scheduler) RunDailyAsync() {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.dailyTask()
	}()
}

func (s *Scheduler) dailyTask() {
	if !s.running.TryLock() {
		log.Println("[WARN] daily task still running, skipping this tick")
		return
	}
	defer s.running.Unlock()

	log.Printf("[INFO] running daily task over %d symbols", len(s.Watchlist))
	evt := &recorder.RunEvent{Job: "DAILY", Symbols: len(s.Watchlist)}
	var failures []string

	for _, sym := range s.Watchlist {
		if s.Ctx.Err() != nil {
			log.Println("[WARN] daily task cancelled")
			break
		}
		rep, err := s.analyze(sym)
		if err != nil {
			evt.Failed++
			failures = append(failures, fmt.Sprintf("%s: %v", sym, err))
			s.trySend(fmt.Sprintf("❌ %s analysis failed: %s", sym, html.EscapeString(err.Error())))
			continue
		}
		evt.Succeeded++
		s.trySend(notifier.FormatReport(rep))
	}

	evt.Note = strings.Join(failures, "; ")
	if len(s.Watchlist) > 1 {
		s.trySend(notifier.FormatDailySummary(len(s.Watchlist), evt.Failed))
	}
	if err := s.Recorder.RecordRun(evt); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

// analyze runs one analysis and journals the report.
func (s *Scheduler) analyze(input string) (*model.Report, error) {
	rep, err := s.Analyzer.Analyze(s.Ctx, input)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", input, err)
		return nil, err
	}
	for _, u := range rep.Unavailable {
		log.Printf("[WARN] %s: %s unavailable: %s", rep.Symbol, u.Indicator, u.Reason)
	}
	if err := s.Recorder.RecordReport(rep); err != nil {
		log.Printf("[ERROR] record report %s: %v", rep.Symbol, err)
	}
	return rep, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Telegram appends the bot name in groups: /analyze@TrendScopeBot
	name, _, _ := strings.Cut(fields[0], "@")

	switch strings.ToLower(name) {
	case "/analyze":
		if len(fields) != 2 {
			return "Usage: /analyze SYMBOL or /analyze URL"
		}
		rep, err := s.Analyzer.Analyze(ctx, fields[1])
		if err != nil {
			log.Printf("[WARN] command analyze %s: %v", fields[1], err)
			return fmt.Sprintf("❌ %s: %s", html.EscapeString(fields[1]), html.EscapeString(err.Error()))
		}
		if err := s.Recorder.RecordReport(rep); err != nil {
			log.Printf("[ERROR] record report %s: %v", rep.Symbol, err)
		}
		return notifier.FormatReport(rep)
	case "/watchlist":
		return notifier.FormatWatchlist(s.Watchlist)
	case "/daily":
		s.RunDailyAsync()
		return "Daily analysis started."
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Printf("[INFO] report:\n%s", text)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
