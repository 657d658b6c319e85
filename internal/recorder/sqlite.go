package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"TrendScope/internal/model"
)

// SQLiteRecorder persists analysis reports to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers inspect the journal while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_reports (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			page_url       TEXT,
			as_of          INTEGER,
			close          REAL,
			quote          TEXT,
			ema_smoothing  REAL,
			ema_days       INTEGER,
			ema_value      REAL,
			adl_today      REAL,
			adl_yesterday  REAL,
			stage2         INTEGER,
			high_liquidity INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_symbol_ts ON analysis_reports(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS moving_averages (
			report_id INTEGER NOT NULL REFERENCES analysis_reports(id),
			ma_window INTEGER NOT NULL,
			value     REAL,
			valid     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ma_report ON moving_averages(report_id)`,

		`CREATE TABLE IF NOT EXISTS unavailable_indicators (
			report_id INTEGER NOT NULL REFERENCES analysis_reports(id),
			indicator TEXT NOT NULL,
			reason    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_unavail_report ON unavailable_indicators(report_id)`,

		`CREATE TABLE IF NOT EXISTS job_runs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			job       TEXT,
			symbols   INTEGER,
			succeeded INTEGER,
			failed    INTEGER,
			note      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON job_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordReport stores the report and its per-window averages and
// unavailable indicators in one transaction.
func (r *SQLiteRecorder) RecordReport(rep *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var (
		asOf, closePrice any
		quote            any
		emaS, emaD, emaV any
	)
	if !rep.AsOf.IsZero() {
		asOf = rep.AsOf.Unix()
	}
	if rep.Snapshot != nil {
		closePrice = rep.Snapshot.Close
	}
	if rep.Quote != nil {
		quote = rep.Quote.String()
	}
	if rep.EMA != nil {
		emaS, emaD, emaV = rep.EMA.Smoothing, rep.EMA.Days, rep.EMA.Value
	}

	res, err := tx.Exec(`INSERT INTO analysis_reports
		(timestamp, symbol, page_url, as_of, close, quote,
		 ema_smoothing, ema_days, ema_value, adl_today, adl_yesterday,
		 stage2, high_liquidity)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), rep.Symbol, rep.PageURL, asOf, closePrice, quote,
		emaS, emaD, emaV, nullFloat(rep.ADLToday), nullFloat(rep.ADLYesterday),
		nullBool(rep.Stage2), nullBool(rep.HighLiquid),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("report id: %w", err)
	}

	if rep.Snapshot != nil {
		for _, ma := range rep.Snapshot.Averages {
			var v any
			if ma.Valid {
				v = ma.Value
			}
			if _, err := tx.Exec(`INSERT INTO moving_averages (report_id, ma_window, value, valid) VALUES (?,?,?,?)`,
				id, ma.Window, v, ma.Valid); err != nil {
				return fmt.Errorf("insert moving average: %w", err)
			}
		}
	}
	for _, u := range rep.Unavailable {
		if _, err := tx.Exec(`INSERT INTO unavailable_indicators (report_id, indicator, reason) VALUES (?,?,?)`,
			id, u.Indicator, u.Reason); err != nil {
			return fmt.Errorf("insert unavailable: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO job_runs
		(timestamp, job, symbols, succeeded, failed, note)
		VALUES (?,?,?,?,?,?)`,
		r.now().Unix(), evt.Job, evt.Symbols, evt.Succeeded, evt.Failed, evt.Note,
	)
	return err
}

// RecentReports returns up to limit reports for symbol, newest first.
func (r *SQLiteRecorder) RecentReports(symbol string, limit int) ([]*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, symbol, page_url, as_of, close, quote,
		ema_smoothing, ema_days, ema_value, adl_today, adl_yesterday, stage2, high_liquidity
		FROM analysis_reports WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	var (
		ids     []int64
		reports []*model.Report
	)
	for rows.Next() {
		var (
			id, ts                 int64
			rep                    model.Report
			pageURL, quote         sql.NullString
			asOf, emaDays          sql.NullInt64
			closePrice, emaS, emaV sql.NullFloat64
			adlToday, adlYesterday sql.NullFloat64
			stage2, highLiquid     sql.NullBool
		)
		if err := rows.Scan(&id, &ts, &rep.Symbol, &pageURL, &asOf, &closePrice, &quote,
			&emaS, &emaDays, &emaV, &adlToday, &adlYesterday, &stage2, &highLiquid); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rep.GeneratedAt = time.Unix(ts, 0)
		rep.PageURL = pageURL.String
		if asOf.Valid {
			rep.AsOf = time.Unix(asOf.Int64, 0).UTC()
		}
		if closePrice.Valid {
			rep.Snapshot = &model.MovingAverageSnapshot{Close: closePrice.Float64, AsOf: rep.AsOf}
		}
		if quote.Valid {
			if q, err := decimal.NewFromString(quote.String); err == nil {
				rep.Quote = &q
			}
		}
		if emaV.Valid {
			rep.EMA = &model.EMAValue{Smoothing: emaS.Float64, Days: int(emaDays.Int64), Value: emaV.Float64}
		}
		rep.ADLToday = floatPtr(adlToday)
		rep.ADLYesterday = floatPtr(adlYesterday)
		rep.Stage2 = boolPtr(stage2)
		rep.HighLiquid = boolPtr(highLiquid)

		ids = append(ids, id)
		reports = append(reports, &rep)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		if err := r.loadDetails(id, reports[i]); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func (r *SQLiteRecorder) loadDetails(id int64, rep *model.Report) error {
	if rep.Snapshot != nil {
		rows, err := r.db.Query(`SELECT ma_window, value, valid FROM moving_averages WHERE report_id = ? ORDER BY rowid`, id)
		if err != nil {
			return fmt.Errorf("query moving averages: %w", err)
		}
		for rows.Next() {
			var (
				ma    model.MovingAverage
				value sql.NullFloat64
			)
			if err := rows.Scan(&ma.Window, &value, &ma.Valid); err != nil {
				rows.Close()
				return fmt.Errorf("scan moving average: %w", err)
			}
			ma.Value = value.Float64
			rep.Snapshot.Averages = append(rep.Snapshot.Averages, ma)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}

	rows, err := r.db.Query(`SELECT indicator, reason FROM unavailable_indicators WHERE report_id = ? ORDER BY rowid`, id)
	if err != nil {
		return fmt.Errorf("query unavailable: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			u      model.Unavailable
			reason sql.NullString
		)
		if err := rows.Scan(&u.Indicator, &reason); err != nil {
			return fmt.Errorf("scan unavailable: %w", err)
		}
		u.Reason = reason.String
		rep.Unavailable = append(rep.Unavailable, u)
	}
	return rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}
