package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder writes cycle history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets `portfolio history` read while serve writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_cycles (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id      TEXT NOT NULL,
			timestamp       INTEGER NOT NULL,
			source          TEXT,
			status          TEXT NOT NULL,
			stock_count     INTEGER,
			summary_present INTEGER,
			message         TEXT,
			duration_ms     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON fetch_cycles(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(evt *CycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO fetch_cycles
		(request_id, timestamp, source, status, stock_count, summary_present, message, duration_ms)
		VALUES (?,?,?,?,?,?,?,?)`,
		evt.RequestID, at.Unix(), evt.Source, evt.Status,
		evt.StockCount, evt.SummaryPresent, evt.Message, evt.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert cycle %s: %w", evt.RequestID, err)
	}
	return nil
}

// Recent returns up to limit cycles, newest first.
func (r *SQLiteRecorder) Recent(limit int) ([]CycleEvent, error) {
	rows, err := r.db.Query(`SELECT request_id, timestamp, source, status, stock_count,
		summary_present, message, duration_ms
		FROM fetch_cycles ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	var out []CycleEvent
	for rows.Next() {
		var (
			evt        CycleEvent
			ts, ms     int64
			summary    bool
			src, msg   sql.NullString
			stockCount sql.NullInt64
		)
		if err := rows.Scan(&evt.RequestID, &ts, &src, &evt.Status, &stockCount, &summary, &msg, &ms); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		evt.At = time.Unix(ts, 0)
		evt.Source = src.String
		evt.StockCount = int(stockCount.Int64)
		evt.SummaryPresent = summary
		evt.Message = msg.String
		evt.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, evt)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
