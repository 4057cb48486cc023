package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"TickerWatch/internal/model"
)

// SQLiteRecorder persists indicator records to a SQLite database for
// long-term analysis, alongside the per-run CSV file.
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

	// WAL mode so ad-hoc reads don't contend with the pipeline's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicators (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			price      REAL,
			pct_change REAL,
			period_min REAL,
			period_max REAL,
			last_sma   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_indicators_ts ON indicators(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_indicators_symbol ON indicators(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Record(rec *model.Indicators) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO indicators
		(timestamp, symbol, price, pct_change, period_min, period_max, last_sma)
		VALUES (?,?,?,?,?,?,?)`,
		rec.Timestamp.Unix(), rec.Symbol, rec.Price,
		rec.PctChange, rec.PeriodMin, rec.PeriodMax, rec.LastSMA,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
