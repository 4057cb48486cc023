package recorder

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indicators.db")

	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	defer r.Close()

	if err := r.Record(sample()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var count int
	var symbol string
	row := r.db.QueryRow(`SELECT COUNT(*), MAX(symbol) FROM indicators`)
	if err := row.Scan(&count, &symbol); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 || symbol != "AAPL" {
		t.Errorf("got count=%d symbol=%s, want 1 AAPL", count, symbol)
	}
}
