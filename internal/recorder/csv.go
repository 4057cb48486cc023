package recorder

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"TickerWatch/internal/model"
)

// CSVRecorder appends one CSV row per record to a file created for this
// process run. The run's durability guarantee depends on this file, so
// construction failure is meant to be fatal for the caller.
type CSVRecorder struct {
	mu   sync.Mutex
	f    *os.File
	w    *bufio.Writer
	path string
}

// NewCSVRecorder creates `<start unix timestamp>.csv` under dir and writes
// the header row.
func NewCSVRecorder(dir string, start time.Time) (*CSVRecorder, error) {
	path := filepath.Join(dir, fmt.Sprintf("%d.csv", start.Unix()))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file %q: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(w, Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	log.Printf("[INFO] csv recorder opened: %s", path)
	return &CSVRecorder{f: f, w: w, path: path}, nil
}

// Path returns the output file location.
func (r *CSVRecorder) Path() string { return r.path }

func (r *CSVRecorder) Record(rec *model.Indicators) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintln(r.w, FormatCSV(rec)); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (r *CSVRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.Printf("[INFO] closing csv recorder: %s", r.path)
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return r.f.Close()
}
