package scheduler

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"TickerWatch/internal/bus"
	"TickerWatch/internal/metrics"
)

func TestScheduler_TickFansOutPerSymbol(t *testing.T) {
	b := bus.New()
	defer b.Close()

	reqs, cancel := b.QuoteRequests.Subscribe()
	defer cancel()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	symbols := []string{"AAPL", "MSFT", "UBER", "GOOG"}
	s := New(b, symbols, from, time.Minute, metrics.New(prometheus.NewRegistry()), nil)

	before := time.Now().UTC()
	s.RunNow()

	for _, want := range symbols {
		select {
		case req := <-reqs:
			if req.Symbol != want {
				t.Errorf("request for %q, want %q (publish order per tick)", req.Symbol, want)
			}
			if !req.From.Equal(from) {
				t.Errorf("From = %v, want the fixed start %v", req.From, from)
			}
			if req.To.Before(before) {
				t.Errorf("To = %v predates the tick", req.To)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for request %q", want)
		}
	}
}

func TestScheduler_PublishFailureIsFatal(t *testing.T) {
	b := bus.New()
	b.Close() // simulate an unusable bus

	var fatal error
	s := New(b, []string{"AAPL"}, time.Now(), time.Minute,
		metrics.New(prometheus.NewRegistry()), func(err error) { fatal = err })

	s.RunNow()

	if fatal == nil {
		t.Fatal("expected the fatal callback on a closed bus")
	}
}
