package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"TickerWatch/internal/bus"
	"TickerWatch/internal/metrics"
	"TickerWatch/internal/model"
)

// Scheduler publishes one QuoteRequest per configured symbol at a fixed
// wall-clock interval. Ticks are not chained to completion of prior
// work: a slow cycle overlaps the next one, and downstream stages are
// expected to tolerate that.
type Scheduler struct {
	cron    *cron.Cron
	bus     *bus.Bus
	symbols []string
	from    time.Time
	metrics *metrics.Metrics
	onFatal func(error)
}

// New creates a scheduler firing every interval. onFatal is invoked when
// publishing a request fails, which means the bus itself is unusable and
// the process should come down.
func New(b *bus.Bus, symbols []string, from time.Time, interval time.Duration, m *metrics.Metrics, onFatal func(error)) *Scheduler {
	s := &Scheduler{
		cron:    cron.New(),
		bus:     b,
		symbols: symbols,
		from:    from,
		metrics: m,
		onFatal: onFatal,
	}
	s.cron.Schedule(cron.Every(interval), cron.FuncJob(s.tick))
	return s
}

// Start begins ticking. The first cycle fires after one full interval;
// use RunNow for an immediate cycle.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("[INFO] scheduler started for %d symbols", len(s.symbols))
}

// Stop stops the tick timer. In-flight cycles are unaffected.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow issues one cycle immediately.
func (s *Scheduler) RunNow() {
	s.tick()
}

func (s *Scheduler) tick() {
	s.metrics.CyclesTotal.Inc()
	to := time.Now().UTC()
	for _, symbol := range s.symbols {
		req := model.QuoteRequest{Symbol: symbol, From: s.from, To: to}
		if err := s.bus.QuoteRequests.Publish(req); err != nil {
			log.Printf("[ERROR] publish quote request for %q: %v", symbol, err)
			if s.onFatal != nil {
				s.onFatal(err)
			}
			return
		}
	}
}
