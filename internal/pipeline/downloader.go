package pipeline

import (
	"context"
	"log"
	"sync"

	"TickerWatch/internal/bus"
	"TickerWatch/internal/collector"
	"TickerWatch/internal/metrics"
	"TickerWatch/internal/model"
)

// Downloader fetches price history for every quote request on the bus and
// publishes the outcome as a PriceSeries. Provider failures are logged and
// collapsed to an empty series so downstream stages see a single shape.
type Downloader struct {
	Bus     *bus.Bus
	Fetcher collector.Fetcher
	Metrics *metrics.Metrics
}

func (d *Downloader) Name() string { return "downloader" }

// Run consumes quote requests until ctx is cancelled or the bus closes.
// Each request is handled on its own goroutine, so a slow or hung fetch
// for one symbol never delays the others.
func (d *Downloader) Run(ctx context.Context) {
	reqs, cancel := d.Bus.QuoteRequests.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-reqs:
			if !ok {
				return
			}
			wg.Add(1)
			go func(req model.QuoteRequest) {
				defer wg.Done()
				d.fetch(ctx, req)
			}(req)
		}
	}
}

func (d *Downloader) fetch(ctx context.Context, req model.QuoteRequest) {
	d.Metrics.FetchesTotal.Inc()

	quotes, err := d.Fetcher.History(ctx, req.Symbol, req.From, req.To)
	if err != nil {
		log.Printf("[WARN] ignoring provider error for symbol %q: %v", req.Symbol, err)
		d.Metrics.FetchErrors.Inc()
		quotes = nil
	}

	if err := d.Bus.Series.Publish(model.PriceSeries{Symbol: req.Symbol, Quotes: quotes}); err != nil {
		log.Printf("[ERROR] publish series for %q: %v", req.Symbol, err)
	}
}
