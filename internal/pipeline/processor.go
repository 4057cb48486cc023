package pipeline

import (
	"context"
	"log"
	"sort"

	"TickerWatch/internal/bus"
	"TickerWatch/internal/metrics"
	"TickerWatch/internal/model"
	"TickerWatch/internal/signal"
)

// Processor turns each non-empty price series into one indicator record
// and broadcasts it. An empty series is logged and produces nothing, so
// the number of records per cycle varies with data availability.
type Processor struct {
	Bus       *bus.Bus
	SMAWindow int
	Metrics   *metrics.Metrics
}

func (p *Processor) Name() string { return "processor" }

// Run consumes price series until ctx is cancelled or the bus closes.
func (p *Processor) Run(ctx context.Context) {
	series, cancel := p.Bus.Series.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-series:
			if !ok {
				return
			}
			p.process(s)
		}
	}
}

func (p *Processor) process(s model.PriceSeries) {
	if len(s.Quotes) == 0 {
		log.Printf("[INFO] no data for %q this cycle", s.Symbol)
		p.Metrics.EmptySeries.Inc()
		return
	}

	rec := Compute(s, p.SMAWindow)
	p.Metrics.IndicatorsTotal.Inc()

	if err := p.Bus.Indicators.Publish(rec); err != nil {
		log.Printf("[ERROR] publish indicators for %q: %v", s.Symbol, err)
	}
}

// Compute derives the indicator record from a non-empty series. Quotes
// are stable-sorted by timestamp so equal-timestamp ties keep arrival
// order; the input slice is left untouched. The moving average is the
// last SMA window value, or 0 when the series is shorter than the window.
func Compute(s model.PriceSeries, smaWindow int) model.Indicators {
	quotes := make([]model.Quote, len(s.Quotes))
	copy(quotes, s.Quotes)
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Timestamp.Before(quotes[j].Timestamp)
	})

	closes := make([]float64, len(quotes))
	for i, q := range quotes {
		closes[i] = q.Close
	}

	periodMax, _ := signal.MaxPrice{}.Calculate(closes)
	periodMin, _ := signal.MinPrice{}.Calculate(closes)
	diff, _ := signal.PriceDifference{}.Calculate(closes)
	sma, _ := signal.WindowedSMA{WindowSize: smaWindow}.Calculate(closes)

	lastSMA := 0.0
	if len(sma) > 0 {
		lastSMA = sma[len(sma)-1]
	}

	return model.Indicators{
		Symbol:    s.Symbol,
		Timestamp: quotes[len(quotes)-1].Timestamp,
		Price:     closes[len(closes)-1],
		PctChange: diff.Relative,
		PeriodMin: periodMin,
		PeriodMax: periodMax,
		LastSMA:   lastSMA,
	}
}
