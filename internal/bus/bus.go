package bus

import "TickerWatch/internal/model"

// Bus bundles the typed topics connecting the pipeline stages. It is
// constructed once in main and passed to every stage explicitly; there is
// no process-wide default instance.
type Bus struct {
	QuoteRequests *Topic[model.QuoteRequest]
	Series        *Topic[model.PriceSeries]
	Indicators    *Topic[model.Indicators]
}

// New creates a bus with all topics ready for use.
func New() *Bus {
	return &Bus{
		QuoteRequests: NewTopic[model.QuoteRequest](),
		Series:        NewTopic[model.PriceSeries](),
		Indicators:    NewTopic[model.Indicators](),
	}
}

// Close shuts down all topics. Subscriber channels are closed so workers
// draining them can exit.
func (b *Bus) Close() {
	b.QuoteRequests.Close()
	b.Series.Close()
	b.Indicators.Close()
}
