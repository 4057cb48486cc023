package model

import "time"

// Quote is a single (timestamp, close) sample of a price series.
type Quote struct {
	Timestamp time.Time
	Close     float64
}

// PriceSeries carries one symbol's quotes for one fetch cycle. Quotes are
// not assumed sorted on arrival; an empty series is a valid value meaning
// "no data available this cycle", not an error.
type PriceSeries struct {
	Symbol string
	Quotes []Quote
}

// QuoteRequest asks the downloader for a symbol's close-price history
// over [From, To). One request is issued per symbol per scheduler tick.
type QuoteRequest struct {
	Symbol string
	From   time.Time
	To     time.Time
}
