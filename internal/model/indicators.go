package model

import "time"

// Indicators is the derived per-symbol performance summary for one cycle.
// Timestamp is the timestamp of the latest sample used. Immutable once
// created; broadcast by value to every subscriber.
type Indicators struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	PctChange float64   `json:"pct_change"`
	PeriodMin float64   `json:"period_min"`
	PeriodMax float64   `json:"period_max"`
	LastSMA   float64   `json:"last_sma"`
}
