package collector

import (
	"context"
	"time"

	"TickerWatch/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// When Quotes or Err is set they are returned as-is; otherwise a
// deterministic daily series around BasePrice is generated for [from, to).
type MockFetcher struct {
	BasePrice float64
	Quotes    []model.Quote
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) History(_ context.Context, _ string, from, to time.Time) ([]model.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Quotes != nil {
		return m.Quotes, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	var quotes []model.Quote
	i := 0
	for ts := from; ts.Before(to); ts = ts.AddDate(0, 0, 1) {
		quotes = append(quotes, model.Quote{
			Timestamp: ts,
			Close:     base * (1 + float64(i%20-10)*0.001),
		})
		i++
	}
	return quotes, nil
}
