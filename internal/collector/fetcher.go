package collector

import (
	"context"
	"time"

	"TickerWatch/internal/model"
)

// Fetcher retrieves the close-price history of a symbol over [from, to).
// The returned quotes are not required to be sorted.
type Fetcher interface {
	History(ctx context.Context, symbol string, from, to time.Time) ([]model.Quote, error)
	Name() string
}
