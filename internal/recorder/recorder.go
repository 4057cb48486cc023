package recorder

import (
	"fmt"
	"time"

	"TickerWatch/internal/model"
)

// Header is the first line of every CSV output.
const Header = "period start,symbol,price,change %,min,max,30d avg"

// Recorder persists finished indicator records.
type Recorder interface {
	Record(rec *model.Indicators) error
	Close() error
}

// FormatCSV renders one record as a CSV row matching Header. The percent
// change is scaled to percent.
func FormatCSV(rec *model.Indicators) string {
	return fmt.Sprintf("%s,%s,$%.2f,%.2f%%,$%.2f,$%.2f,$%.2f",
		rec.Timestamp.Format(time.RFC3339),
		rec.Symbol,
		rec.Price,
		rec.PctChange*100,
		rec.PeriodMin,
		rec.PeriodMax,
		rec.LastSMA,
	)
}
