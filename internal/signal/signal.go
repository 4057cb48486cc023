package signal

import "math"

// Signal computes a scalar or vector value from an ordered series of
// closing prices. Calculate reports ok=false when the series cannot
// produce a result at all (empty input, invalid window). Implementations
// are stateless and safe for concurrent use.
type Signal[T any] interface {
	Calculate(series []float64) (T, bool)
}

var (
	_ Signal[Difference] = PriceDifference{}
	_ Signal[[]float64]  = WindowedSMA{}
	_ Signal[float64]    = MaxPrice{}
	_ Signal[float64]    = MinPrice{}
)

// Difference is the absolute and relative change between the beginning
// and the end of a series. The relative part is relative to the beginning.
type Difference struct {
	Absolute float64
	Relative float64
}

// PriceDifference computes the price change over the whole series.
// A single-element series yields a zero difference. When the series
// starts at 0 the relative change uses 1 as the denominator.
type PriceDifference struct{}

func (PriceDifference) Calculate(series []float64) (Difference, bool) {
	if len(series) == 0 {
		return Difference{}, false
	}
	first, last := series[0], series[len(series)-1]
	abs := last - first
	base := first
	if base == 0 {
		base = 1
	}
	return Difference{Absolute: abs, Relative: abs / base}, true
}

// WindowedSMA computes the simple moving average over every contiguous
// window of length WindowSize. The result holds len(series)-WindowSize+1
// values. A window larger than the series yields a valid empty result,
// which is distinct from the not-ok case of an empty series or a window
// of 1 or less.
type WindowedSMA struct {
	WindowSize int
}

func (s WindowedSMA) Calculate(series []float64) ([]float64, bool) {
	if len(series) == 0 || s.WindowSize <= 1 {
		return nil, false
	}
	if s.WindowSize > len(series) {
		return []float64{}, true
	}
	out := make([]float64, 0, len(series)-s.WindowSize+1)
	for i := 0; i+s.WindowSize <= len(series); i++ {
		sum := 0.0
		for _, v := range series[i : i+s.WindowSize] {
			sum += v
		}
		out = append(out, sum/float64(s.WindowSize))
	}
	return out, true
}

// MaxPrice finds the maximum of a series.
type MaxPrice struct{}

func (MaxPrice) Calculate(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	max := math.Inf(-1)
	for _, v := range series {
		if v > max {
			max = v
		}
	}
	return max, true
}

// MinPrice finds the minimum of a series.
type MinPrice struct{}

func (MinPrice) Calculate(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	min := math.Inf(1)
	for _, v := range series {
		if v < min {
			min = v
		}
	}
	return min, true
}
