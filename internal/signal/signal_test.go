package signal

import (
	"reflect"
	"testing"
)

func TestPriceDifference(t *testing.T) {
	sig := PriceDifference{}

	if _, ok := sig.Calculate(nil); ok {
		t.Error("expected no result for empty series")
	}
	if d, ok := sig.Calculate([]float64{1.0}); !ok || d != (Difference{0, 0}) {
		t.Errorf("single element: got %+v ok=%v, want (0,0) ok=true", d, ok)
	}
	if d, _ := sig.Calculate([]float64{1.0, 0.0}); d != (Difference{-1.0, -1.0}) {
		t.Errorf("got %+v, want (-1,-1)", d)
	}
	if d, _ := sig.Calculate([]float64{2, 3, 5, 6, 1, 2, 10}); d != (Difference{8.0, 4.0}) {
		t.Errorf("got %+v, want (8,4)", d)
	}
	// A zero first price uses 1 as the denominator.
	if d, _ := sig.Calculate([]float64{0, 3, 5, 6, 1, 2, 1}); d != (Difference{1.0, 1.0}) {
		t.Errorf("got %+v, want (1,1)", d)
	}
}

func TestWindowedSMA(t *testing.T) {
	series := []float64{2.0, 4.5, 5.3, 6.5, 4.7}

	got, ok := WindowedSMA{WindowSize: 3}.Calculate(series)
	want := []float64{3.9333333333333336, 5.433333333333334, 5.5}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("window 3: got %v ok=%v, want %v", got, ok, want)
	}

	got, ok = WindowedSMA{WindowSize: 5}.Calculate(series)
	if !ok || !reflect.DeepEqual(got, []float64{4.6}) {
		t.Errorf("window 5: got %v ok=%v, want [4.6]", got, ok)
	}

	// A window larger than the series is a valid empty result, not a failure.
	got, ok = WindowedSMA{WindowSize: 10}.Calculate(series)
	if !ok {
		t.Fatal("window 10: expected ok")
	}
	if len(got) != 0 {
		t.Errorf("window 10: got %v, want empty", got)
	}

	if _, ok := (WindowedSMA{WindowSize: 1}).Calculate(series); ok {
		t.Error("window 1: expected no result")
	}
	if _, ok := (WindowedSMA{WindowSize: 3}).Calculate(nil); ok {
		t.Error("empty series: expected no result")
	}
}

func TestWindowedSMA_Length(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	for w := 2; w <= len(series); w++ {
		got, ok := WindowedSMA{WindowSize: w}.Calculate(series)
		if !ok {
			t.Fatalf("window %d: expected ok", w)
		}
		if len(got) != len(series)-w+1 {
			t.Errorf("window %d: got %d values, want %d", w, len(got), len(series)-w+1)
		}
	}
}

func TestMinPrice(t *testing.T) {
	sig := MinPrice{}
	if _, ok := sig.Calculate(nil); ok {
		t.Error("expected no result for empty series")
	}
	cases := []struct {
		series []float64
		want   float64
	}{
		{[]float64{1.0}, 1.0},
		{[]float64{1.0, 0.0}, 0.0},
		{[]float64{2, 3, 5, 6, 1, 2, 10}, 1.0},
		{[]float64{0, 3, 5, 6, 1, 2, 1}, 0.0},
	}
	for _, c := range cases {
		if got, ok := sig.Calculate(c.series); !ok || got != c.want {
			t.Errorf("MinPrice(%v) = %v ok=%v, want %v", c.series, got, ok, c.want)
		}
	}
}

func TestMaxPrice(t *testing.T) {
	sig := MaxPrice{}
	if _, ok := sig.Calculate(nil); ok {
		t.Error("expected no result for empty series")
	}
	cases := []struct {
		series []float64
		want   float64
	}{
		{[]float64{1.0}, 1.0},
		{[]float64{1.0, 0.0}, 1.0},
		{[]float64{2, 3, 5, 6, 1, 2, 10}, 10.0},
		{[]float64{0, 3, 5, 6, 1, 2, 1}, 6.0},
	}
	for _, c := range cases {
		if got, ok := sig.Calculate(c.series); !ok || got != c.want {
			t.Errorf("MaxPrice(%v) = %v ok=%v, want %v", c.series, got, ok, c.want)
		}
	}
}
