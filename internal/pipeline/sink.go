package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"TickerWatch/internal/buffer"
	"TickerWatch/internal/bus"
	"TickerWatch/internal/metrics"
	"TickerWatch/internal/recorder"
)

// Keeper owns the ring buffer's write side: it subscribes to indicator
// records and appends each to the buffer, fire-and-forget.
type Keeper struct {
	Bus    *bus.Bus
	Buffer *buffer.RingBuffer
}

func (k *Keeper) Name() string { return "keeper" }

func (k *Keeper) Run(ctx context.Context) {
	records, cancel := k.Bus.Indicators.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-records:
			if !ok {
				return
			}
			k.Buffer.Push(rec)
		}
	}
}

// Sink subscribes to indicator records and hands each to every configured
// recorder, echoing the CSV row to Echo when set. Recorder failures are
// logged and counted, never propagated upstream.
type Sink struct {
	Bus       *bus.Bus
	Recorders []recorder.Recorder
	Metrics   *metrics.Metrics
	Echo      io.Writer
}

func (s *Sink) Name() string { return "sink" }

func (s *Sink) Run(ctx context.Context) {
	records, cancel := s.Bus.Indicators.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-records:
			if !ok {
				return
			}
			if s.Echo != nil {
				fmt.Fprintln(s.Echo, recorder.FormatCSV(&rec))
			}
			for _, r := range s.Recorders {
				if err := r.Record(&rec); err != nil {
					log.Printf("[ERROR] record %s: %v", rec.Symbol, err)
					s.Metrics.RecordErrors.Inc()
				}
			}
		}
	}
}
