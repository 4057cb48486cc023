package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"TickerWatch/internal/buffer"
	"TickerWatch/internal/bus"
	"TickerWatch/internal/collector"
	"TickerWatch/internal/config"
	"TickerWatch/internal/metrics"
	"TickerWatch/internal/pipeline"
	"TickerWatch/internal/recorder"
	"TickerWatch/internal/scheduler"
	"TickerWatch/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		symbols string
		from    string
	)

	cmd := &cobra.Command{
		Use:   "watcher",
		Short: "Periodic stock indicator pipeline with an HTTP tail query",
		Long: "watcher fetches price history for a set of symbols on a fixed interval,\n" +
			"derives performance indicators, persists them, and serves the most recent\n" +
			"records over GET /tail/{n}.",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if symbols != "" {
				cfg.Symbols = symbols
			}
			if from != "" {
				cfg.From = from
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			return run(cfg)
		},
	}

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultCfg, "path to the YAML config file")
	cmd.Flags().StringVarP(&symbols, "symbols", "s", "", "comma-separated ticker symbols")
	cmd.Flags().StringVarP(&from, "from", "f", "", "start of the fetch window (RFC3339 or YYYY-MM-DD)")

	return cmd
}

func run(cfg *config.Config) error {
	log.Println("[INFO] watcher starting...")

	from, _ := cfg.FromTime()
	interval, _ := cfg.TickInterval()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	b := bus.New()
	rb := buffer.New(cfg.Pipeline.BufferCapacity)
	m.WatchBuffer(rb.Len, rb.Dropped)

	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "mock":
		fetcher = &collector.MockFetcher{BasePrice: 100}
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// The CSV file is the run's durability guarantee, so failing to
	// create it is fatal. SQLite is best-effort on top.
	csvRec, err := recorder.NewCSVRecorder(cfg.Output.Dir, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("init csv recorder: %w", err)
	}
	recorders := []recorder.Recorder{csvRec}
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			recorders = append(recorders, recorder.NewNoopRecorder())
		} else {
			recorders = append(recorders, sr)
		}
	}
	defer func() {
		for _, r := range recorders {
			if err := r.Close(); err != nil {
				log.Printf("[ERROR] close recorder: %v", err)
			}
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workers := []pipeline.Worker{
		&pipeline.Downloader{Bus: b, Fetcher: fetcher, Metrics: m},
		&pipeline.Processor{Bus: b, SMAWindow: cfg.Pipeline.SMAWindow, Metrics: m},
		&pipeline.Keeper{Bus: b, Buffer: rb},
		&pipeline.Sink{Bus: b, Recorders: recorders, Metrics: m, Echo: os.Stdout},
	}
	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go func(w pipeline.Worker) {
			defer wg.Done()
			pipeline.Supervise(ctx, w, time.Second)
		}(w)
	}

	fmt.Println(recorder.Header)

	srv := server.New(cfg.HTTP.Addr, rb, m, reg)
	srv.Start()

	sched := scheduler.New(b, cfg.SymbolList(), from, interval, m, func(err error) {
		log.Printf("[FATAL] scheduler publish: %v", err)
		cancel()
	})
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, issuing first cycle now")
		go sched.RunNow()
	}

	log.Printf("[INFO] watcher is running: %d symbols every %v. Press Ctrl+C to stop.",
		len(cfg.SymbolList()), interval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("[INFO] %v received, stopping...", sig)
	case <-ctx.Done():
		log.Println("[INFO] pipeline stopped, shutting down")
	}

	cancel()
	b.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}

	wg.Wait()
	log.Println("[INFO] watcher stopped")
	return nil
}
