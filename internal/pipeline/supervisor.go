package pipeline

import (
	"context"
	"log"
	"time"
)

// Worker is a long-running pipeline stage. Run blocks until ctx is
// cancelled or the stage's subscription is gone.
type Worker interface {
	Name() string
	Run(ctx context.Context)
}

// Supervise runs w, restarting it after a panic or an early return until
// ctx is cancelled. A restarted worker resubscribes to its topics inside
// Run. The delay between restarts keeps a persistently crashing worker
// from spinning.
func Supervise(ctx context.Context, w Worker, restartDelay time.Duration) {
	for {
		runOnce(ctx, w)
		if ctx.Err() != nil {
			return
		}
		log.Printf("[WARN] worker %s exited, restarting in %v", w.Name(), restartDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(restartDelay):
		}
	}
}

func runOnce(ctx context.Context, w Worker) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] worker %s panicked: %v", w.Name(), r)
		}
	}()
	w.Run(ctx)
}
