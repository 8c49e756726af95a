// Package worker contains the background retirement sweep that moves
// elapsed reservations to their terminal completed state.
package worker

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/scheduling"
)

// ReservationRetirer is the single persistence operation the sweep
// needs, satisfied by the reservation repository.
type ReservationRetirer interface {
	CompleteElapsed(ctx context.Context, cutoff time.Time, eligible []model.ReservationStatus) (int64, error)
}

// Retirement periodically completes reservations whose end time has
// passed.  Ticks are not reentrant: when a batch mutation is still
// running at the next tick, that tick is skipped rather than queued,
// so the same rows are never processed twice concurrently.  A failed
// batch is logged and retried on the following tick.
type Retirement struct {
	Repo     ReservationRetirer
	Clock    scheduling.Clock
	Interval time.Duration // sweep cadence
	Timeout  time.Duration // budget for one batch mutation
	Eligible []model.ReservationStatus

	busy atomic.Bool
	wg   sync.WaitGroup
}

// Run sweeps on the configured interval until ctx is cancelled, then
// waits for an in-flight batch to finish.  It always returns
// ctx.Err().
func (w *Retirement) Run(ctx context.Context) error {
	interval := w.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	// kick immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()
		case <-t.C:
			w.tick(ctx)
		}
	}
}

// tick starts one sweep unless the previous one is still running.
func (w *Retirement) tick(ctx context.Context) {
	if !w.busy.CompareAndSwap(false, true) {
		log.Printf("retirement: previous sweep still running, skipping tick")
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.busy.Store(false)
		w.sweep(ctx)
	}()
}

func (w *Retirement) sweep(ctx context.Context) {
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	n, err := w.Repo.CompleteElapsed(ctx, w.Clock.Now(), w.Eligible)
	if err != nil {
		log.Printf("retirement: sweep failed, retrying next tick: %v", err)
		return
	}
	if n > 0 {
		log.Printf("retirement: completed %d elapsed reservations", n)
	}
}
