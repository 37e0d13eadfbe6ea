package orbitalguard

import (
	"context"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// trackJob is a unit of work for the worker pool.
type trackJob struct {
	el Elements
}

// trackResult is the output of one catalog entry's propagation.
type trackResult struct {
	track Track
	err   error
	name  string
}

// BatchPropagator manages a fixed number of goroutines for parallel track
// generation over a catalog.
type BatchPropagator struct {
	workers     int
	durationMin float64
	stepMin     float64
	logger      kitlog.Logger
}

// NewBatchPropagator creates a batch propagator with the given number of
// workers and propagation window.
func NewBatchPropagator(workers int, durationMin, stepMin float64, logger kitlog.Logger) *BatchPropagator {
	if workers < 1 {
		workers = 1
	}
	return &BatchPropagator{
		workers:     workers,
		durationMin: durationMin,
		stepMin:     stepMin,
		logger:      logger,
	}
}

// GenerateTracks propagates every catalog entry over the configured window
// using the worker pool. Entries whose propagation fails are logged and
// skipped; the counts of successes and failures are returned alongside the
// tracks.
func (bp *BatchPropagator) GenerateTracks(ctx context.Context, els []Elements) ([]Track, int, int) {
	if len(els) == 0 {
		return nil, 0, 0
	}

	jobs := make(chan trackJob, bp.workers*2)
	results := make(chan trackResult, bp.workers*2)

	// Start workers.
	var wg sync.WaitGroup
	for i := 0; i < bp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				samples, err := GenerateTrack(job.el, bp.durationMin, bp.stepMin)
				result := trackResult{
					track: Track{Name: job.el.Name, Samples: samples},
					err:   err,
					name:  job.el.Name,
				}
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Feed jobs in a goroutine.
	go func() {
		defer close(jobs)
		for _, el := range els {
			select {
			case jobs <- trackJob{el: el}:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close results when all workers are done.
	go func() {
		wg.Wait()
		close(results)
	}()

	tracks := make([]Track, 0, len(els))
	var successCount, errorCount int
	for result := range results {
		if result.err != nil {
			errorCount++
			propagationsTotal.WithLabelValues("error").Inc()
			bp.logger.Log("level", "warning", "subsys", "batch", "track", result.name, "err", result.err)
			continue
		}
		successCount++
		propagationsTotal.WithLabelValues("ok").Inc()
		tracks = append(tracks, result.track)
	}
	return tracks, successCount, errorCount
}

// ScreenCatalog generates tracks for the whole catalog and screens every
// pair within maxKm, recording the screening duration.
func (bp *BatchPropagator) ScreenCatalog(ctx context.Context, els []Elements, cfg ScreenConfig, maxKm float64) ([]Encounter, error) {
	tracks, _, _ := bp.GenerateTracks(ctx, els)
	start := time.Now()
	encs, failed := cfg.ScreenAll(tracks, maxKm)
	screeningDurationSeconds.Observe(time.Since(start).Seconds())
	if failed > 0 {
		bp.logger.Log("level", "warning", "subsys", "screen", "failed_pairs", failed)
	}
	encountersTotal.Add(float64(len(encs)))
	return encs, nil
}
