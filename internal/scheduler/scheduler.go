// Package scheduler drives batched extension of the Chudnovsky
// accumulator, feeds extracted digits to the statistics tracker, and
// publishes immutable snapshots for the display path.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/chudnovsky"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/digitstats"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/observability"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/pkg/alg/stats"
)

// Batch growth defaults. Growth is geometric so the incremental cost of
// each round stays proportional to the digits already computed instead
// of degrading to O(n²) total work.
const (
	DefaultStartBatchTerms = 1_000
	DefaultMaxBatchTerms   = 2_000_000
)

// rateSmoothing is the EMA factor for the digits-per-second readout.
const rateSmoothing = 0.3

// State is the scheduler lifecycle state.
type State int

// Scheduler states.
const (
	Idle State = iota
	Running
	Stopped
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config holds the scheduler policy knobs. Zero values select the
// defaults.
type Config struct {
	// StartBatchTerms is the series term count of the first batch.
	StartBatchTerms uint64

	// MaxBatchTerms caps the geometric batch growth.
	MaxBatchTerms uint64

	// GuardDigits is the extraction guard margin.
	GuardDigits int

	// MaxDigits stops the run once this many digits are emitted.
	// Zero means unbounded.
	MaxDigits uint64

	// Tracker options are forwarded to the statistics tracker.
	Tracker digitstats.Options
}

// Scheduler owns the computation loop. All mutable numeric state
// (accumulator, tracker) lives inside Run; the only cross-goroutine
// surface is the publisher.
type Scheduler struct {
	cfg     Config
	logger  *slog.Logger
	metrics *observability.EngineMetrics
	pub     *Publisher
	state   State
}

// New creates a scheduler in the Idle state. logger must be non-nil;
// metrics may be nil when diagnostics are disabled.
func New(cfg Config, logger *slog.Logger, metrics *observability.EngineMetrics) *Scheduler {
	if cfg.StartBatchTerms == 0 {
		cfg.StartBatchTerms = DefaultStartBatchTerms
	}

	if cfg.MaxBatchTerms == 0 {
		cfg.MaxBatchTerms = DefaultMaxBatchTerms
	}

	if cfg.GuardDigits <= 0 {
		cfg.GuardDigits = chudnovsky.DefaultGuardDigits
	}

	return &Scheduler{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		pub:     NewPublisher(),
		state:   Idle,
	}
}

// Publisher returns the snapshot handoff slot for the display path.
func (s *Scheduler) Publisher() *Publisher {
	return s.pub
}

// State returns the current lifecycle state. It is only meaningful from
// the goroutine running the loop and from after Run returns.
func (s *Scheduler) State() State {
	return s.state
}

// Run executes the batch loop until the context is cancelled or the
// configured digit limit is reached. Cancellation is observed between
// batches only: an in-flight batch always completes, so a torn
// accumulator is never published. Run always returns nil; nothing in
// the loop can transiently fail.
func (s *Scheduler) Run(ctx context.Context) error {
	s.state = Running

	acc := chudnovsky.NewState()
	tracker := digitstats.NewTracker(s.cfg.Tracker)
	rate := stats.NewEMA(rateSmoothing)

	batch := s.cfg.StartBatchTerms

	s.pub.Publish(tracker.Snapshot(true, 0))

	for ctx.Err() == nil && !s.reachedLimit(tracker) {
		start := time.Now()

		acc.Extend(batch)

		digits := acc.ExtractNew(s.cfg.GuardDigits)
		elapsed := time.Since(start)

		if len(digits) == 0 {
			// Guard precision not cleared yet; grow the batch and retry.
			// Normal control flow, not a failure.
			batch = s.nextBatch(batch)

			continue
		}

		for _, d := range digits {
			tracker.Ingest(d)
		}

		tracker.AppendSample()

		seconds := elapsed.Seconds()
		if seconds <= 0 {
			seconds = float64(time.Nanosecond) / float64(time.Second)
		}

		perSec := rate.Update(float64(len(digits)) / seconds)

		snap := tracker.Snapshot(true, perSec)
		s.pub.Publish(snap)

		s.metrics.RecordBatch(ctx, batch, len(digits), elapsed)
		s.metrics.RecordStats(ctx, snap.ChiSquared, snap.EntropyBits, snap.MaxDeviation)

		s.logger.InfoContext(ctx, "scheduler: batch complete",
			"terms", acc.Terms,
			"batch_terms", batch,
			"digits", tracker.Total(),
			"new_digits", len(digits),
			"duration_ms", elapsed.Milliseconds(),
			"chi_squared", snap.ChiSquared,
		)

		batch = s.nextBatch(batch)
	}

	s.state = Stopped
	s.pub.Publish(tracker.Snapshot(false, rate.Value()))

	s.logger.InfoContext(ctx, "scheduler: stopped",
		"terms", acc.Terms,
		"digits", tracker.Total(),
	)

	return nil
}

// nextBatch doubles the batch size up to the configured cap.
func (s *Scheduler) nextBatch(batch uint64) uint64 {
	next := batch * 2
	if next > s.cfg.MaxBatchTerms {
		next = s.cfg.MaxBatchTerms
	}

	return next
}

// reachedLimit reports whether the optional digit budget is exhausted.
func (s *Scheduler) reachedLimit(tracker *digitstats.Tracker) bool {
	return s.cfg.MaxDigits > 0 && tracker.Total() >= s.cfg.MaxDigits
}
