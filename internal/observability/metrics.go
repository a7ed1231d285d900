// Package observability exposes OpenTelemetry metric instruments for
// the computation engine and an optional HTTP diagnostics endpoint with
// a Prometheus scrape surface.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

const (
	metricDigitsTotal   = "pinormal.digits.total"
	metricTermsTotal    = "pinormal.terms.total"
	metricBatchDuration = "pinormal.batch.duration.seconds"
	metricChiSquared    = "pinormal.stats.chi_squared"
	metricEntropyBits   = "pinormal.stats.entropy.bits"
	metricMaxDeviation  = "pinormal.stats.max_deviation"
)

// batchBucketBoundaries covers 10ms to 600s: early batches finish in
// milliseconds while multi-million-digit extensions run for minutes.
var batchBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// EngineMetrics holds the instruments recorded by the batch scheduler.
// A nil *EngineMetrics is valid and records nothing, so the scheduler
// works unchanged with diagnostics disabled.
type EngineMetrics struct {
	digitsTotal   metric.Int64Counter
	termsTotal    metric.Int64Counter
	batchDuration metric.Float64Histogram
	chiSquared    metric.Float64Gauge
	entropyBits   metric.Float64Gauge
	maxDeviation  metric.Float64Gauge
}

// NewEngineMetrics creates the engine instruments from the given meter.
func NewEngineMetrics(mt metric.Meter) (*EngineMetrics, error) {
	b := newMetricBuilder(mt)

	em := &EngineMetrics{
		digitsTotal:   b.counter(metricDigitsTotal, "Total fractional digits of pi emitted", "{digit}"),
		termsTotal:    b.counter(metricTermsTotal, "Total Chudnovsky series terms computed", "{term}"),
		batchDuration: b.histogram(metricBatchDuration, "Batch computation duration in seconds", "s", batchBucketBoundaries...),
		chiSquared:    b.gauge(metricChiSquared, "Chi-squared statistic of the digit histogram", "1"),
		entropyBits:   b.gauge(metricEntropyBits, "Shannon entropy of the digit histogram", "bit"),
		maxDeviation:  b.gauge(metricMaxDeviation, "Largest digit frequency deviation from 0.1", "1"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return em, nil
}

// RecordBatch records one completed batch: terms and digits produced
// and the wall time spent.
func (em *EngineMetrics) RecordBatch(ctx context.Context, terms uint64, digits int, duration time.Duration) {
	if em == nil {
		return
	}

	em.termsTotal.Add(ctx, int64(terms))
	em.digitsTotal.Add(ctx, int64(digits))
	em.batchDuration.Record(ctx, duration.Seconds())
}

// RecordStats records the latest uniformity statistics.
func (em *EngineMetrics) RecordStats(ctx context.Context, chiSquared, entropyBits, maxDeviation float64) {
	if em == nil {
		return
	}

	em.chiSquared.Record(ctx, chiSquared)
	em.entropyBits.Record(ctx, entropyBits)
	em.maxDeviation.Record(ctx, maxDeviation)
}
