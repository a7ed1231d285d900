// Package digitstats maintains streaming uniformity statistics over the
// fractional decimal digits of π: a digit histogram, chi-squared,
// Shannon entropy, maximum deviation, and a bounded convergence history
// for each metric.
package digitstats

import (
	"fmt"
	"math"
)

// AlphabetSize is the number of digit categories.
const AlphabetSize = 10

// uniformProbability is the expected frequency of each digit under the
// normality hypothesis.
const uniformProbability = 1.0 / AlphabetSize

// ChiSquaredCritical95 is the 95th percentile of the chi-squared
// distribution with 9 degrees of freedom. An observed statistic below
// it is consistent with uniformity at the 5% level.
const ChiSquaredCritical95 = 16.919

// MaxEntropyBits is log2(10), the entropy of a perfectly uniform digit
// distribution.
var MaxEntropyBits = math.Log2(AlphabetSize)

// Window and history retention defaults, matching the display layout:
// the first window pins the digits shown after "3.", the recent window
// feeds the live digit ticker, and the history cap bounds the sparkline
// series.
const (
	DefaultFirstWindow  = 200
	DefaultRecentWindow = 500
	DefaultHistoryCap   = 300

	// recentTrim is how many digits are dropped from the front of the
	// recent window once it overflows.
	recentTrim = 200
)

// Adaptive convergence sampling intervals: sample densely while the
// stream is short and sparsely once batches grow to millions of digits.
const (
	sampleEvery50Below   = 1_000
	sampleEvery200Below  = 10_000
	sampleEvery1000Below = 100_000

	intervalDense    = 50
	intervalMedium   = 200
	intervalCoarse   = 1_000
	intervalSparsest = 5_000
)

// Sample is one convergence observation, appended at sampling intervals
// and after each completed batch.
type Sample struct {
	Digits       uint64
	ChiSquared   float64
	EntropyBits  float64
	MaxDeviation float64
}

// Options configures a Tracker. Zero values select the defaults.
type Options struct {
	FirstWindow  int
	RecentWindow int
	HistoryCap   int
}

// Tracker accumulates the digit histogram and derives the uniformity
// statistics. It is owned by the scheduler loop and is not safe for
// concurrent use; cross-goroutine visibility goes through immutable
// Snapshot values.
type Tracker struct {
	counts [AlphabetSize]uint64
	total  uint64

	first  []byte
	recent []byte

	history []Sample

	firstWindow  int
	recentWindow int
	historyCap   int
}

// NewTracker creates an empty tracker.
func NewTracker(opts Options) *Tracker {
	if opts.FirstWindow <= 0 {
		opts.FirstWindow = DefaultFirstWindow
	}

	// The recent window must exceed the trim amount or trimming would
	// drop the whole buffer.
	if opts.RecentWindow <= recentTrim {
		opts.RecentWindow = DefaultRecentWindow
	}

	if opts.HistoryCap <= 0 {
		opts.HistoryCap = DefaultHistoryCap
	}

	return &Tracker{
		first:        make([]byte, 0, opts.FirstWindow),
		firstWindow:  opts.FirstWindow,
		recentWindow: opts.RecentWindow,
		historyCap:   opts.HistoryCap,
	}
}

// Ingest records one fractional digit in O(1). Digits outside 0–9 are a
// caller bug and panic.
func (t *Tracker) Ingest(d byte) {
	if d >= AlphabetSize {
		panic(fmt.Sprintf("digitstats: digit %d out of range", d))
	}

	t.counts[d]++
	t.total++

	if len(t.first) < t.firstWindow {
		t.first = append(t.first, d)
	}

	t.recent = append(t.recent, d)
	if len(t.recent) > t.recentWindow {
		t.recent = append(t.recent[:0], t.recent[recentTrim:]...)
	}

	if t.total%t.sampleInterval() == 0 {
		t.AppendSample()
	}
}

// sampleInterval returns the adaptive convergence sampling interval for
// the current stream length.
func (t *Tracker) sampleInterval() uint64 {
	switch {
	case t.total < sampleEvery50Below:
		return intervalDense
	case t.total < sampleEvery200Below:
		return intervalMedium
	case t.total < sampleEvery1000Below:
		return intervalCoarse
	default:
		return intervalSparsest
	}
}

// AppendSample captures the current statistics into the convergence
// history, decimating by two once the history exceeds its cap.
func (t *Tracker) AppendSample() {
	t.history = append(t.history, Sample{
		Digits:       t.total,
		ChiSquared:   t.ChiSquared(),
		EntropyBits:  t.EntropyBits(),
		MaxDeviation: t.MaxDeviation(),
	})

	if len(t.history) > t.historyCap {
		kept := t.history[:0]
		for i := 0; i < len(t.history); i += 2 {
			kept = append(kept, t.history[i])
		}

		t.history = kept
	}
}

// Total returns the number of digits ingested.
func (t *Tracker) Total() uint64 {
	return t.total
}

// Counts returns the digit histogram. The sum of the counts always
// equals Total.
func (t *Tracker) Counts() [AlphabetSize]uint64 {
	return t.counts
}

// ChiSquared returns Σ(cᵢ−e)²/e with e = n/10, the goodness-of-fit
// statistic against the uniform hypothesis. Zero for an empty stream.
func (t *Tracker) ChiSquared() float64 {
	if t.total == 0 {
		return 0
	}

	expected := float64(t.total) / AlphabetSize

	var sum float64

	for _, c := range t.counts {
		diff := float64(c) - expected
		sum += diff * diff / expected
	}

	return sum
}

// EntropyBits returns the Shannon entropy −Σ pᵢ·log2(pᵢ) of the digit
// distribution in bits. Zero-count digits contribute zero, and an empty
// stream reports zero rather than NaN.
func (t *Tracker) EntropyBits() float64 {
	if t.total == 0 {
		return 0
	}

	total := float64(t.total)

	var sum float64

	for _, c := range t.counts {
		if c == 0 {
			continue
		}

		p := float64(c) / total
		sum += p * math.Log2(p)
	}

	return -sum
}

// MaxDeviation returns maxᵢ|pᵢ − 0.1|, the largest absolute deviation
// of any digit frequency from uniformity. Zero for an empty stream.
func (t *Tracker) MaxDeviation() float64 {
	if t.total == 0 {
		return 0
	}

	total := float64(t.total)

	var maxDev float64

	for _, c := range t.counts {
		dev := math.Abs(float64(c)/total - uniformProbability)
		if dev > maxDev {
			maxDev = dev
		}
	}

	return maxDev
}
