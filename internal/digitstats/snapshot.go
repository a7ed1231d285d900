package digitstats

// Snapshot is the immutable status record handed from the computation
// path to consumers (dashboard, summary table, MCP). All slices are
// copies; a published snapshot is never mutated.
type Snapshot struct {
	// Digits is the number of fractional digits ingested so far.
	Digits uint64

	// Counts is the digit histogram; its sum equals Digits.
	Counts [AlphabetSize]uint64

	ChiSquared   float64
	EntropyBits  float64
	MaxDeviation float64

	// History is the bounded convergence series for the sparklines.
	History []Sample

	// First holds the pinned leading fractional digits for the
	// "Pi = 3.xxx" line; Recent holds the rolling live digit feed.
	First  []byte
	Recent []byte

	// RatePerSec is the smoothed digit production rate.
	RatePerSec float64

	// Running is false once the scheduler has stopped.
	Running bool
}

// Snapshot captures the tracker state into an immutable record.
func (t *Tracker) Snapshot(running bool, ratePerSec float64) Snapshot {
	snap := Snapshot{
		Digits:       t.total,
		Counts:       t.counts,
		ChiSquared:   t.ChiSquared(),
		EntropyBits:  t.EntropyBits(),
		MaxDeviation: t.MaxDeviation(),
		History:      make([]Sample, len(t.history)),
		First:        make([]byte, len(t.first)),
		Recent:       make([]byte, len(t.recent)),
		RatePerSec:   ratePerSec,
		Running:      running,
	}

	copy(snap.History, t.history)
	copy(snap.First, t.first)
	copy(snap.Recent, t.recent)

	return snap
}

// ChiSquaredSeries extracts the chi-squared column of the history.
func (s Snapshot) ChiSquaredSeries() []float64 {
	return series(s.History, func(smp Sample) float64 { return smp.ChiSquared })
}

// EntropySeries extracts the entropy column of the history.
func (s Snapshot) EntropySeries() []float64 {
	return series(s.History, func(smp Sample) float64 { return smp.EntropyBits })
}

// MaxDeviationSeries extracts the max-deviation column of the history.
func (s Snapshot) MaxDeviationSeries() []float64 {
	return series(s.History, func(smp Sample) float64 { return smp.MaxDeviation })
}

func series(history []Sample, pick func(Sample) float64) []float64 {
	out := make([]float64, len(history))
	for i, smp := range history {
		out[i] = pick(smp)
	}

	return out
}

// Uniform reports whether the chi-squared statistic is consistent with
// a uniform digit distribution at the 5% significance level.
func (s Snapshot) Uniform() bool {
	return s.ChiSquared < ChiSquaredCritical95
}
