package config

// Engine defaults. Batch growth starts small for fast first paint and
// doubles to the cap; the guard margin covers one series term plus
// division truncation.
const (
	DefaultStartBatchTerms = 1_000
	DefaultMaxBatchTerms   = 2_000_000
	DefaultGuardDigits     = 20
	DefaultMaxDigits       = 0

	minGuardDigits = 16
)

// Statistics retention defaults.
const (
	DefaultHistoryCap   = 300
	DefaultRecentWindow = 500
	DefaultFirstWindow  = 200

	minRecentWindow = 200
)

// Display defaults: ~20 fps repaint.
const DefaultRefreshMS = 50

// DefaultConfig returns the zero-config settings.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			StartBatchTerms: DefaultStartBatchTerms,
			MaxBatchTerms:   DefaultMaxBatchTerms,
			GuardDigits:     DefaultGuardDigits,
			MaxDigits:       DefaultMaxDigits,
		},
		Stats: StatsConfig{
			HistoryCap:   DefaultHistoryCap,
			RecentWindow: DefaultRecentWindow,
			FirstWindow:  DefaultFirstWindow,
		},
		Display: DisplayConfig{
			RefreshMS: DefaultRefreshMS,
		},
	}
}
