package config

// SolverConfig tunes the integer-program backend. The original ran the
// solver with no limits; a time limit is opt-in for very large plans.
type SolverConfig struct {
	// MaxTimeSeconds bounds a single solve; 0 disables the limit.
	MaxTimeSeconds float64 `mapstructure:"max_time_seconds" validate:"gte=0"`
}
