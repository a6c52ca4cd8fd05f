package correct

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-picks/picks"
)

// ErrConfig indicates an invalid or incomplete configuration.
var ErrConfig = errors.New("correct: invalid configuration")

// DefaultMinPoints is the default number of picks needed to trust a
// one-sided fit.
const DefaultMinPoints = 10

// Config defines one correction run. It is passed by value and never
// modified by the package.
type Config struct {
	NumSource   int
	NumReceiver int

	PRange picks.Range
	SRange picks.Range

	// StdCoef scales the pick standard deviation into the half-width of the
	// acceptance band. NaN means unset. Zero collapses the band.
	StdCoef float64

	// MinPoints is the source position below which, or within this many
	// receivers of the end, a source is fitted from one side only.
	MinPoints int

	// Workers bounds the number of sources corrected concurrently.
	Workers int

	// KeepGoing attempts every source and reports all failures instead of
	// stopping at the first one.
	KeepGoing bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a config with the default MinPoints, a single
// worker, and StdCoef unset.
func DefaultConfig() Config {
	return Config{
		StdCoef:   math.NaN(),
		MinPoints: DefaultMinPoints,
		Workers:   1,
	}
}

// WithGeometry sets the number of sources and receivers.
func WithGeometry(numSource, numReceiver int) Option {
	return func(cfg *Config) {
		cfg.NumSource = numSource
		cfg.NumReceiver = numReceiver
	}
}

// WithPRange sets the admissible open interval for P picks.
func WithPRange(lo, hi picks.Bound) Option {
	return func(cfg *Config) {
		cfg.PRange = picks.Range{Min: lo, Max: hi}
	}
}

// WithSRange sets the admissible open interval for S picks.
func WithSRange(lo, hi picks.Bound) Option {
	return func(cfg *Config) {
		cfg.SRange = picks.Range{Min: lo, Max: hi}
	}
}

// WithStdCoef sets the acceptance band coefficient.
func WithStdCoef(coef float64) Option {
	return func(cfg *Config) {
		cfg.StdCoef = coef
	}
}

// WithMinPoints sets the one-sided fit threshold.
func WithMinPoints(n int) Option {
	return func(cfg *Config) {
		cfg.MinPoints = n
	}
}

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		cfg.Workers = n
	}
}

// WithKeepGoing enables per-source failure isolation.
func WithKeepGoing() Option {
	return func(cfg *Config) {
		cfg.KeepGoing = true
	}
}

// NewConfig applies opts to the default config and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first problem with cfg, wrapped in ErrConfig.
func (cfg Config) Validate() error {
	switch {
	case cfg.NumSource <= 0:
		return fmt.Errorf("%w: num_source must be positive, got %d", ErrConfig, cfg.NumSource)
	case cfg.NumReceiver <= 0:
		return fmt.Errorf("%w: num_receiver must be positive, got %d", ErrConfig, cfg.NumReceiver)
	case cfg.NumSource > cfg.NumReceiver:
		return fmt.Errorf("%w: num_source %d exceeds num_receiver %d", ErrConfig, cfg.NumSource, cfg.NumReceiver)
	case math.IsNaN(cfg.StdCoef):
		return fmt.Errorf("%w: std_coef is required", ErrConfig)
	case math.IsInf(cfg.StdCoef, 0) || cfg.StdCoef < 0:
		return fmt.Errorf("%w: std_coef must be finite and >= 0, got %v", ErrConfig, cfg.StdCoef)
	case cfg.MinPoints <= 0:
		return fmt.Errorf("%w: points_min_to_interpo must be positive, got %d", ErrConfig, cfg.MinPoints)
	case cfg.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrConfig, cfg.Workers)
	case cfg.PRange.Empty():
		return fmt.Errorf("%w: empty P pick range (%s, %s)", ErrConfig, cfg.PRange.Min, cfg.PRange.Max)
	case cfg.SRange.Empty():
		return fmt.Errorf("%w: empty S pick range (%s, %s)", ErrConfig, cfg.SRange.Min, cfg.SRange.Max)
	}

	return nil
}
