package goCred

import (
	"errors"
	"fmt"

	"github.com/MrEthical07/goCred/hasher"
	"github.com/MrEthical07/goCred/strength"
)

// Config defines the full construction-time configuration of a [Manager].
//
// Config instances are consumed once at Build and treated as immutable
// afterwards; there is no runtime reconfiguration.
type Config struct {
	// Schemes is the ordered scheme list. The first entry hashes all new
	// passwords; the rest are retained for verification only.
	Schemes []SchemeConfig

	// MinimumComplexity is the lowest acceptable zxcvbn score (0-4) for
	// new passwords.
	MinimumComplexity int

	// RestAuthProvider is passed through to external handlers untouched.
	RestAuthProvider *RestAuthProviderConfig

	Workers WorkersConfig
	Metrics MetricsConfig
}

// SchemeConfig binds a scheme version to its hasher.
type SchemeConfig struct {
	Version SchemeVersion
	Hasher  hasher.Hasher
}

/*
====================================
WORKERS CONFIG
====================================
*/

// WorkersConfig sizes the dedicated pool for CPU-bound hashing work.
type WorkersConfig struct {
	// Count is the number of workers; 0 means GOMAXPROCS.
	Count int
	// Backlog is the submission queue depth; 0 means twice the workers.
	Backlog int
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the manager's internal counters and latency
// histograms.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		MinimumComplexity: 3,
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for construction-time errors.
func (c Config) Validate() error {
	if len(c.Schemes) == 0 {
		return ErrNoSchemes
	}

	for i, s := range c.Schemes {
		if s.Version == 0 {
			return fmt.Errorf("scheme %d: version must be a positive integer", i)
		}
		if !s.Hasher.Valid() {
			return fmt.Errorf("scheme %d (version %d): hasher not constructed", i, s.Version)
		}
	}

	if c.MinimumComplexity < 0 || c.MinimumComplexity > strength.MaxScore {
		return errors.New("MinimumComplexity must be between 0 and 4")
	}

	if c.Workers.Count < 0 || c.Workers.Backlog < 0 {
		return errors.New("Workers sizes must not be negative")
	}

	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg

	out.Schemes = make([]SchemeConfig, len(cfg.Schemes))
	copy(out.Schemes, cfg.Schemes)

	if cfg.RestAuthProvider != nil {
		rest := *cfg.RestAuthProvider
		out.RestAuthProvider = &rest
	}

	return out
}
