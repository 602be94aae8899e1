package goCred

import (
	"errors"

	"github.com/MrEthical07/goCred/hasher"
	"github.com/MrEthical07/goCred/internal/cryptopool"
)

// Builder assembles a [Manager] from an ordered scheme list and policy
// settings. A Builder is single-use: Build succeeds at most once.
type Builder struct {
	config Config
	built  bool
}

// New returns a Builder preloaded with default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration at once.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithScheme appends one (version, hasher) pair to the scheme list. The
// first scheme added becomes the current one; later additions are legacy
// verification-only schemes.
func (b *Builder) WithScheme(version SchemeVersion, h hasher.Hasher) *Builder {
	b.config.Schemes = append(b.config.Schemes, SchemeConfig{Version: version, Hasher: h})
	return b
}

// WithMinimumComplexity sets the lowest acceptable zxcvbn score for new
// passwords.
func (b *Builder) WithMinimumComplexity(minimum int) *Builder {
	b.config.MinimumComplexity = minimum
	return b
}

// WithRestAuthProvider threads a delegated-auth endpoint configuration
// through the manager for external handlers.
func (b *Builder) WithRestAuthProvider(cfg *RestAuthProviderConfig) *Builder {
	b.config.RestAuthProvider = cfg
	return b
}

// WithWorkers sizes the dedicated hashing pool.
func (b *Builder) WithWorkers(count, backlog int) *Builder {
	b.config.Workers = WorkersConfig{Count: count, Backlog: backlog}
	return b
}

// WithMetricsEnabled toggles counter recording.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles latency histogram recording.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and constructs an enabled Manager.
//
// The first configured scheme becomes current; every later scheme lands in
// the legacy lookup table, with a duplicated version resolving to the last
// occurrence.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	current := cfg.Schemes[0]
	legacy := make(map[SchemeVersion]hasher.Hasher, len(cfg.Schemes)-1)
	for _, s := range cfg.Schemes[1:] {
		legacy[s.Version] = s.Hasher
	}

	inner := &managerInner{
		minimumComplexity: cfg.MinimumComplexity,
		currentVersion:    current.Version,
		currentHasher:     current.Hasher,
		legacy:            legacy,
		restAuthProvider:  cfg.RestAuthProvider,
		pool:              cryptopool.New(cfg.Workers.Count, cfg.Workers.Backlog),
		metrics:           NewMetrics(cfg.Metrics),
	}

	b.built = true

	return &Manager{inner: inner}, nil
}
