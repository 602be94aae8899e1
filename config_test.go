package goCred

import (
	"errors"
	"testing"

	"github.com/MrEthical07/goCred/hasher"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Schemes:           []SchemeConfig{{Version: 1, Hasher: hasher.NewArgon2id(nil)}},
		MinimumComplexity: 3,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	empty := Config{MinimumComplexity: 3}
	if err := empty.Validate(); !errors.Is(err, ErrNoSchemes) {
		t.Fatalf("expected ErrNoSchemes, got %v", err)
	}

	zeroVersion := valid
	zeroVersion.Schemes = []SchemeConfig{{Version: 0, Hasher: hasher.NewArgon2id(nil)}}
	if err := zeroVersion.Validate(); err == nil {
		t.Fatal("expected version 0 to be rejected")
	}

	var unset hasher.Hasher
	badHasher := valid
	badHasher.Schemes = []SchemeConfig{{Version: 1, Hasher: unset}}
	if err := badHasher.Validate(); err == nil {
		t.Fatal("expected unconstructed hasher to be rejected")
	}

	badComplexity := valid
	badComplexity.MinimumComplexity = 7
	if err := badComplexity.Validate(); err == nil {
		t.Fatal("expected out-of-range complexity to be rejected")
	}

	badWorkers := valid
	badWorkers.Workers = WorkersConfig{Count: -1}
	if err := badWorkers.Validate(); err == nil {
		t.Fatal("expected negative worker count to be rejected")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.MinimumComplexity != 3 {
		t.Fatalf("expected default minimum complexity 3, got %d", cfg.MinimumComplexity)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("expected metrics enabled by default")
	}
	if cfg.Metrics.EnableLatencyHistograms {
		t.Fatal("expected latency histograms disabled by default")
	}
}

func TestCloneConfigIsolation(t *testing.T) {
	rest := &RestAuthProviderConfig{URL: "https://auth.example.com/check"}
	cfg := Config{
		Schemes:          []SchemeConfig{{Version: 1, Hasher: hasher.NewArgon2id(nil)}},
		RestAuthProvider: rest,
	}

	cloned := cloneConfig(cfg)
	cloned.Schemes[0].Version = 9
	cloned.RestAuthProvider.URL = "https://other.example.com"

	if cfg.Schemes[0].Version != 1 {
		t.Fatalf("scheme mutation leaked into source: %d", cfg.Schemes[0].Version)
	}
	if rest.URL != "https://auth.example.com/check" {
		t.Fatalf("rest provider mutation leaked into source: %q", rest.URL)
	}
}
