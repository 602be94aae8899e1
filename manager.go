package goCred

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrEthical07/goCred/hasher"
	"github.com/MrEthical07/goCred/internal/cryptopool"
	"github.com/MrEthical07/goCred/internal/rng"
	"github.com/MrEthical07/goCred/internal/secrets"
	"github.com/MrEthical07/goCred/strength"
)

// Manager is the credential-hashing facade: it owns the scheme registry and
// complexity gate, and bridges all hashing and verification onto a worker
// pool reserved for CPU-bound work.
//
// A Manager is either enabled (built through [Builder.Build]) or disabled
// ([Disabled]); a disabled manager fails every operation with
// [ErrManagerDisabled] and performs no work. Managers are immutable after
// construction and safe for unrestricted concurrent use.
//
// Every operation that receives raw password bytes takes ownership of the
// slice and zeroes it before returning, on success and failure alike.
type Manager struct {
	// nil means disabled; there is no partially configured state.
	inner *managerInner
}

type managerInner struct {
	minimumComplexity int
	currentVersion    SchemeVersion
	currentHasher     hasher.Hasher

	// Old schemes used only for verification.
	legacy map[SchemeVersion]hasher.Hasher

	restAuthProvider *RestAuthProviderConfig

	pool    *cryptopool.Pool
	metrics *Metrics
}

// Disabled returns a manager with password authentication turned off
// entirely. Every operation on it returns [ErrManagerDisabled].
func Disabled() *Manager {
	return &Manager{}
}

// Enabled reports whether the manager was built with at least one scheme.
func (m *Manager) Enabled() bool {
	return m != nil && m.inner != nil
}

// Close stops the hashing pool. In-flight work runs to completion; the
// manager must not be used afterwards. Close on a disabled manager is a
// no-op.
func (m *Manager) Close() {
	if m == nil || m.inner == nil {
		return
	}
	m.inner.pool.Close()
}

// MetricsSnapshot copies the manager's counters and histograms. A disabled
// manager reports empty maps.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil || m.inner == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return m.inner.metrics.Snapshot()
}

func (m *Manager) getInner() (*managerInner, error) {
	if m == nil || m.inner == nil {
		return nil, ErrManagerDisabled
	}
	return m.inner, nil
}

// IsPasswordComplexEnough reports whether password meets the configured
// minimum zxcvbn score. Fails only when the manager is disabled.
func (m *Manager) IsPasswordComplexEnough(password string) (bool, error) {
	inner, err := m.getInner()
	if err != nil {
		return false, err
	}

	ok := strength.Acceptable(password, inner.minimumComplexity)
	if !ok {
		inner.metrics.Inc(MetricComplexityRejected)
	}
	return ok, nil
}

// Hash hashes password under the current scheme, drawing all randomness
// from a detached generator seeded by src, and returns the scheme version
// together with the encoded hash.
func (m *Manager) Hash(ctx context.Context, src io.Reader, password []byte) (SchemeVersion, string, error) {
	inner, err := m.getInner()
	if err != nil {
		secrets.Wipe(password)
		return 0, "", err
	}

	pw := secrets.New(password)
	secrets.Wipe(password)

	return inner.hash(ctx, src, pw)
}

// hash runs the current hasher on the pool. It consumes pw: the buffer is
// destroyed once the pool releases the job, on every path.
func (inner *managerInner) hash(ctx context.Context, src io.Reader, pw *secrets.Buffer) (SchemeVersion, string, error) {
	// The caller's randomness source may not outlive this call, so seed a
	// self-contained generator before crossing into the pool.
	r, err := rng.NewReader(src)
	if err != nil {
		pw.Destroy()
		inner.metrics.Inc(MetricHashFailure)
		return 0, "", wrapCrypto(err)
	}

	version := inner.currentVersion
	start := time.Now()

	encoded, err := inner.pool.Do(ctx, func() (string, error) {
		return inner.currentHasher.Hash(r, pw.Bytes())
	}, pw.Destroy)

	inner.metrics.Observe(MetricHashLatency, time.Since(start))

	if err != nil {
		inner.metrics.Inc(MetricHashFailure)
		return 0, "", wrapCrypto(err)
	}

	inner.metrics.Inc(MetricHashSuccess)
	return version, encoded, nil
}

// Verify checks password against an encoded hash issued under the given
// scheme version. An unknown version fails with a [SchemeNotFoundError]
// before any cryptographic work happens.
func (m *Manager) Verify(ctx context.Context, version SchemeVersion, password []byte, encoded string) error {
	inner, err := m.getInner()
	if err != nil {
		secrets.Wipe(password)
		return err
	}

	pw := secrets.New(password)
	secrets.Wipe(password)

	return inner.verify(ctx, version, pw, encoded)
}

// verify resolves the scheme and runs verification on the pool. It consumes
// pw like hash consumes its buffer.
func (inner *managerInner) verify(ctx context.Context, version SchemeVersion, pw *secrets.Buffer, encoded string) error {
	h := inner.currentHasher
	if version != inner.currentVersion {
		var ok bool
		h, ok = inner.legacy[version]
		if !ok {
			pw.Destroy()
			inner.metrics.Inc(MetricVerifySchemeNotFound)
			return &SchemeNotFoundError{Version: version}
		}
	}

	start := time.Now()

	_, err := inner.pool.Do(ctx, func() (string, error) {
		return "", h.Verify(encoded, pw.Bytes())
	}, pw.Destroy)

	inner.metrics.Observe(MetricVerifyLatency, time.Since(start))

	if err != nil {
		if errors.Is(err, ErrVerificationFailed) {
			inner.metrics.Inc(MetricVerifyFailure)
		}
		return err
	}

	inner.metrics.Inc(MetricVerifySuccess)
	return nil
}

// VerifyAndUpgrade verifies password against an encoded hash and, when the
// hash was issued under a non-current scheme, speculatively re-hashes the
// password under the current scheme at the same time. On success it returns
// the upgraded credential, or nil when the stored hash is already current.
// When verification fails, the speculative hash is discarded and never
// returned. An unknown version fails with a [SchemeNotFoundError] before
// any cryptographic work happens.
//
// The returned credential is not persisted here; the storage collaborator
// applies it as the user's new active password record.
func (m *Manager) VerifyAndUpgrade(ctx context.Context, src io.Reader, version SchemeVersion, password []byte, encoded string) (*Credential, error) {
	inner, err := m.getInner()
	if err != nil {
		secrets.Wipe(password)
		return nil, err
	}

	// Already on the current scheme: verify only, nothing speculative.
	if version == inner.currentVersion {
		pw := secrets.New(password)
		secrets.Wipe(password)

		if err := inner.verify(ctx, version, pw, encoded); err != nil {
			return nil, err
		}
		inner.metrics.Inc(MetricUpgradeSkipped)
		return nil, nil
	}

	// An unknown version can never verify, so it fails here before the
	// speculative hash is even scheduled.
	if _, ok := inner.legacy[version]; !ok {
		secrets.Wipe(password)
		inner.metrics.Inc(MetricVerifySchemeNotFound)
		return nil, &SchemeNotFoundError{Version: version}
	}

	// Both halves are CPU-bound and independent, so they run concurrently:
	// serializing them would double the added login latency, at the cost
	// of a wasted hash on the rare failed verification.
	verifyPw := secrets.New(password)
	hashPw := secrets.New(password)
	secrets.Wipe(password)

	var (
		g          errgroup.Group
		upgraded   Credential
		upgradeErr error
	)

	g.Go(func() error {
		v, h, err := inner.hash(ctx, src, hashPw)
		if err != nil {
			upgradeErr = err
			return nil
		}
		upgraded = Credential{Version: v, Hash: h}
		return nil
	})

	g.Go(func() error {
		return inner.verify(ctx, version, verifyPw, encoded)
	})

	// A verification failure wins over anything that happened to the
	// speculative hash; the new hash is discarded unseen.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if upgradeErr != nil {
		return nil, upgradeErr
	}

	inner.metrics.Inc(MetricUpgradePerformed)
	return &upgraded, nil
}

// RestAuthProvider returns the delegated-auth configuration, if any. It is
// a plain accessor: the manager never calls the provider.
func (m *Manager) RestAuthProvider() (*RestAuthProviderConfig, error) {
	inner, err := m.getInner()
	if err != nil {
		return nil, err
	}
	return inner.restAuthProvider, nil
}

// wrapCrypto folds pool and primitive failures into the error taxonomy.
// Context cancellation passes through untouched.
func wrapCrypto(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, cryptopool.ErrClosed) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrCryptoFailure, err)
}
