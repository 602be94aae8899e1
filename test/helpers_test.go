//go:build integration
// +build integration

package test

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/hasher"
	"github.com/MrEthical07/goCred/records"
)

var integrationPepper = []byte("integration-pepper")

func newIntegrationStore(t *testing.T) (*records.Store, *redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := records.NewStore(rdb, "cred")

	return store, rdb, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func newLegacyManager(t *testing.T) *goCred.Manager {
	t.Helper()

	m, err := goCred.New().
		WithMinimumComplexity(0).
		WithScheme(1, hasher.NewBcrypt(4, integrationPepper)).
		Build()
	if err != nil {
		t.Fatalf("build legacy manager: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func newMigratedManager(t *testing.T) *goCred.Manager {
	t.Helper()

	m, err := goCred.New().
		WithMinimumComplexity(0).
		WithScheme(2, hasher.NewArgon2id(integrationPepper)).
		WithScheme(1, hasher.NewBcrypt(4, integrationPepper)).
		Build()
	if err != nil {
		t.Fatalf("build migrated manager: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func seedUser(t *testing.T, m *goCred.Manager, store *records.Store, userID, password string) *records.Record {
	t.Helper()

	version, hash, err := m.Hash(context.Background(), rand.Reader, []byte(password))
	if err != nil {
		t.Fatalf("seed hash: %v", err)
	}
	record, err := store.SetPassword(context.Background(), userID, goCred.Credential{
		Version: version,
		Hash:    hash,
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return record
}
