package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/hasher"
	"github.com/MrEthical07/goCred/records"
)

type userState struct {
	id     string
	active *records.Record
	mu     sync.Mutex
}

func main() {
	var (
		users       = flag.Int("users", 1000, "number of users to seed")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		ops         = flag.Int("ops", 5000, "operations in the verify phase")
		workers     = flag.Int("workers", 0, "hashing pool size; 0 means GOMAXPROCS")
		bcryptCost  = flag.Int("bcrypt-cost", 6, "bcrypt cost for the seeded legacy hashes")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "cred", "record key prefix")
	)
	flag.Parse()

	if *users <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	store := records.NewStore(client, *prefix)

	// Seeding goes through a single-scheme manager so every stored hash is
	// a legacy bcrypt one, the shape of a deployment about to migrate.
	seeder, err := goCred.New().
		WithMinimumComplexity(0).
		WithScheme(1, hasher.NewBcrypt(*bcryptCost, nil)).
		WithWorkers(*workers, 0).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build seeder: %v\n", err)
		os.Exit(1)
	}

	states := make([]userState, *users)
	fmt.Printf("seeding %d users...\n", *users)
	startSeed := time.Now()
	for i := 0; i < *users; i++ {
		userID := fmt.Sprintf("u-%d", i)
		version, hash, err := seeder.Hash(ctx, rand.Reader, passwordFor(i))
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed hash failed: %v\n", err)
			os.Exit(1)
		}
		record, err := store.SetPassword(ctx, userID, goCred.Credential{Version: version, Hash: hash})
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed store failed: %v\n", err)
			os.Exit(1)
		}
		states[i] = userState{id: userID, active: record}
	}
	seeder.Close()
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	manager, err := goCred.New().
		WithMinimumComplexity(0).
		WithScheme(2, hasher.NewArgon2id(nil)).
		WithScheme(1, hasher.NewBcrypt(*bcryptCost, nil)).
		WithWorkers(*workers, 0).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build manager: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	verifyStats := runVerifyPhase(ctx, manager, store, states, *ops, *concurrency)
	upgradeStats := runUpgradePhase(ctx, manager, store, states, *concurrency)

	fmt.Println("---- results ----")
	printStats("verify", verifyStats)
	printStats("upgrade", upgradeStats)

	snap := manager.MetricsSnapshot()
	fmt.Printf("manager: verify_ok=%d verify_fail=%d upgrades=%d skipped=%d\n",
		snap.Counters[goCred.MetricVerifySuccess],
		snap.Counters[goCred.MetricVerifyFailure],
		snap.Counters[goCred.MetricUpgradePerformed],
		snap.Counters[goCred.MetricUpgradeSkipped],
	)
}

func runVerifyPhase(ctx context.Context, manager *goCred.Manager, store *records.Store, states []userState, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := mrand.New(mrand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(states))
				state := &states[idx]

				state.mu.Lock()
				version := state.active.Version
				hash := state.active.Hash
				state.mu.Unlock()

				t0 := time.Now()
				err := manager.Verify(ctx, version, passwordFor(idx), hash)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runUpgradePhase(ctx context.Context, manager *goCred.Manager, store *records.Store, states []userState, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, len(states))
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= len(states) {
					return
				}
				state := &states[i]

				state.mu.Lock()
				active := state.active

				t0 := time.Now()
				cred, err := manager.VerifyAndUpgrade(ctx, rand.Reader, active.Version, passwordFor(i), active.Hash)
				if err == nil && cred != nil {
					var upgraded *records.Record
					upgraded, err = store.UpgradePassword(ctx, state.id, active, *cred)
					if err == nil {
						state.active = upgraded
					}
				}
				d := time.Since(t0)
				state.mu.Unlock()

				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

// passwordFor returns a fresh slice every call: the manager wipes its input.
func passwordFor(i int) []byte {
	return []byte(fmt.Sprintf("correct-horse-%d", i))
}
