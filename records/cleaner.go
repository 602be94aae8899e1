package records

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CleanerConfig controls the periodic pruning of superseded records.
type CleanerConfig struct {
	// Interval between sweeps; 0 means one minute.
	Interval time.Duration
	// Retention is how many records per user survive a sweep, the active
	// one included; 0 means 10. The active record is never pruned.
	Retention int
}

// Cleaner periodically prunes superseded password records beyond the
// retention depth. History order is preserved for the records that remain.
type Cleaner struct {
	store     *Store
	interval  time.Duration
	retention int

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewCleaner builds a stopped Cleaner over an existing store.
func NewCleaner(store *Store, cfg CleanerConfig) *Cleaner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 10
	}

	return &Cleaner{
		store:     store,
		interval:  cfg.Interval,
		retention: cfg.Retention,
		done:      make(chan struct{}),
	}
}

// Start launches the sweep loop. Sweep errors are dropped; the next tick
// retries from scratch.
func (c *Cleaner) Start() {
	c.wg.Add(1)
	go c.run()
}

func (c *Cleaner) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), c.interval)
			_, _ = c.Sweep(ctx)
			cancel()
		case <-c.done:
			return
		}
	}
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish.
func (c *Cleaner) Stop() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
}

// Sweep walks every user's history once and prunes beyond the retention
// depth. It returns how many records were deleted.
func (c *Cleaner) Sweep(ctx context.Context) (int, error) {
	pruned := 0

	iter := c.store.redis.Scan(ctx, 0, c.store.prefix+":hist:*", 64).Iterator()
	for iter.Next(ctx) {
		userID := iter.Val()[len(c.store.prefix+":hist:"):]

		n, err := c.SweepUser(ctx, userID)
		if err != nil {
			return pruned, err
		}
		pruned += n
	}
	if err := iter.Err(); err != nil {
		return pruned, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return pruned, nil
}

// SweepUser prunes one user's superseded records beyond the retention
// depth and trims the history list to match.
func (c *Cleaner) SweepUser(ctx context.Context, userID string) (int, error) {
	histKey := c.store.historyKey(userID)

	ids, err := c.store.redis.LRange(ctx, histKey, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(ids) <= c.retention {
		return 0, nil
	}

	// Newest first; the head of the list is the active record.
	stale := ids[c.retention:]

	keys := make([]string, len(stale))
	for i, id := range stale {
		keys[i] = c.store.recordKey(userID, id)
	}

	pipe := c.store.redis.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.LTrim(ctx, histKey, 0, int64(c.retention)-1)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return len(stale), nil
}
