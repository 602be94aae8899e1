package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	goCred "github.com/MrEthical07/goCred"
)

// ErrNoActivePassword is returned when a user has no active password record.
var ErrNoActivePassword = errors.New("no active password record")

// ErrConcurrentUpdate is returned when an upgrade lost the race against
// another writer; the caller should re-read the active record.
var ErrConcurrentUpdate = errors.New("password record concurrently updated")

// ErrRedisUnavailable is an exported constant or variable used by the password record store.
var ErrRedisUnavailable = errors.New("records redis unavailable")

const setPasswordScript = `
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
redis.call("LPUSH", KEYS[3], ARGV[2])
return 1
`

var setPasswordLua = redis.NewScript(setPasswordScript)

const upgradePasswordScript = `
local active = redis.call("GET", KEYS[2])
if active ~= ARGV[3] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
redis.call("LPUSH", KEYS[3], ARGV[2])
return 1
`

var upgradePasswordLua = redis.NewScript(upgradePasswordScript)

// Store persists password records in redis.
type Store struct {
	redis  redis.UniversalClient
	prefix string

	// now is swappable for tests.
	now func() time.Time
}

// NewStore builds a Store on an existing redis client. An empty prefix
// defaults to "cred".
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "cred"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *Store) recordKey(userID, recordID string) string {
	return s.prefix + ":rec:" + userID + ":" + recordID
}

func (s *Store) activeKey(userID string) string {
	return s.prefix + ":active:" + userID
}

func (s *Store) historyKey(userID string) string {
	return s.prefix + ":hist:" + userID
}

// Active returns the user's current password record.
func (s *Store) Active(ctx context.Context, userID string) (*Record, error) {
	id, err := s.redis.Get(ctx, s.activeKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoActivePassword
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return s.getRecord(ctx, userID, id)
}

// SetPassword stores a directly set credential as the user's new active
// record, replacing whatever was active before. It returns the stored
// record.
func (s *Store) SetPassword(ctx context.Context, userID string, cred goCred.Credential) (*Record, error) {
	record := &Record{
		ID:        uuid.New(),
		Version:   cred.Version,
		Hash:      cred.Hash,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}

	encoded, err := encodeRecord(record)
	if err != nil {
		return nil, err
	}

	keys := []string{
		s.recordKey(userID, record.ID.String()),
		s.activeKey(userID),
		s.historyKey(userID),
	}
	if err := setPasswordLua.Run(ctx, s.redis, keys, encoded, record.ID.String()).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return record, nil
}

// UpgradePassword stores an upgraded credential as the user's new active
// record, with a lineage back-reference to the record it replaces. The
// active pointer swap is atomic: if another writer replaced the active
// record in the meantime, UpgradePassword fails with [ErrConcurrentUpdate]
// and writes nothing. The superseded record is left untouched.
func (s *Store) UpgradePassword(ctx context.Context, userID string, from *Record, cred goCred.Credential) (*Record, error) {
	record := &Record{
		ID:             uuid.New(),
		Version:        cred.Version,
		Hash:           cred.Hash,
		UpgradedFromID: from.ID,
		CreatedAt:      s.now().UTC().Truncate(time.Second),
	}

	encoded, err := encodeRecord(record)
	if err != nil {
		return nil, err
	}

	keys := []string{
		s.recordKey(userID, record.ID.String()),
		s.activeKey(userID),
		s.historyKey(userID),
	}
	swapped, err := upgradePasswordLua.Run(ctx, s.redis, keys,
		encoded, record.ID.String(), from.ID.String()).Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if swapped != 1 {
		return nil, ErrConcurrentUpdate
	}

	return record, nil
}

// History returns the user's password records, newest first. Records
// already pruned by the [Cleaner] are skipped.
func (s *Store) History(ctx context.Context, userID string) ([]*Record, error) {
	ids, err := s.redis.LRange(ctx, s.historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recordKey(userID, id)
	}

	blobs, err := s.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	out := make([]*Record, 0, len(blobs))
	for _, blob := range blobs {
		raw, ok := blob.(string)
		if !ok {
			continue
		}
		record, err := decodeRecord([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}

	return out, nil
}

func (s *Store) getRecord(ctx context.Context, userID, recordID string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.recordKey(userID, recordID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoActivePassword
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return decodeRecord(data)
}
