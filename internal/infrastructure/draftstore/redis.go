package draftstore

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/ffmaxarena/arena-api/internal/domain/draft"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ffmaxarena:draft:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type redisRecord struct {
	Payload   jsoniter.RawMessage `json:"payload"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// RedisStore keeps drafts in Redis with a sliding TTL refreshed on every save.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// OpenRedis parses a redis:// URL and pings the server.
func OpenRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, crerr.Wrap(err, "parse redis url")
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, crerr.Wrap(err, "ping redis")
	}
	return rdb, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (draft.Draft, bool, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return draft.Draft{}, false, nil
	}
	if err != nil {
		return draft.Draft{}, false, crerr.Wrapf(err, "get draft %s", key)
	}

	item, err := decodeRecord(key, raw)
	if err != nil {
		return draft.Draft{}, false, err
	}
	return item, true, nil
}

func (s *RedisStore) Put(ctx context.Context, item draft.Draft) error {
	raw, err := encodeRecord(item)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+item.Key, raw, s.ttl).Err(); err != nil {
		return crerr.Wrapf(err, "put draft %s", item.Key)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return crerr.Wrapf(err, "delete draft %s", key)
	}
	return nil
}

func encodeRecord(item draft.Draft) ([]byte, error) {
	raw, err := json.Marshal(redisRecord{Payload: jsoniter.RawMessage(item.Payload), UpdatedAt: item.UpdatedAt.UTC()})
	if err != nil {
		return nil, crerr.Wrapf(err, "encode draft %s", item.Key)
	}
	return raw, nil
}

func decodeRecord(key string, raw []byte) (draft.Draft, error) {
	var record redisRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return draft.Draft{}, crerr.Wrapf(err, "decode draft %s", key)
	}
	return draft.Draft{
		Key:       key,
		Payload:   []byte(record.Payload),
		UpdatedAt: record.UpdatedAt,
	}, nil
}
