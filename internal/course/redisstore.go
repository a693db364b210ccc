package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "course:"
	redisNamesKey  = "courses:names"
)

// RedisStore keeps each record as a JSON value under course:{name} and the
// set of known names under courses:names for enumeration.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.CourseName) == "" {
		return ErrEmptyName
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("course: encode record: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisKeyPrefix+rec.CourseName, data, 0)
		pipe.SAdd(ctx, redisNamesKey, rec.CourseName)
		return nil
	})
	return err
}

func (s *RedisStore) Load(ctx context.Context, name string) (*Record, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("course: read record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("course: decode record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) ListNames(ctx context.Context) ([]string, error) {
	names, err := s.rdb.SMembers(ctx, redisNamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("course: list names: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, redisKeyPrefix+name)
		pipe.SRem(ctx, redisNamesKey, name)
		return nil
	})
	return err
}

var _ Store = (*RedisStore)(nil)
