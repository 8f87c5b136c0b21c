package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultTTL       = 30 * 24 * time.Hour
	maxUpdateRetries = 5
)

var ErrContention = errors.New("session: too many concurrent updates")

// RedisStore keeps each log as a Redis list of JSON entries.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: "cellar:session", ttl: ttl}
}

// NewRedisStoreFromURL parses a redis:// URL and checks the server answers.
func NewRedisStoreFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, ttl), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(sid, name string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, sid, name)
}

func decode(name string, raw []string) (*Log, error) {
	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("session: decode %s entry: %w", name, err)
		}
		entries = append(entries, e)
	}
	return NewLog(Limit(name), entries...), nil
}

func (s *RedisStore) Load(ctx context.Context, sid, name string) (*Log, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	raw, err := s.client.LRange(ctx, s.key(sid, name), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	return decode(name, raw)
}

func (s *RedisStore) Update(ctx context.Context, sid, name string, fn func(*Log) error) (*Log, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	key := s.key(sid, name)

	var out *Log
	txf := func(tx *redis.Tx) error {
		raw, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		l, err := decode(name, raw)
		if err != nil {
			return err
		}
		if err := fn(l); err != nil {
			return err
		}

		values := make([]interface{}, 0, l.Len())
		for _, e := range l.Entries() {
			data, err := json.Marshal(e)
			if err != nil {
				return err
			}
			values = append(values, data)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(values) > 0 {
				pipe.RPush(ctx, key, values...)
				pipe.Expire(ctx, key, s.ttl)
			}
			return nil
		})
		if err == nil {
			out = l
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return out, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		return nil, err
	}
	return nil, ErrContention
}

func (s *RedisStore) Clear(ctx context.Context, sid string, names ...string) error {
	if len(names) == 0 {
		names = Names
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, s.key(sid, name))
	}
	return s.client.Del(ctx, keys...).Err()
}
