package presence

import (
	"context"
	"errors"
	"fmt"
	"pairing-hub/internal/codec"
	"pairing-hub/internal/config"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "presence:"

// clearSessionScript deletes KEYS[1] only when it still holds ARGV[1].
var clearSessionScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisDirectory struct {
	Directory
	client *redis.Client
}

func NewRedisDirectory(ctx context.Context, cfg config.RedisConfig) (Directory, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, nil, err
	}

	return &redisDirectory{client: client}, client, nil
}

func key(uid string) string {
	return keyPrefix + uid
}

// encode is deterministic so ClearSession can compare stored bytes.
func encode(entry Entry) ([]byte, error) {
	value, err := codec.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to encode presence entry: %w", err)
	}
	return value, nil
}

func decode(value string) (Entry, bool) {
	var entry Entry
	if err := codec.Unmarshal([]byte(value), &entry); err != nil || entry.Session == "" {
		return Entry{}, false
	}
	return entry, true
}

func (d *redisDirectory) SetOnline(ctx context.Context, uid string, entry Entry) error {
	value, err := encode(entry)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return d.client.Set(ctx, key(uid), value, 0).Err()
}

func (d *redisDirectory) ClearOnline(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return d.client.Del(ctx, key(uid)).Err()
}

func (d *redisDirectory) ClearSession(ctx context.Context, uid string, entry Entry) (bool, error) {
	value, err := encode(entry)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	deleted, err := clearSessionScript.Run(ctx, d.client, []string{key(uid)}, value).Int()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (d *redisDirectory) Lookup(ctx context.Context, uid string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	value, err := d.client.Get(ctx, key(uid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	entry, _ := decode(value)
	return entry.Session, nil
}

func (d *redisDirectory) LookupMany(ctx context.Context, uids []string) (map[string]string, error) {
	entries, err := d.LookupEntries(ctx, uids)
	if err != nil {
		return nil, err
	}

	online := make(map[string]string, len(entries))
	for uid, entry := range entries {
		online[uid] = entry.Session
	}
	return online, nil
}

func (d *redisDirectory) LookupEntries(ctx context.Context, uids []string) (map[string]Entry, error) {
	online := make(map[string]Entry)
	if len(uids) == 0 {
		return online, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	keys := make([]string, len(uids))
	for i, uid := range uids {
		keys[i] = key(uid)
	}

	values, err := d.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		value, ok := v.(string)
		if !ok {
			continue
		}
		if entry, ok := decode(value); ok {
			online[uids[i]] = entry
		}
	}
	return online, nil
}

func (d *redisDirectory) CountOnline(ctx context.Context, prefix string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count := 0
	iter := d.client.Scan(ctx, 0, keyPrefix+prefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}
