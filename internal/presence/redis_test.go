package presence

import (
	"context"
	"fmt"
	"log"
	"os"
	"pairing-hub/internal/config"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

var (
	redisClient *redis.Client
	directory   Directory
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2-alpine",
	}, func(cfg *docker.HostConfig) {
		cfg.AutoRemove = true
		cfg.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		log.Fatalf("could not start resource: %s", err)
	}

	addr := fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp"))

	err = pool.Retry(func() (err error) {
		directory, redisClient, err = NewRedisDirectory(context.Background(), config.RedisConfig{Addr: addr})
		return
	})
	if err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	code := m.Run()

	if err := redisClient.Close(); err != nil {
		log.Printf("could not close redis client: %s", err)
	}
	if err := pool.Purge(resource); err != nil {
		log.Fatalf("could not purge resource: %s", err)
	}

	os.Exit(code)
}

func cleanup() {
	if err := redisClient.FlushDB(context.Background()).Err(); err != nil {
		log.Panicf("could not flush redis: %s", err)
	}
}

func on(session, connID string) Entry {
	return Entry{Session: session, ConnID: connID}
}

func TestRedisDirectory_SetOnlineOverwrites(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	assert.NoError(t, directory.SetOnline(ctx, "AAA", on("session-1", "c1")))
	assert.NoError(t, directory.SetOnline(ctx, "AAA", on("session-2", "c2")))

	session, err := directory.Lookup(ctx, "AAA")
	assert.NoError(t, err)
	assert.Equal(t, "session-2", session)
}

func TestRedisDirectory_LookupMissing(t *testing.T) {
	defer cleanup()

	session, err := directory.Lookup(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Empty(t, session)
}

func TestRedisDirectory_LookupMany(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	assert.NoError(t, directory.SetOnline(ctx, "AAA", on("s1", "c1")))
	assert.NoError(t, directory.SetOnline(ctx, "CCC", on("s3", "c3")))

	online, err := directory.LookupMany(ctx, []string{"AAA", "BBB", "CCC"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"AAA": "s1", "CCC": "s3"}, online)

	entries, err := directory.LookupEntries(ctx, []string{"AAA", "BBB", "CCC"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]Entry{"AAA": on("s1", "c1"), "CCC": on("s3", "c3")}, entries)

	online, err = directory.LookupMany(ctx, nil)
	assert.NoError(t, err)
	assert.Empty(t, online)
}

func TestRedisDirectory_LookupSkipsUnreadableValues(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	assert.NoError(t, redisClient.Set(ctx, key("OLD"), "bare-session", 0).Err())

	entries, err := directory.LookupEntries(ctx, []string{"OLD"})
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedisDirectory_ClearSession(t *testing.T) {
	tests := []struct {
		name  string
		clear Entry
	}{
		{name: "older session", clear: on("older", "c1")},
		// Reconnecting with the same token keeps the session but not the connection.
		{name: "same session, older connection", clear: on("newer", "c1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer cleanup()
			ctx := context.Background()

			assert.NoError(t, directory.SetOnline(ctx, "AAA", on("newer", "c2")))

			cleared, err := directory.ClearSession(ctx, "AAA", tt.clear)
			assert.NoError(t, err)
			assert.False(t, cleared)

			session, err := directory.Lookup(ctx, "AAA")
			assert.NoError(t, err)
			assert.Equal(t, "newer", session)

			cleared, err = directory.ClearSession(ctx, "AAA", on("newer", "c2"))
			assert.NoError(t, err)
			assert.True(t, cleared)

			session, err = directory.Lookup(ctx, "AAA")
			assert.NoError(t, err)
			assert.Empty(t, session)
		})
	}
}

func TestRedisDirectory_CountOnline(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	for _, uid := range []string{"AB1", "AB2", "XY1"} {
		assert.NoError(t, directory.SetOnline(ctx, uid, on("s", "c-"+uid)))
	}
	assert.NoError(t, directory.ClearOnline(ctx, "AB2"))

	count, err := directory.CountOnline(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = directory.CountOnline(ctx, "AB")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
