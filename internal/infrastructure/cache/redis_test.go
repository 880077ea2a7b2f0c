package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedis_NilIsAnEmptyCache(t *testing.T) {
	ctx := context.Background()
	for name, r := range map[string]*Redis{
		"nil pointer": nil,
		"nil client":  NewRedisWithClient(nil, 0, nil),
	} {
		t.Run(name, func(t *testing.T) {
			var out map[string]string
			ok, err := r.GetJSON(ctx, "k", &out)
			assert.False(t, ok)
			assert.NoError(t, err)
			assert.NoError(t, r.SetJSON(ctx, "k", map[string]string{"a": "b"}, 0))
			assert.NoError(t, r.Delete(ctx, "k"))
			assert.NoError(t, r.DeleteByPattern(ctx, "recommendations:v1:*"))
			assert.Error(t, r.Ping(ctx))
			assert.NoError(t, r.Close())
		})
	}
}

func TestRedis_DefaultTTL(t *testing.T) {
	assert.Equal(t, defaultTTL, NewRedisWithClient(nil, 0, nil).ttl)
	assert.Equal(t, time.Minute, NewRedisWithClient(nil, time.Minute, nil).ttl)
}

func TestRedis_UnreachableServerSurfacesErrorsAndWarnsOnce(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedisWithClient(client, time.Minute, zap.New(core))
	t.Cleanup(func() { _ = r.Close() })
	ctx := context.Background()

	var out []string
	ok, err := r.GetJSON(ctx, "recommendations:v1:x", &out)
	assert.False(t, ok)
	require.Error(t, err)
	assert.Error(t, r.SetJSON(ctx, "recommendations:v1:x", []string{"a"}, 0))
	assert.Error(t, r.Delete(ctx, "recommendations:v1:x"))
	assert.Error(t, r.DeleteByPattern(ctx, "recommendations:v1:*"))

	assert.Equal(t, 1, logs.FilterMessage("redis command failed, cache degraded").Len())
}
