package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conectaleads/internal/logging"
)

// fakeClient is an in-memory redisClient.
type fakeClient struct {
	data   map[string]string
	getErr error
	setErr error
	ttls   map[string]time.Duration
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeClient) Ping(context.Context) *redis.StatusCmd { return redis.NewStatusResult("PONG", nil) }

func (f *fakeClient) Close() error { return nil }

type point struct {
	X int `json:"x"`
}

func TestRedis_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	cli := newFakeClient()
	c := newRedis(cli, "conectaleads", logging.New(&bytes.Buffer{}, time.UTC))

	require.NoError(t, c.Set(ctx, "p", point{X: 3}, time.Minute))
	assert.Equal(t, `{"x":3}`, cli.data["conectaleads:p"])
	assert.Equal(t, time.Minute, cli.ttls["conectaleads:p"])

	var got point
	ok, err := c.Get(ctx, "p", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, got.X)

	require.NoError(t, c.Delete(ctx, "p"))
	ok, err = c.Get(ctx, "p", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, c.Ping(ctx))
}

func TestRedis_GetErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	cli := newFakeClient()
	cli.getErr = errors.New("connection refused")
	c := newRedis(cli, "", logging.New(&buf, time.UTC))

	var got point
	ok, err := c.Get(context.Background(), "p", &got)
	assert.False(t, ok)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "cache_get_failed")
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	cli := newFakeClient()
	c := newRedis(cli, "", logging.New(&bytes.Buffer{}, time.UTC))

	calls := 0
	load := func(context.Context) (point, error) {
		calls++
		return point{X: 7}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Remember(ctx, c, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 7, v.X)
	}
	assert.Equal(t, 1, calls)

	t.Run("broken cache falls through to load", func(t *testing.T) {
		broken := newFakeClient()
		broken.getErr = errors.New("down")
		broken.setErr = errors.New("down")
		bc := newRedis(broken, "", logging.New(&bytes.Buffer{}, time.UTC))

		v, err := Remember(ctx, bc, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 7, v.X)
	})

	t.Run("load error is returned and not cached", func(t *testing.T) {
		_, err := Remember(ctx, Noop{}, "k", time.Minute, func(context.Context) (point, error) {
			return point{}, errors.New("query failed")
		})
		assert.EqualError(t, err, "query failed")
	})
}
