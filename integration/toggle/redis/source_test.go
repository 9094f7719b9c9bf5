package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/toggle"
	"github.com/dmitrymomot/fanout/integration/toggle/redis"
)

type fakeClient struct {
	val  string
	err  error
	keys []string
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	f.keys = append(f.keys, key)
	return goredis.NewStringResult(f.val, f.err)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := redis.New(nil, "flag")
	assert.ErrorIs(t, err, redis.ErrNilClient)

	_, err = redis.New(&fakeClient{}, "")
	assert.ErrorIs(t, err, redis.ErrEmptyKey)
}

func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns value", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{val: "false"}
		src, err := redis.New(client, "flags:notify")
		require.NoError(t, err)

		val, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "false", val)
		assert.Equal(t, []string{"flags:notify"}, client.keys)
	})

	t.Run("missing key reads empty", func(t *testing.T) {
		t.Parallel()

		src, err := redis.New(&fakeClient{err: goredis.Nil}, "flags:notify")
		require.NoError(t, err)

		val, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, val)
	})

	t.Run("connection error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		src, err := redis.New(&fakeClient{err: cause}, "flags:notify")
		require.NoError(t, err)

		_, err = src.Fetch(context.Background())
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "flags:notify")
	})
}

func TestSourceDrivesToggle(t *testing.T) {
	t.Parallel()

	client := &fakeClient{val: "0"}
	src, err := redis.New(client, "flags:notify")
	require.NoError(t, err)

	tg, err := toggle.New(src, toggle.WithInterval(time.Minute))
	require.NoError(t, err)

	require.NoError(t, tg.Refresh(context.Background()))
	assert.False(t, tg.Enabled())

	client.val, client.err = "", goredis.Nil
	require.NoError(t, tg.Refresh(context.Background()))
	assert.True(t, tg.Enabled(), "deleted key enables")
}
