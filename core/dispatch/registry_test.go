package dispatch_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/dispatch"
	"github.com/dmitrymomot/fanout/core/predicate"
)

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("duplicate identity keeps the first registration", func(t *testing.T) {
		t.Parallel()

		var first, second atomic.Int32
		reg := dispatch.NewRegistry[string]()

		ok, err := reg.Register(dispatch.SubscriberFunc[string](func(string) { first.Add(1) }), predicate.Always[string](), "sub")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = reg.Register(dispatch.SubscriberFunc[string](func(string) { second.Add(1) }), predicate.Always[string](), "sub")
		require.NoError(t, err)
		assert.False(t, ok)

		snapshot := reg.Snapshot()
		require.Len(t, snapshot, 1)
		snapshot[0].Subscriber.Receive("msg")

		assert.Equal(t, int32(1), first.Load())
		assert.Equal(t, int32(0), second.Load())
	})

	t.Run("invalid arguments", func(t *testing.T) {
		t.Parallel()

		reg := dispatch.NewRegistry[string]()
		sub := dispatch.SubscriberFunc[string](func(string) {})
		var nilFunc dispatch.SubscriberFunc[string]
		var nilChain *predicate.Chain[string]

		tests := []struct {
			name   string
			sub    dispatch.Subscriber[string]
			pred   predicate.Predicate[string]
			id     string
			target error
		}{
			{"nil subscriber", nil, predicate.Always[string](), "a", dispatch.ErrNilSubscriber},
			{"nil subscriber func", nilFunc, predicate.Always[string](), "a", dispatch.ErrNilSubscriber},
			{"nil predicate", sub, nil, "a", dispatch.ErrNilPredicate},
			{"nil chain", sub, nilChain, "a", dispatch.ErrNilPredicate},
			{"empty id", sub, predicate.Always[string](), "", dispatch.ErrEmptyID},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ok, err := reg.Register(tt.sub, tt.pred, tt.id)
				assert.False(t, ok)
				assert.ErrorIs(t, err, dispatch.ErrInvalidArgument)
				assert.ErrorIs(t, err, tt.target)
			})
		}

		assert.Equal(t, 0, reg.Len())
	})

	t.Run("concurrent registration of one identity has a single winner", func(t *testing.T) {
		t.Parallel()

		reg := dispatch.NewRegistry[int]()
		var wins atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})

		for range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				ok, err := reg.Register(dispatch.SubscriberFunc[int](func(int) {}), predicate.Always[int](), "shared")
				if err == nil && ok {
					wins.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
		assert.Equal(t, 1, reg.Len())
	})
}

func TestRegistryRemove(t *testing.T) {
	t.Parallel()

	reg := dispatch.NewRegistry[string]()
	_, err := reg.Register(dispatch.SubscriberFunc[string](func(string) {}), predicate.Always[string](), "sub")
	require.NoError(t, err)

	assert.False(t, reg.Remove("unknown"))
	assert.Equal(t, 1, reg.Len())

	assert.True(t, reg.Has("sub"))
	assert.True(t, reg.Remove("sub"))
	assert.False(t, reg.Remove("sub"))
	assert.False(t, reg.Has("sub"))
	assert.Equal(t, 0, reg.Len())
}

func TestRegistrySnapshotIsolation(t *testing.T) {
	t.Parallel()

	reg := dispatch.NewRegistry[string]()
	for _, id := range []string{"a", "b"} {
		_, err := reg.Register(dispatch.SubscriberFunc[string](func(string) {}), predicate.Always[string](), id)
		require.NoError(t, err)
	}

	snapshot := reg.Snapshot()

	reg.Remove("a")
	_, err := reg.Register(dispatch.SubscriberFunc[string](func(string) {}), predicate.Always[string](), "c")
	require.NoError(t, err)

	ids := make([]string, 0, len(snapshot))
	for _, r := range snapshot {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	reg.Clear()
	assert.Equal(t, 0, reg.Len())
	assert.Len(t, snapshot, 2)
}
