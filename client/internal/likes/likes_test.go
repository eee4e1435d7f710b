package likes

import (
	"context"
	"sync"
	"testing"

	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockGateway struct {
	MockHasLiked   func(itemId domain.ContentItemId) (bool, error)
	MockAddLike    func(itemId domain.ContentItemId) (bool, error)
	MockRemoveLike func(itemId domain.ContentItemId) (bool, error)
}

func (m *MockGateway) HasLiked(_ context.Context, itemId domain.ContentItemId) (bool, error) {
	return m.MockHasLiked(itemId)
}

func (m *MockGateway) AddLike(_ context.Context, itemId domain.ContentItemId) (bool, error) {
	return m.MockAddLike(itemId)
}

func (m *MockGateway) RemoveLike(_ context.Context, itemId domain.ContentItemId) (bool, error) {
	return m.MockRemoveLike(itemId)
}

type counter struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCounter(initial int) *counter {
	return &counter{counts: map[string]int{"i1": initial}}
}

func (c *counter) AdjustLikeCount(id domain.ContentItemId, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := c.counts[id]
	c.counts[id] = max(before+delta, 0)
	return c.counts[id] - before
}

func (c *counter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts["i1"]
}

// backend models the like rows of one item.
type backend struct {
	mu     sync.Mutex
	likers map[string]bool
}

func newBackend() *backend {
	return &backend{likers: map[string]bool{}}
}

func (b *backend) gateway(identity string) *MockGateway {
	return &MockGateway{
		MockHasLiked: func(domain.ContentItemId) (bool, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.likers[identity], nil
		},
		MockAddLike: func(domain.ContentItemId) (bool, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.likers[identity] {
				return false, nil
			}
			b.likers[identity] = true
			return true, nil
		},
		MockRemoveLike: func(domain.ContentItemId) (bool, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			removed := b.likers[identity]
			delete(b.likers, identity)
			return removed, nil
		},
	}
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.likers)
}

func TestButton_Resolve(t *testing.T) {
	be := newBackend()
	be.likers["me"] = true
	b := NewButton("i1", be.gateway("me"), newCounter(1), nil)
	assert.Equal(t, Unknown, b.State())

	state, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Liked, state)
	assert.Equal(t, Liked, b.State())
}

func TestButton_Toggle(t *testing.T) {
	be := newBackend()
	c := newCounter(3)
	b := NewButton("i1", be.gateway("me"), c, nil)
	ctx := context.Background()

	state, err := b.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Liked, state)
	assert.Equal(t, 4, c.get())
	assert.Equal(t, 1, be.count())

	state, err = b.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, NotLiked, state)
	assert.Equal(t, 3, c.get())
	assert.Zero(t, be.count())
}

func TestButton_PreCheckFindsExistingLike(t *testing.T) {
	be := newBackend()
	c := newCounter(1)
	gw := be.gateway("me")
	gw.MockAddLike = func(domain.ContentItemId) (bool, error) {
		t.Error("AddLike must not be called when the like exists")
		return false, nil
	}
	b := NewButton("i1", gw, c, nil)
	b.state = NotLiked // stale: liked from another device meanwhile
	be.likers["me"] = true

	state, err := b.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Liked, state)
	assert.Equal(t, 1, c.get(), "count unchanged")
}

func TestButton_DuplicateAddIsReverted(t *testing.T) {
	be := newBackend()
	c := newCounter(1)
	gw := be.gateway("me")
	gw.MockAddLike = func(domain.ContentItemId) (bool, error) { return false, nil }
	b := NewButton("i1", gw, c, nil)

	state, err := b.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Liked, state)
	assert.Equal(t, 1, c.get())
}

func TestButton_FailureKeepsFlippedState(t *testing.T) {
	be := newBackend()
	c := newCounter(0)
	gw := be.gateway("me")
	gw.MockAddLike = func(domain.ContentItemId) (bool, error) {
		return false, internal_errors.Network("backend unavailable")
	}
	b := NewButton("i1", gw, c, nil)

	state, err := b.Toggle(context.Background())
	assert.ErrorIs(t, err, internal_errors.ErrNetwork)
	assert.Equal(t, Liked, state)
	assert.Equal(t, Liked, b.State())
	assert.Equal(t, 1, c.get())
}

func TestButton_ResolveFailure(t *testing.T) {
	gw := &MockGateway{MockHasLiked: func(domain.ContentItemId) (bool, error) {
		return false, internal_errors.Network("down")
	}}
	c := newCounter(2)
	b := NewButton("i1", gw, c, nil)

	state, err := b.Toggle(context.Background())
	assert.ErrorIs(t, err, internal_errors.ErrNetwork)
	assert.Equal(t, Unknown, state)
	assert.Equal(t, 2, c.get())
}

func TestButton_Busy(t *testing.T) {
	be := newBackend()
	gw := be.gateway("me")
	entered := make(chan struct{})
	release := make(chan struct{})
	add := gw.MockAddLike
	gw.MockAddLike = func(id domain.ContentItemId) (bool, error) {
		close(entered)
		<-release
		return add(id)
	}
	b := NewButton("i1", gw, newCounter(0), nil)
	b.state = NotLiked

	done := make(chan error, 1)
	go func() {
		_, err := b.Toggle(context.Background())
		done <- err
	}()
	<-entered

	_, err := b.Toggle(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Liked, b.State())
}

func TestButton_RapidTogglesStayConsistent(t *testing.T) {
	be := newBackend()
	c := newCounter(0)
	b := NewButton("i1", be.gateway("me"), c, nil)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := b.Toggle(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c.get(), 0)
	}
	assert.Equal(t, Liked, b.State())
	assert.Equal(t, 1, be.count(), "exactly one like row")
	assert.Equal(t, 1, c.get())
}

func TestButton_UnlikeFloorsAtZero(t *testing.T) {
	be := newBackend()
	be.likers["me"] = true
	c := newCounter(0) // count not loaded yet
	b := NewButton("i1", be.gateway("me"), c, nil)
	b.state = Liked

	_, err := b.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, c.get())
}

func TestButton_TwoViewers(t *testing.T) {
	be := newBackend()
	countA, countB := newCounter(0), newCounter(0)
	a := NewButton("i1", be.gateway("A"), countA, nil)
	b := NewButton("i1", be.gateway("B"), countB, nil)
	ctx := context.Background()

	_, err := a.Toggle(ctx)
	require.NoError(t, err)
	countB.AdjustLikeCount("i1", 1) // A's like arrives on B's feed

	_, err = b.Toggle(ctx)
	require.NoError(t, err)
	countA.AdjustLikeCount("i1", 1)

	assert.Equal(t, 2, be.count())
	assert.Equal(t, 2, countA.get())
	assert.Equal(t, 2, countB.get())
	assert.Equal(t, Liked, a.State())
	assert.Equal(t, Liked, b.State())
}

func TestButtons_For(t *testing.T) {
	bs := NewButtons(newBackend().gateway("me"), newCounter(0), nil)
	assert.Same(t, bs.For("i1"), bs.For("i1"))
	assert.NotSame(t, bs.For("i1"), bs.For("i2"))
}

func TestButton_UnlikeOfMissingRowAtZero(t *testing.T) {
	be := newBackend() // the row was removed elsewhere after Resolve
	c := newCounter(0)
	b := NewButton("i1", be.gateway("me"), c, nil)
	b.state = Liked

	state, err := b.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NotLiked, state)
	assert.Equal(t, 0, c.get())
	assert.Equal(t, be.count(), c.get())
}

func TestButton_UnlikeOfMissingRowRestoresCount(t *testing.T) {
	be := newBackend()
	be.likers["a"], be.likers["b"] = true, true
	c := newCounter(2)
	b := NewButton("i1", be.gateway("me"), c, nil)
	b.state = Liked

	_, err := b.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, c.get())
}

func TestButton_RecordsEchoes(t *testing.T) {
	be := newBackend()
	echoes := NewEchoes()
	b := NewButton("i1", be.gateway("me"), newCounter(0), echoes)
	ctx := context.Background()

	_, err := b.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, echoes.Consume("i1", 1))
	assert.False(t, echoes.Consume("i1", 1), "consumed once")

	_, err = b.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, echoes.Consume("i1", -1))

	t.Run("no echo when the backend changed nothing", func(t *testing.T) {
		gw := newBackend().gateway("me")
		gw.MockAddLike = func(domain.ContentItemId) (bool, error) { return false, nil }
		b := NewButton("i1", gw, newCounter(0), echoes)
		b.state = NotLiked

		_, err := b.Toggle(ctx)
		require.NoError(t, err)
		assert.False(t, echoes.Consume("i1", 1))
	})

	t.Run("failed call still expects its echo", func(t *testing.T) {
		gw := newBackend().gateway("me")
		gw.MockAddLike = func(domain.ContentItemId) (bool, error) {
			return false, internal_errors.Network("timeout")
		}
		b := NewButton("i1", gw, newCounter(0), echoes)
		b.state = NotLiked

		_, err := b.Toggle(ctx)
		require.Error(t, err)
		assert.True(t, echoes.Consume("i1", 1), "the insert may have landed")
	})
}

func TestEchoes_Nil(t *testing.T) {
	var e *Echoes
	e.expect("i1", 1)
	assert.False(t, e.Consume("i1", 1))
}
