// Package likes implements the like toggle of a content item for the
// current identity.
package likes

import (
	"context"
	"errors"
	"sync"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

type State int

const (
	Unknown State = iota
	Liked
	NotLiked
)

func (s State) String() string {
	switch s {
	case Liked:
		return "liked"
	case NotLiked:
		return "not liked"
	}
	return "unknown"
}

type Gateway interface {
	HasLiked(ctx context.Context, itemId domain.ContentItemId) (bool, error)
	AddLike(ctx context.Context, itemId domain.ContentItemId) (bool, error)
	RemoveLike(ctx context.Context, itemId domain.ContentItemId) (bool, error)
}

// Counter holds the displayed like counts. AdjustLikeCount returns the delta
// actually applied, which is smaller than asked when the count is floored.
type Counter interface {
	AdjustLikeCount(id domain.ContentItemId, delta int) int
}

// ErrBusy is returned while a toggle of the same item is still in flight.
var ErrBusy = errors.New("like toggle already in progress")

type Button struct {
	itemId  domain.ContentItemId
	gw      Gateway
	counter Counter
	echoes  *Echoes

	mu    sync.Mutex
	state State
	busy  bool
}

// NewButton returns the like button of an item. Changes it makes are
// recorded in echoes, which may be nil when no feed is followed.
func NewButton(itemId domain.ContentItemId, gw Gateway, counter Counter, echoes *Echoes) *Button {
	return &Button{itemId: itemId, gw: gw, counter: counter, echoes: echoes}
}

func (b *Button) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Resolve asks the backend whether the identity has liked the item.
func (b *Button) Resolve(ctx context.Context) (State, error) {
	liked, err := b.gw.HasLiked(ctx, b.itemId)
	if err != nil {
		return b.State(), err
	}
	state := NotLiked
	if liked {
		state = Liked
	}
	b.mu.Lock()
	b.state = state
	b.mu.Unlock()
	return state, nil
}

// Toggle flips the like. The count and state change before the backend
// answers; when the backend call fails the flipped state is kept and the
// error returned.
func (b *Button) Toggle(ctx context.Context) (State, error) {
	b.mu.Lock()
	if b.busy {
		b.mu.Unlock()
		return b.state, ErrBusy
	}
	b.busy = true
	state := b.state
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.busy = false
		b.mu.Unlock()
	}()

	if state == Unknown {
		var err error
		if state, err = b.Resolve(ctx); err != nil {
			return state, err
		}
	}
	if state == Liked {
		return b.unlike(ctx)
	}
	return b.like(ctx)
}

func (b *Button) like(ctx context.Context) (State, error) {
	// the existence check keeps a second device of the same identity from
	// counting twice
	already, err := b.gw.HasLiked(ctx, b.itemId)
	if err != nil {
		return b.State(), err
	}
	if already {
		b.setState(Liked)
		return Liked, nil
	}

	applied := b.counter.AdjustLikeCount(b.itemId, 1)
	b.setState(Liked)
	b.echoes.expect(b.itemId, 1)

	added, err := b.gw.AddLike(ctx, b.itemId)
	if err != nil {
		logger.With("likes").Warn("like failed, keeping local state", "item", b.itemId, "error", err)
		return Liked, err
	}
	if !added {
		b.echoes.cancel(b.itemId, 1)
		b.counter.AdjustLikeCount(b.itemId, -applied)
	}
	return Liked, nil
}

func (b *Button) unlike(ctx context.Context) (State, error) {
	applied := b.counter.AdjustLikeCount(b.itemId, -1)
	b.setState(NotLiked)
	b.echoes.expect(b.itemId, -1)

	removed, err := b.gw.RemoveLike(ctx, b.itemId)
	if err != nil {
		logger.With("likes").Warn("unlike failed, keeping local state", "item", b.itemId, "error", err)
		return NotLiked, err
	}
	if !removed {
		// undo only what the floor let through
		b.echoes.cancel(b.itemId, -1)
		b.counter.AdjustLikeCount(b.itemId, -applied)
	}
	return NotLiked, nil
}

func (b *Button) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// Buttons keeps one Button per item so in-flight toggles are tracked per item.
type Buttons struct {
	gw      Gateway
	counter Counter
	echoes  *Echoes

	mu      sync.Mutex
	buttons map[domain.ContentItemId]*Button
}

func NewButtons(gw Gateway, counter Counter, echoes *Echoes) *Buttons {
	return &Buttons{gw: gw, counter: counter, echoes: echoes, buttons: make(map[domain.ContentItemId]*Button)}
}

func (bs *Buttons) For(itemId domain.ContentItemId) *Button {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	b, ok := bs.buttons[itemId]
	if !ok {
		b = NewButton(itemId, bs.gw, bs.counter, bs.echoes)
		bs.buttons[itemId] = b
	}
	return b
}
