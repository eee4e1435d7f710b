package likes

import (
	"sync"

	"github.com/itchan-dev/simpleboard/shared/domain"
)

type echoKey struct {
	itemId domain.ContentItemId
	delta  int
}

// Echoes records like changes this process made and still expects to see on
// the change feed. The feed consumes them so they are not counted twice;
// likes by the same identity from elsewhere are not recorded and still count.
// A nil *Echoes records nothing.
type Echoes struct {
	mu      sync.Mutex
	pending map[echoKey]int
}

func NewEchoes() *Echoes {
	return &Echoes{pending: make(map[echoKey]int)}
}

func (e *Echoes) expect(itemId domain.ContentItemId, delta int) {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.pending[echoKey{itemId, delta}]++
	e.mu.Unlock()
}

// cancel drops an expectation whose backend call changed nothing.
func (e *Echoes) cancel(itemId domain.ContentItemId, delta int) {
	e.Consume(itemId, delta)
}

// Consume reports whether a like change of delta on the item was expected,
// and forgets it.
func (e *Echoes) Consume(itemId domain.ContentItemId, delta int) bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	k := echoKey{itemId, delta}
	n := e.pending[k]
	if n == 0 {
		return false
	}
	if n == 1 {
		delete(e.pending, k)
	} else {
		e.pending[k] = n - 1
	}
	return true
}
