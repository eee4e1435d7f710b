// Package reconcile folds change feed events into the local board state.
package reconcile

import (
	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

// Target is the state events are applied to. Every method is a no-op for
// ids it does not hold and reports whether anything changed.
type Target interface {
	BoardId() domain.BoardId
	IsReordering() bool

	ReplaceBoard(b domain.Board) bool
	MarkDeleted()

	InsertCategory(c domain.Category) bool
	ReplaceCategory(c domain.Category) bool
	RemoveCategory(id domain.CategoryId) bool

	InsertItem(it domain.ContentItem) bool
	ReplaceItem(it domain.ContentItem) bool
	RemoveItem(id domain.ContentItemId) bool

	AdjustLikeCount(id domain.ContentItemId, delta int) int
}

type IdentitySource interface {
	Identity() domain.Identity
}

// EchoFilter knows the like changes this process already counted.
type EchoFilter interface {
	Consume(itemId domain.ContentItemId, delta int) bool
}

type Reconciler struct {
	target Target
	self   IdentitySource
	echoes EchoFilter
}

// New returns a reconciler for target. A like event by self is skipped only
// when echoes expected it; likes self made from another process still count.
// self and echoes may be nil.
func New(target Target, self IdentitySource, echoes EchoFilter) *Reconciler {
	return &Reconciler{target: target, self: self, echoes: echoes}
}

// Handle applies one feed event. Malformed events and events for other
// boards are dropped.
func (r *Reconciler) Handle(ev domain.ChangeEvent) bool {
	if ev.BoardId != r.target.BoardId() {
		return false
	}
	change, err := ev.Decode()
	if err != nil {
		logger.With("reconcile").Warn("undecodable change event", "entity", ev.Entity, "op", ev.Op, "error", err)
		return false
	}
	applied := r.Apply(change)
	if !applied {
		logger.With("reconcile").Debug("change event ignored", "entity", ev.Entity, "op", ev.Op)
	}
	return applied
}

func (r *Reconciler) Apply(change domain.Change) bool {
	switch c := change.(type) {
	case domain.BoardChange:
		return r.board(c)
	case domain.CategoryChange:
		return r.category(c)
	case domain.ContentItemChange:
		return r.item(c)
	case domain.LikeChange:
		return r.like(c)
	}
	return false
}

func (r *Reconciler) board(c domain.BoardChange) bool {
	if c.Record.Id != r.target.BoardId() {
		return false
	}
	switch c.Action {
	case domain.OpUpdate:
		return r.target.ReplaceBoard(c.Record)
	case domain.OpDelete:
		r.target.MarkDeleted()
		return true
	}
	// inserts of the viewed board are what loading already did
	return false
}

func (r *Reconciler) category(c domain.CategoryChange) bool {
	switch c.Action {
	case domain.OpInsert:
		return r.target.InsertCategory(c.Record)
	case domain.OpUpdate:
		if c.PositionChanged() && r.target.IsReordering() {
			return false
		}
		return r.target.ReplaceCategory(c.Record)
	case domain.OpDelete:
		return r.target.RemoveCategory(c.Record.Id)
	}
	return false
}

func (r *Reconciler) item(c domain.ContentItemChange) bool {
	switch c.Action {
	case domain.OpInsert:
		return r.target.InsertItem(c.Record)
	case domain.OpUpdate:
		return r.target.ReplaceItem(c.Record)
	case domain.OpDelete:
		return r.target.RemoveItem(c.Record.Id)
	}
	return false
}

func (r *Reconciler) like(c domain.LikeChange) bool {
	var delta int
	switch c.Action {
	case domain.OpInsert:
		delta = 1
	case domain.OpDelete:
		delta = -1
	default:
		return false
	}
	if r.isEcho(c.Record, delta) {
		return false
	}
	return r.target.AdjustLikeCount(c.Record.ContentItemId, delta) != 0
}

func (r *Reconciler) isEcho(l domain.Like, delta int) bool {
	if r.self == nil || r.echoes == nil || l.UserIdentifier != r.self.Identity() {
		return false
	}
	return r.echoes.Consume(l.ContentItemId, delta)
}
