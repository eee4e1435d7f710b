package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

type Entity string

const (
	EntityBoard       Entity = "board"
	EntityCategory    Entity = "category"
	EntityContentItem Entity = "content_item"
	EntityLike        Entity = "like"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

func (o Op) valid() bool {
	return o == OpInsert || o == OpUpdate || o == OpDelete
}

// Change is a row-level change on one board. The set of implementations is
// closed: BoardChange, CategoryChange, ContentItemChange and LikeChange.
// For deletes Record holds the row as it was before deletion.
type Change interface {
	Operation() Op
	Entity() Entity
	isChange()
}

type BoardChange struct {
	Action Op
	Record Board
	Fields []string // columns touched by an update
}

type CategoryChange struct {
	Action Op
	Record Category
	Fields []string
}

type ContentItemChange struct {
	Action Op
	Record ContentItem
	Fields []string
}

type LikeChange struct {
	Action Op
	Record Like
}

func (c BoardChange) Operation() Op       { return c.Action }
func (c CategoryChange) Operation() Op    { return c.Action }
func (c ContentItemChange) Operation() Op { return c.Action }
func (c LikeChange) Operation() Op        { return c.Action }

func (BoardChange) Entity() Entity       { return EntityBoard }
func (CategoryChange) Entity() Entity    { return EntityCategory }
func (ContentItemChange) Entity() Entity { return EntityContentItem }
func (LikeChange) Entity() Entity        { return EntityLike }

func (BoardChange) isChange()       {}
func (CategoryChange) isChange()    {}
func (ContentItemChange) isChange() {}
func (LikeChange) isChange()        {}

// PositionChanged reports whether an update touched the category position.
func (c CategoryChange) PositionChanged() bool {
	return c.Action == OpUpdate && slices.Contains(c.Fields, "position")
}

// ChangeEvent is the wire envelope of a Change on the board feed.
type ChangeEvent struct {
	Entity  Entity          `json:"entity"`
	Op      Op              `json:"op"`
	BoardId BoardId         `json:"board_id"`
	Fields  []string        `json:"fields,omitempty"`
	Record  json.RawMessage `json:"record"`
}

// NewChangeEvent wraps c for publishing on boardId's feed.
func NewChangeEvent(boardId BoardId, c Change) (ChangeEvent, error) {
	ev := ChangeEvent{Entity: c.Entity(), Op: c.Operation(), BoardId: boardId}

	var record any
	switch c := c.(type) {
	case BoardChange:
		record, ev.Fields = c.Record, c.Fields
	case CategoryChange:
		record, ev.Fields = c.Record, c.Fields
	case ContentItemChange:
		record, ev.Fields = c.Record, c.Fields
	case LikeChange:
		record = c.Record
	default:
		return ev, fmt.Errorf("unsupported change %T", c)
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return ev, fmt.Errorf("marshal %s record: %w", ev.Entity, err)
	}
	ev.Record = raw
	return ev, nil
}

// Decode turns the envelope back into a typed Change.
func (e ChangeEvent) Decode() (Change, error) {
	if !e.Op.valid() {
		return nil, fmt.Errorf("unknown op %q", e.Op)
	}

	var (
		change Change
		err    error
	)
	switch e.Entity {
	case EntityBoard:
		c := BoardChange{Action: e.Op, Fields: e.Fields}
		err = json.Unmarshal(e.Record, &c.Record)
		change = c
	case EntityCategory:
		c := CategoryChange{Action: e.Op, Fields: e.Fields}
		err = json.Unmarshal(e.Record, &c.Record)
		change = c
	case EntityContentItem:
		c := ContentItemChange{Action: e.Op, Fields: e.Fields}
		err = json.Unmarshal(e.Record, &c.Record)
		change = c
	case EntityLike:
		c := LikeChange{Action: e.Op}
		err = json.Unmarshal(e.Record, &c.Record)
		change = c
	default:
		return nil, fmt.Errorf("unknown entity %q", e.Entity)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s record: %w", e.Entity, err)
	}
	return change, nil
}
