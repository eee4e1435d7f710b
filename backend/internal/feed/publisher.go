package feed

import (
	"context"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

// Publisher turns committed writes into feed events. Failures are logged and
// counted, never returned: the write already happened and subscribers recover
// by reloading after a reconnect.
type Publisher struct {
	broker Broker
}

func NewPublisher(broker Broker) *Publisher {
	return &Publisher{broker: broker}
}

func (p *Publisher) Publish(ctx context.Context, boardId domain.BoardId, change domain.Change) {
	ev, err := domain.NewChangeEvent(boardId, change)
	if err != nil {
		feedPublishErrors.Inc()
		logger.Log.Error("build change event", "board", boardId, "error", err)
		return
	}
	if err := p.broker.Publish(ctx, ev); err != nil {
		feedPublishErrors.Inc()
		logger.Log.Error("publish change event", "board", boardId, "entity", ev.Entity, "op", ev.Op, "error", err)
		return
	}
	feedEventsPublished.WithLabelValues(string(ev.Entity), string(ev.Op)).Inc()
}
