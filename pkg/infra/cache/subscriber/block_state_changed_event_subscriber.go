package subscriber

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	infraCache "github.com/aegisops/actiongate/pkg/infra/cache"
	"github.com/aegisops/actiongate/pkg/infra/cache/event"
)

// AlertStream is the live fanout surface for operator consoles.
type AlertStream interface {
	Broadcast(payload []byte)
}

type BlockStateChangedEventSubscriber struct {
	logger *logrus.Logger
	stream AlertStream
}

func NewBlockStateChangedEventSubscriber(
	logger *logrus.Logger,
	stream AlertStream,
) infraCache.EventSubscriber[event.BlockStateChangedEvent] {
	return &BlockStateChangedEventSubscriber{
		logger: logger,
		stream: stream,
	}
}

func (s BlockStateChangedEventSubscriber) OnEvent(ctx context.Context, evt event.BlockStateChangedEvent) error {
	s.logger.WithFields(logrus.Fields{
		"subject": evt.SubjectKey,
		"blocked": evt.Blocked,
		"actor":   evt.Actor,
	}).Info("block state changed")

	payload, err := json.Marshal(map[string]interface{}{
		"type":        "block_state_changed",
		"subject_key": evt.SubjectKey,
		"blocked":     evt.Blocked,
		"reason":      evt.Reason,
		"actor":       evt.Actor,
	})
	if err != nil {
		return err
	}
	s.stream.Broadcast(payload)
	return nil
}
