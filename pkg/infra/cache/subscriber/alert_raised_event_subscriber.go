package subscriber

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	infraCache "github.com/aegisops/actiongate/pkg/infra/cache"
	"github.com/aegisops/actiongate/pkg/infra/cache/event"
)

type AlertRaisedEventSubscriber struct {
	logger *logrus.Logger
	stream AlertStream
}

func NewAlertRaisedEventSubscriber(
	logger *logrus.Logger,
	stream AlertStream,
) infraCache.EventSubscriber[event.AlertRaisedEvent] {
	return &AlertRaisedEventSubscriber{
		logger: logger,
		stream: stream,
	}
}

func (s AlertRaisedEventSubscriber) OnEvent(ctx context.Context, evt event.AlertRaisedEvent) error {
	s.logger.WithFields(logrus.Fields{
		"principal": evt.Principal,
		"address":   evt.Address,
		"severity":  evt.Severity,
		"reason":    evt.Reason,
	}).Warn("threat alert raised")

	payload, err := json.Marshal(map[string]interface{}{
		"type":      "alert",
		"principal": evt.Principal,
		"address":   evt.Address,
		"kind":      evt.Kind,
		"severity":  evt.Severity,
		"reason":    evt.Reason,
	})
	if err != nil {
		return err
	}
	s.stream.Broadcast(payload)
	return nil
}
