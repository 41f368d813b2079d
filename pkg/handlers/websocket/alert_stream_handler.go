package websocket

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"
)

type alertStreamHandler struct {
	logger *logrus.Logger
	hub    *AlertHub
}

func NewAlertStreamHandler(logger *logrus.Logger, hub *AlertHub) Handler {
	return &alertStreamHandler{
		logger: logger,
		hub:    hub,
	}
}

// Handle keeps the connection open and writes every broadcast alert to
// it. Reads are drained only to detect the close.
func (s *alertStreamHandler) Handle(c *websocket.Conn) {
	ch := s.hub.register(c)
	defer func() {
		s.hub.unregister(c)
		_ = c.Close()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.logger.WithError(err).Debug("failed to write alert to websocket")
				return
			}
		case <-done:
			return
		}
	}
}
