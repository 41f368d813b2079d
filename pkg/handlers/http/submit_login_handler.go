package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appaction "github.com/aegisops/actiongate/pkg/app/action"
	"github.com/aegisops/actiongate/pkg/domain/action"
)

type submitLoginHandler struct {
	logger    *logrus.Logger
	processor appaction.Processor
}

func NewSubmitLoginHandler(logger *logrus.Logger, processor appaction.Processor) Handler {
	return &submitLoginHandler{
		logger:    logger,
		processor: processor,
	}
}

func (s *submitLoginHandler) Handle(c *fiber.Ctx) error {
	var req LoginActionRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	return submitEvent(c, s.logger, s.processor, action.Event{
		Principal:  req.Principal,
		Kind:       action.KindLogin,
		OccurredAt: time.Now(),
	})
}
