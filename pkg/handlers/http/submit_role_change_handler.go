package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appaction "github.com/aegisops/actiongate/pkg/app/action"
	"github.com/aegisops/actiongate/pkg/domain/action"
)

type submitRoleChangeHandler struct {
	logger    *logrus.Logger
	processor appaction.Processor
}

func NewSubmitRoleChangeHandler(logger *logrus.Logger, processor appaction.Processor) Handler {
	return &submitRoleChangeHandler{
		logger:    logger,
		processor: processor,
	}
}

func (s *submitRoleChangeHandler) Handle(c *fiber.Ctx) error {
	var req RoleChangeActionRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	return submitEvent(c, s.logger, s.processor, action.Event{
		Principal:  req.Principal,
		Kind:       action.KindRoleChange,
		RoleChange: &action.RoleChangePayload{OldRole: req.OldRole, NewRole: req.NewRole},
		OccurredAt: time.Now(),
	})
}
