package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/app/escalation"
	"github.com/aegisops/actiongate/pkg/infra/notifier"
)

type notifierCommandHandler struct {
	logger *logrus.Logger
	bridge escalation.Bridge
}

func NewNotifierCommandHandler(logger *logrus.Logger, bridge escalation.Bridge) Handler {
	return &notifierCommandHandler{
		logger: logger,
		bridge: bridge,
	}
}

// Handle accepts a remediation command from the operator channel. The
// mutation is applied before the handler returns; duplicates are
// absorbed silently.
func (s *notifierCommandHandler) Handle(c *fiber.Ctx) error {
	cmd, err := notifier.ParseCommand(c.Body())
	if err != nil {
		s.logger.WithError(err).Debug("invalid operator command")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.bridge.HandleOperatorCommand(c.Context(), cmd); err != nil {
		s.logger.WithError(err).Error("failed to apply operator command")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to apply operator command"})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": true, "command_id": cmd.ID})
}
