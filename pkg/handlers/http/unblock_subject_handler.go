package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/app/registry"
)

type unblockSubjectHandler struct {
	logger   *logrus.Logger
	registry registry.Service
}

func NewUnblockSubjectHandler(logger *logrus.Logger, reg registry.Service) Handler {
	return &unblockSubjectHandler{
		logger:   logger,
		registry: reg,
	}
}

// Handle answers 200 with removed=true or removed=false; unblocking an
// absent subject is not an error.
func (s *unblockSubjectHandler) Handle(c *fiber.Ctx) error {
	subject, err := parseSubject(c.Params("kind"), c.Params("value"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	removed, err := s.registry.Unblock(c.Context(), subject, requestActor(c))
	if err != nil {
		s.logger.WithError(err).Error("failed to unblock subject")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to unblock subject"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"removed": removed})
}
