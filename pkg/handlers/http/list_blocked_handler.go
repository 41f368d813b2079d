package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/app/registry"
)

type listBlockedHandler struct {
	logger   *logrus.Logger
	registry registry.Service
}

func NewListBlockedHandler(logger *logrus.Logger, reg registry.Service) Handler {
	return &listBlockedHandler{
		logger:   logger,
		registry: reg,
	}
}

func (s *listBlockedHandler) Handle(c *fiber.Ctx) error {
	entries, err := s.registry.ListActive(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list blocked subjects")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list blocked subjects"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":   len(entries),
		"blocked": entries,
	})
}
