package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/domain/trust"
)

type removeTrustedPairHandler struct {
	logger *logrus.Logger
	repo   trust.Repository
}

func NewRemoveTrustedPairHandler(logger *logrus.Logger, repo trust.Repository) Handler {
	return &removeTrustedPairHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *removeTrustedPairHandler) Handle(c *fiber.Ctx) error {
	principal := c.Params("principal")
	address := c.Params("address")
	if principal == "" || address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "principal and address are required"})
	}

	removed, err := s.repo.Delete(c.Context(), principal, address)
	if err != nil {
		s.logger.WithError(err).Error("failed to remove trusted pair")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to remove trusted pair"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"removed": removed})
}
