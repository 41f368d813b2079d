package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/domain/trust"
)

type listTrustedPairsHandler struct {
	logger *logrus.Logger
	repo   trust.Repository
}

func NewListTrustedPairsHandler(logger *logrus.Logger, repo trust.Repository) Handler {
	return &listTrustedPairsHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *listTrustedPairsHandler) Handle(c *fiber.Ctx) error {
	var entries []trust.Entry
	var err error
	if principal := c.Query("principal"); principal != "" {
		entries, err = s.repo.ListByPrincipal(c.Context(), principal)
	} else {
		entries, err = s.repo.List(c.Context())
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to list trusted pairs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list trusted pairs"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":   len(entries),
		"trusted": entries,
	})
}
