package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/domain/trust"
)

type addTrustedPairHandler struct {
	logger *logrus.Logger
	repo   trust.Repository
}

func NewAddTrustedPairHandler(logger *logrus.Logger, repo trust.Repository) Handler {
	return &addTrustedPairHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle registers or updates a trusted pair. Re-posting an existing pair
// replaces its window and quotas.
func (s *addTrustedPairHandler) Handle(c *fiber.Ctx) error {
	var req TrustedPairRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	entry := &trust.Entry{
		Principal:               req.Principal,
		Address:                 req.Address,
		AllowedFrom:             req.AllowedFrom,
		AllowedTo:               req.AllowedTo,
		MaxLoginsPerWindow:      req.MaxLoginsPerWindow,
		MaxUploadsPerWindow:     req.MaxUploadsPerWindow,
		MaxRoleChangesPerWindow: req.MaxRoleChangesPerWindow,
		QuotaWindowSeconds:      req.QuotaWindowSeconds,
	}
	if err := entry.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.repo.Save(c.Context(), entry); err != nil {
		s.logger.WithError(err).Error("failed to save trusted pair")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save trusted pair"})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}
