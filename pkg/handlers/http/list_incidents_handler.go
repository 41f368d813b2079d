package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/domain/incident"
)

type listIncidentsHandler struct {
	logger *logrus.Logger
	repo   incident.Repository
}

func NewListIncidentsHandler(logger *logrus.Logger, repo incident.Repository) Handler {
	return &listIncidentsHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *listIncidentsHandler) Handle(c *fiber.Ctx) error {
	filter := incident.Filter{
		Principal: c.Query("principal"),
		Kind:      c.Query("kind"),
		Limit:     c.QueryInt("limit"),
	}

	records, err := s.repo.List(c.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list incidents")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list incidents"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":     len(records),
		"incidents": records,
	})
}
