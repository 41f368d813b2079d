package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/app/registry"
	"github.com/aegisops/actiongate/pkg/common"
	"github.com/aegisops/actiongate/pkg/domain/block"
)

type blockSubjectHandler struct {
	logger   *logrus.Logger
	registry registry.Service
}

func NewBlockSubjectHandler(logger *logrus.Logger, reg registry.Service) Handler {
	return &blockSubjectHandler{
		logger:   logger,
		registry: reg,
	}
}

// Handle answers 201 when the subject transitions to blocked and 200 when
// an existing block was refreshed; both report the stored entry.
func (s *blockSubjectHandler) Handle(c *fiber.Ctx) error {
	var req BlockSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	subject, err := parseSubject(req.Kind, req.Value)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var until *time.Time
	if req.Until != "" {
		parsed, err := time.Parse(time.RFC3339, req.Until)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "until must be RFC3339"})
		}
		until = &parsed
	}

	result, err := s.registry.Block(c.Context(), subject, req.Reason, requestActor(c), until)
	if err != nil {
		s.logger.WithError(err).Error("failed to block subject")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to block subject"})
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"created": result.Created,
		"entry":   result.Entry,
	})
}

func parseSubject(kind, value string) (block.SubjectKey, error) {
	return block.ParseSubjectKey(kind + ":" + value)
}

func requestActor(c *fiber.Ctx) string {
	if actor, ok := c.Locals(string(common.ActorContextKey)).(string); ok && actor != "" {
		return actor
	}
	return "admin"
}
