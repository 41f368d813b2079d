package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appaction "github.com/aegisops/actiongate/pkg/app/action"
	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/aegisops/actiongate/pkg/middleware"
)

// respondActionResult maps a processor outcome to its transport status:
// allowed and flagged answer 200, gate and high-severity denials answer
// 403, quota exhaustion answers 429.
func respondActionResult(c *fiber.Ctx, result appaction.Result) error {
	status := fiber.StatusOK
	switch result.Outcome {
	case appaction.OutcomeBlocked, appaction.OutcomeDenied, appaction.OutcomeWindowDenied:
		status = fiber.StatusForbidden
	case appaction.OutcomeQuotaDenied:
		status = fiber.StatusTooManyRequests
	}
	return c.Status(status).JSON(result)
}

func submitEvent(
	c *fiber.Ctx,
	logger *logrus.Logger,
	processor appaction.Processor,
	ev action.Event,
) error {
	ev.Address = middleware.ClientAddress(c)

	if err := ev.Validate(); err != nil {
		logger.WithError(err).Debug("invalid action event")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := processor.Process(c.Context(), ev)
	if err != nil {
		logger.WithError(err).Error("failed to process action")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to process action"})
	}

	return respondActionResult(c, result)
}
