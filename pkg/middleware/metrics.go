package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aegisops/actiongate/pkg/infra/prometheus"
)

type metricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		prometheus.HTTPRequestsTotal.WithLabelValues(
			ctx.Method(),
			ctx.Route().Path,
			strconv.Itoa(ctx.Response().StatusCode()),
		).Inc()
		return err
	}
}
