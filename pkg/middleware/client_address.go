package middleware

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/common"
)

type clientAddressMiddleware struct {
	logger *logrus.Logger
}

// NewClientAddressMiddleware resolves the caller's address once per
// request and stashes it in locals. The first X-Forwarded-For hop wins;
// loopback and unresolvable addresses normalize to the local marker so
// trusted pairs registered for "localhost" match dev traffic.
func NewClientAddressMiddleware(logger *logrus.Logger) Middleware {
	return &clientAddressMiddleware{
		logger: logger,
	}
}

func (m *clientAddressMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		address := resolveAddress(ctx)
		ctx.Locals(string(common.ClientAddressContextKey), address)
		return ctx.Next()
	}
}

func resolveAddress(ctx *fiber.Ctx) string {
	if forwarded := ctx.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return normalizeAddress(first)
		}
	}
	return normalizeAddress(ctx.IP())
}

func normalizeAddress(address string) string {
	if address == "" {
		return common.LocalAddress
	}
	if host, _, err := net.SplitHostPort(address); err == nil {
		address = host
	}
	if ip := net.ParseIP(address); ip != nil && ip.IsLoopback() {
		return common.LocalAddress
	}
	if address == "localhost" {
		return common.LocalAddress
	}
	return address
}

// ClientAddress reads the resolved address out of locals, falling back to
// the raw remote IP when the middleware did not run.
func ClientAddress(ctx *fiber.Ctx) string {
	if v, ok := ctx.Locals(string(common.ClientAddressContextKey)).(string); ok && v != "" {
		return v
	}
	return normalizeAddress(ctx.IP())
}
