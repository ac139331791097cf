package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/componentry/backend/internal/constant"
	"github.com/componentry/backend/internal/pkg/flog"
)

// RequestID extracts the request id injected by the logger chain and
// repopulates it into ctx.Locals for handlers that need it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.IDFromFiberCtx(c)
		if ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
