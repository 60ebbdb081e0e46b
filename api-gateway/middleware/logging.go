package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/plataforma/labstock/pkg/logger"
)

// StructuredLoggingMiddleware emits one zerolog entry per gateway request,
// leveled by the response status. Trace correlation comes from the context
// logger; the caller identity is attached when the auth middleware ran.
func StructuredLoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		event := requestEvent(c, status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("client_ip", c.IP()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Int("bytes_out", len(c.Response().Body())).
			Str("request_id", c.Get("X-Request-Id"))

		if userID, ok := c.Locals(LocalUserID).(uint); ok {
			event = event.Uint("user_id", userID)
		}
		if err != nil {
			event = event.Err(err)
		}
		event.Msg("gateway request")

		return err
	}
}

func requestEvent(c *fiber.Ctx, status int) *zerolog.Event {
	log := logger.WithContext(c.UserContext())
	switch {
	case status >= 500:
		return log.Error()
	case status >= 400:
		return log.Warn()
	default:
		return log.Info()
	}
}
