package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"conectaleads/internal/logging"
)

// Logger writes one structured line per request with request_id, method,
// path, status and latency (milliseconds). 5xx responses log at error level.
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := statusOf(c, err)
		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}

		if status >= fiber.StatusInternalServerError {
			if cause := causeOf(c, err); cause != nil {
				fields = append(fields, zap.Error(cause))
			}
			log.Error("http_request", fields...)
		} else {
			log.Info("http_request", fields...)
		}
		return err
	}
}

// causeOf prefers the returned error over one a handler stashed in locals
// after writing its own error response.
func causeOf(c *fiber.Ctx, err error) error {
	if err != nil {
		return err
	}
	cause, _ := c.Locals(ErrorLocalKey).(error)
	return cause
}

// LoggerWithWriter is Logger with a JSON logger writing to w, timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}
