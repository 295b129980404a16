package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"conectaleads/internal/csvimport"
	"conectaleads/internal/http/middleware"
	"conectaleads/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writePayload(c, status, errorEnvelope{Code: code, Message: message})
}

func writePayload(c *fiber.Ctx, status int, env errorEnvelope) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     env,
	})
}

// serviceError maps service and import errors onto HTTP responses. Anything
// unrecognized becomes a 500 whose cause is kept for the request log only.
func serviceError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return writePayload(c, fiber.StatusBadRequest, errorEnvelope{
			Code:    "VALIDATION_ERROR",
			Message: ve.Error(),
			Fields:  ve.Fields,
		})
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrBrokerNotFound):
		return writeError(c, fiber.StatusUnprocessableEntity, "BROKER_NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, service.ErrInvalidPeriod):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PERIOD", err.Error())
	case errors.Is(err, service.ErrInvalidImage):
		return writeError(c, fiber.StatusBadRequest, "INVALID_IMAGE", err.Error())
	case errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	case errors.Is(err, csvimport.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNSUPPORTED_FORMAT", err.Error())
	case errors.Is(err, csvimport.ErrTooFewLines),
		errors.Is(err, csvimport.ErrNoValidLeads),
		errors.Is(err, csvimport.ErrMalformed):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_CSV", err.Error())
	}
	c.Locals(middleware.ErrorLocalKey, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
