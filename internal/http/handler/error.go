package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pollbuilder/internal/export"
	"pollbuilder/internal/extract"
	"pollbuilder/internal/fetch"
	"pollbuilder/internal/http/middleware"
	"pollbuilder/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes the standard error envelope.
// message must be safe to show to API clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// documentError translates document service errors. Unknown errors become a
// generic 500 so internals do not leak.
func documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "ID_REQUIRED", "id is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "Document not found")
	case errors.Is(err, service.ErrInvalidFileType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", service.ErrInvalidFileType.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds upload limit")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// processError translates pipeline failures. The message is always the
// failure text, which is also what the document records.
func processError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrNotFound):
		return documentError(c, err)
	case errors.Is(err, extract.ErrNoQuestions):
		return writeError(c, fiber.StatusUnprocessableEntity, "NO_QUESTIONS", err.Error())
	case errors.Is(err, fetch.ErrFetch), errors.Is(err, fetch.ErrTooLarge):
		return writeError(c, fiber.StatusBadGateway, "FETCH_FAILED", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "PROCESSING_FAILED", err.Error())
	}
}

func templateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownQuestion),
		errors.Is(err, service.ErrEmptyTemplate),
		errors.Is(err, service.ErrInvalidParty),
		errors.Is(err, export.ErrUnknownFormat):
		return writeError(c, fiber.StatusBadRequest, "INVALID_TEMPLATE", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
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
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "Unauthorized")
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
