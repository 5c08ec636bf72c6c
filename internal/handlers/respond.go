package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/dto"
)

// writeError maps the service error taxonomy onto HTTP statuses. Internal
// failures are logged and never leak detail to the caller.
func writeError(c *fiber.Ctx, err error) error {
	e, ok := apperrors.As(err)
	if !ok {
		e = apperrors.Internal(err)
	}

	if e.Kind == apperrors.KindInternal {
		slog.Error("request failed",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
	}

	return c.Status(statusFor(e.Kind)).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    e.Code,
		Message: e.Message,
	})
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperrors.KindAuthorization:
		return fiber.StatusForbidden
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Code: "invalid_body", Message: "Invalid request body",
	})
}
