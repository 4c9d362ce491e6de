package exts

import (
	"errors"

	"github.com/alpixn/site/pkg/internal/services"
	"github.com/alpixn/site/pkg/internal/storage"
	"github.com/alpixn/site/pkg/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrorHandler renders every error escaping a handler into the response envelope.
// Unexpected errors are logged and answered without detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *validation.Error
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return Reply(c, fiber.StatusBadRequest, Response{
			Message: "Validation error",
			Errors:  validationErr.Fields,
		})
	case errors.As(err, &fiberErr):
		return Reply(c, fiberErr.Code, Response{Message: fiberErr.Message})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Reply(c, fiber.StatusNotFound, Response{Message: "Resource not found"})
	case errors.Is(err, services.ErrEmailTaken):
		return Reply(c, fiber.StatusBadRequest, Response{Message: "Email already exists"})
	case services.IsDuplicateKey(err):
		return Reply(c, fiber.StatusBadRequest, Response{Message: "Record already exists"})
	case errors.Is(err, services.ErrInvalidLikeAction),
		errors.Is(err, services.ErrEmptySlug),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrUnsupportedImage),
		errors.Is(err, storage.ErrInvalidName):
		return Reply(c, fiber.StatusBadRequest, Response{Message: err.Error()})
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("Unexpected error occurred when handling request...")
	return Reply(c, fiber.StatusInternalServerError, Response{Message: "Internal server error"})
}
