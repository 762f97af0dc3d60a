package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorMapping binds a service sentinel error to an HTTP status.
type ErrorMapping struct {
	Err    error
	Status int
}

// ErrorHandlerMiddleware renders handler errors as ErrorResponse bodies.
// Mapped sentinels are matched with errors.Is; anything unknown is a 500.
func ErrorHandlerMiddleware(mappings ...ErrorMapping) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, message := resolve(err, mappings)
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}

func resolve(err error, mappings []ErrorMapping) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest, validationMessage(validationErrs)
	}

	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			return m.Status, m.Err.Error()
		}
	}
	return fiber.StatusInternalServerError, "Internal server error"
}
