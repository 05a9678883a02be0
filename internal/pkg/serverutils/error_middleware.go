package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pii-redaction-be/pkg/review"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses so that
// controllers can simply return them. Review-state errors never crash the
// editor flow; they surface as typed failures the client can toast.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validation *review.ValidationError
		if errors.As(err, &validation) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validation.Error()))
		}

		var notFound *review.NotFoundError
		if errors.As(err, &notFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(notFound.Error()))
		}

		var empty *review.EmptySelectionError
		if errors.As(err, &empty) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(empty.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
	}
}
