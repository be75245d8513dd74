package controller

import (
	"errors"

	"legal-consult-be/internal/pkg/serverutils"
	"legal-consult-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors onto HTTP statuses and the standard
// error envelope.
func respondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrLawyerNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrConversationNotFound):
		status = fiber.StatusNotFound

	case errors.Is(err, service.ErrForbidden):
		status = fiber.StatusForbidden

	case errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrDuplicateSameDay),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrAlreadyPaid):
		status = fiber.StatusConflict

	case errors.Is(err, service.ErrInvalidSlot),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidOtp),
		errors.Is(err, service.ErrLawyerNotApproved):
		status = fiber.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrInvalidRefresh):
		status = fiber.StatusUnauthorized
	}

	return ctx.Status(status).JSON(serverutils.ErrorResponse(status, err.Error()))
}

func currentUserID(ctx *fiber.Ctx) (string, bool) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	return userIdStr, ok
}
