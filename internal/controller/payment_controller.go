package controller

import (
	"errors"

	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/pkg/logger"
	"legal-consult-be/internal/pkg/serverutils"
	"legal-consult-be/internal/service"
	"legal-consult-be/pkg/sepay"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	GetQR(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type PaymentController struct {
	paymentService service.IPaymentService
	sepayCfg       sepay.Config
	logger         logger.ILogger
}

func NewPaymentController(paymentService service.IPaymentService, sepayCfg sepay.Config, sysLogger logger.ILogger) IPaymentController {
	return &PaymentController{
		paymentService: paymentService,
		sepayCfg:       sepayCfg,
		logger:         sysLogger,
	}
}

func (c *PaymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	h.Post("/create-url", serverutils.JwtMiddleware, c.GetQR)
	h.Post("/sepay-webhook", c.Webhook)
}

func (c *PaymentController) GetQR(ctx *fiber.Ctx) error {
	var req dto.CreateQRRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	// Plain amount+description builds the QR without touching any booking.
	if req.BookingID == "" {
		return ctx.JSON(serverutils.SuccessResponse("Payment QR", c.paymentService.BuildQR(req.Amount, req.Description)))
	}

	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.paymentService.CreateQR(ctx.UserContext(), userId, req.BookingID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Payment QR", res))
}

// Webhook receives transfer notifications from the SePay gateway. Bad
// credentials get a 400; the gateway retries on non-2xx, so anything
// non-retriable after auth still acks.
func (c *PaymentController) Webhook(ctx *fiber.Ctx) error {
	if err := c.sepayCfg.VerifyAuthorization(ctx.Get("Authorization")); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, sepay.ErrMissingConfig) {
			status = fiber.StatusInternalServerError
		}
		c.logger.Warn("Payment", "Webhook rejected", map[string]interface{}{"error": err.Error()})
		return ctx.Status(status).JSON(dto.WebhookAckResponse{Success: false, Message: err.Error()})
	}

	var payload sepay.WebhookPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.WebhookAckResponse{Success: false, Message: "invalid payload"})
	}

	message, err := c.paymentService.HandleWebhook(ctx.UserContext(), payload)
	if err != nil {
		c.logger.Error("Payment", "Webhook processing failed", map[string]interface{}{"error": err.Error()})
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.WebhookAckResponse{Success: false, Message: err.Error()})
	}

	return ctx.JSON(dto.WebhookAckResponse{Success: true, Message: message})
}
