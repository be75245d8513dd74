package controller

import (
	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/pkg/serverutils"
	"legal-consult-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Detail(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	LawyerList(ctx *fiber.Ctx) error
	LawyerDetail(ctx *fiber.Ctx) error
	ConfirmPayment(ctx *fiber.Ctx) error
}

type BookingController struct {
	bookingService service.IBookingService
}

func NewBookingController(bookingService service.IBookingService) IBookingController {
	return &BookingController{bookingService: bookingService}
}

func (c *BookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/booking", serverutils.JwtMiddleware)
	h.Post("/create", c.Create)
	h.Get("/list", c.List)
	h.Get("/detail/:bookingId", c.Detail)
	h.Post("/cancel/:bookingId", c.Cancel)

	lw := r.Group("/lawyer", serverutils.JwtMiddleware, serverutils.RequireRole("lawyer"))
	lw.Get("/bookings", c.LawyerList)
	lw.Get("/booking-detail/:bookingId", c.LawyerDetail)
	lw.Put("/booking/confirm-payment/:bookingId", c.ConfirmPayment)
}

func (c *BookingController) Create(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	var req dto.CreateBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.bookingService.Reserve(ctx.UserContext(), userId, &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Booking created", res))
}

func (c *BookingController) List(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.bookingService.GetUserBookings(ctx.UserContext(), userId)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("User bookings", res))
}

func (c *BookingController) Detail(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.bookingService.GetBookingDetail(ctx.UserContext(), userId, ctx.Params("bookingId"))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Booking detail", res))
}

func (c *BookingController) Cancel(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	var req dto.CancelBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.bookingService.Cancel(ctx.UserContext(), userId, ctx.Params("bookingId"), &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Booking cancelled", res))
}

func (c *BookingController) LawyerList(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.bookingService.GetLawyerBookings(ctx.UserContext(), userId)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Lawyer bookings", res))
}

func (c *BookingController) LawyerDetail(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.bookingService.GetLawyerBookingDetail(ctx.UserContext(), userId, ctx.Params("bookingId"))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Lawyer booking detail", res))
}

func (c *BookingController) ConfirmPayment(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.bookingService.ConfirmPayment(ctx.UserContext(), userId, ctx.Params("bookingId"))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Payment confirmed", res))
}
