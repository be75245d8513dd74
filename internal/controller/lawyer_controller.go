package controller

import (
	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/pkg/serverutils"
	"legal-consult-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILawyerController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Detail(ctx *fiber.Ctx) error
	UpsertSchedule(ctx *fiber.Ctx) error
	MySchedule(ctx *fiber.Ctx) error
	ScheduleByLawyer(ctx *fiber.Ctx) error
}

type LawyerController struct {
	lawyerService service.ILawyerService
}

func NewLawyerController(lawyerService service.ILawyerService) ILawyerController {
	return &LawyerController{lawyerService: lawyerService}
}

func (c *LawyerController) RegisterRoutes(r fiber.Router) {
	r.Get("/lawyers", c.List)
	r.Get("/schedule/:lawyerId", c.ScheduleByLawyer)

	h := r.Group("/lawyer", serverutils.JwtMiddleware)
	h.Post("/register", c.Register)
	h.Get("/detail", c.Detail)
	h.Post("/update-schedule", serverutils.RequireRole("lawyer"), c.UpsertSchedule)
	h.Get("/schedule", serverutils.RequireRole("lawyer"), c.MySchedule)

	admin := r.Group("/admin/lawyers", serverutils.JwtMiddleware, serverutils.RequireRole("admin"))
	admin.Post("/approve", c.Approve)
}

func (c *LawyerController) Register(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	var req dto.RegisterLawyerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.lawyerService.RegisterLawyer(ctx.UserContext(), userId, &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Lawyer application submitted", res))
}

func (c *LawyerController) Approve(ctx *fiber.Ctx) error {
	var req dto.ApproveLawyerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	if err := c.lawyerService.ApproveLawyer(ctx.UserContext(), &req); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Lawyer approval updated", nil))
}

func (c *LawyerController) List(ctx *fiber.Ctx) error {
	res, err := c.lawyerService.ListLawyers(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Approved lawyers", res))
}

func (c *LawyerController) Detail(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.lawyerService.GetLawyerDetail(ctx.UserContext(), userId)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Lawyer detail", res))
}

func (c *LawyerController) UpsertSchedule(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	var req dto.UpsertScheduleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.lawyerService.UpsertSchedule(ctx.UserContext(), userId, &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Schedule saved", res))
}

func (c *LawyerController) MySchedule(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.lawyerService.GetMySchedule(ctx.UserContext(), userId)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("My schedule", res))
}

func (c *LawyerController) ScheduleByLawyer(ctx *fiber.Ctx) error {
	lawyerId, err := uuid.Parse(ctx.Params("lawyerId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid lawyer id"))
	}

	res, err := c.lawyerService.GetScheduleByLawyerID(ctx.UserContext(), lawyerId)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Lawyer schedule", res))
}
