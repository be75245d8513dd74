package controller

import (
	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/pkg/serverutils"
	"legal-consult-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	VerifyEmail(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	UpdateToken(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
}

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) RegisterRoutes(r fiber.Router) {
	r.Post("/register", c.Register)
	r.Post("/verify-email", c.VerifyEmail)
	r.Post("/login", c.Login)
	r.Post("/update-token", c.UpdateToken)

	r.Post("/change-password", serverutils.JwtMiddleware, c.ChangePassword)
}

func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.authService.Register(ctx.UserContext(), &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Registration successful, verification code sent", res))
}

func (c *AuthController) VerifyEmail(ctx *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	if err := c.authService.VerifyEmail(ctx.UserContext(), &req); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Email verified", nil))
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.authService.Login(ctx.UserContext(), &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *AuthController) UpdateToken(ctx *fiber.Ctx) error {
	var req dto.UpdateTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.authService.UpdateToken(ctx.UserContext(), &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Token refreshed", res))
}

func (c *AuthController) ChangePassword(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	if err := c.authService.ChangePassword(ctx.UserContext(), userId, &req); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Password updated", nil))
}
