package controller

import (
	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/pkg/serverutils"
	"legal-consult-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StartConversation(ctx *fiber.Ctx) error
	ListConversations(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type ChatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &ChatController{chatService: chatService}
}

func (c *ChatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat", serverutils.JwtMiddleware)
	h.Post("/start", c.StartConversation)
	h.Get("/conversations", c.ListConversations)
	h.Get("/history/:conversationId", c.GetMessages)
	h.Post("/send", c.SendMessage)
}

func (c *ChatController) StartConversation(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	var req dto.StartConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.chatService.StartConversation(ctx.UserContext(), userId, &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Conversation ready", res))
}

func (c *ChatController) ListConversations(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	res, err := c.chatService.GetConversations(ctx.UserContext(), userId)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Conversations", res))
}

func (c *ChatController) GetMessages(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	conversationId, err := uuid.Parse(ctx.Params("conversationId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid conversation id"))
	}

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.chatService.GetMessages(ctx.UserContext(), userId, conversationId, limit, offset)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Messages", res))
}

func (c *ChatController) SendMessage(ctx *fiber.Ctx) error {
	userIdStr, ok := currentUserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token subject"))
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.chatService.SendMessage(ctx.UserContext(), userId, req.ConversationID, &req)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message sent", res))
}
