package service

import (
	"context"
	"time"

	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/specification"
	"legal-consult-be/internal/repository/unitofwork"
	"legal-consult-be/internal/websocket"

	"github.com/google/uuid"
)

type IChatService interface {
	StartConversation(ctx context.Context, userID uuid.UUID, req *dto.StartConversationRequest) (*dto.ConversationDTO, error)
	GetConversations(ctx context.Context, userID uuid.UUID) ([]*dto.ConversationDTO, error)
	GetMessages(ctx context.Context, userID, conversationID uuid.UUID, limit, offset int) ([]*dto.MessageDTO, error)
	SendMessage(ctx context.Context, userID, conversationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageDTO, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	hub        *websocket.Hub
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, hub *websocket.Hub) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		hub:        hub,
	}
}

func (s *chatService) StartConversation(ctx context.Context, userID uuid.UUID, req *dto.StartConversationRequest) (*dto.ConversationDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	peer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.PeerID})
	if err != nil || peer == nil {
		return nil, ErrUserNotFound
	}

	conversation, err := uow.ChatConversationRepository().FindByPair(ctx, userID, req.PeerID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		conversation = &entity.ChatConversation{
			Id:           uuid.New(),
			ParticipantA: userID,
			ParticipantB: req.PeerID,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := uow.ChatConversationRepository().Create(ctx, conversation); err != nil {
			return nil, err
		}
	}

	return s.mapConversation(ctx, uow, conversation, userID)
}

func (s *chatService) GetConversations(ctx context.Context, userID uuid.UUID) ([]*dto.ConversationDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ChatConversationRepository().FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConversationDTO, 0, len(conversations))
	for _, c := range conversations {
		d, err := s.mapConversation(ctx, uow, c, userID)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

func (s *chatService) GetMessages(ctx context.Context, userID, conversationID uuid.UUID, limit, offset int) ([]*dto.MessageDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ChatConversationRepository().FindOne(ctx, specification.ByID{ID: conversationID})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}
	if !conversation.HasParticipant(userID) {
		return nil, ErrForbidden
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.Filter("conversation_id", conversationID),
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	// Reading a conversation clears the peer's unread markers.
	if err := uow.ChatMessageRepository().MarkRead(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	result := make([]*dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		result = append(result, mapMessageToDTO(m))
	}
	return result, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ChatConversationRepository().FindOne(ctx, specification.ByID{ID: conversationID})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}
	if !conversation.HasParticipant(userID) {
		return nil, ErrForbidden
	}

	message := &entity.ChatMessage{
		Id:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       userID,
		Text:           req.Text,
		Attachments:    req.Attachments,
		CreatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}

	conversation.LastMessage = &entity.LastMessage{
		Text:      req.Text,
		SenderID:  userID,
		CreatedAt: message.CreatedAt,
	}
	if err := uow.ChatConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	result := mapMessageToDTO(message)

	if s.hub != nil {
		s.hub.Publish("chat:"+conversationID.String(), "new_message", result)
		// Nudge the peer even when they have not joined the channel.
		peer := conversation.ParticipantA
		if peer == userID {
			peer = conversation.ParticipantB
		}
		s.hub.Send(peer, "conversation_updated", dto.LastMessageDTO{
			Text:      req.Text,
			SenderID:  userID,
			CreatedAt: message.CreatedAt,
		})
	}

	return result, nil
}

func (s *chatService) mapConversation(ctx context.Context, uow unitofwork.UnitOfWork, c *entity.ChatConversation, viewer uuid.UUID) (*dto.ConversationDTO, error) {
	// Count unread messages sent by the other side.
	peer := c.ParticipantA
	if peer == viewer {
		peer = c.ParticipantB
	}
	unreadCount, err := uow.ChatMessageRepository().Count(ctx,
		specification.Filter("conversation_id", c.Id),
		specification.Filter("is_read", false),
		specification.Filter("sender_id", peer),
	)
	if err != nil {
		return nil, err
	}

	d := &dto.ConversationDTO{
		Id:           c.Id,
		ParticipantA: c.ParticipantA,
		ParticipantB: c.ParticipantB,
		UnreadCount:  unreadCount,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.LastMessage != nil {
		d.LastMessage = &dto.LastMessageDTO{
			Text:      c.LastMessage.Text,
			SenderID:  c.LastMessage.SenderID,
			CreatedAt: c.LastMessage.CreatedAt,
		}
	}
	return d, nil
}

func mapMessageToDTO(m *entity.ChatMessage) *dto.MessageDTO {
	return &dto.MessageDTO{
		Id:             m.Id,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Text:           m.Text,
		Attachments:    m.Attachments,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
