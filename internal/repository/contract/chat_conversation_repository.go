package contract

import (
	"context"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatConversationRepository interface {
	Create(ctx context.Context, conversation *entity.ChatConversation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatConversation, error)
	// FindByPair finds the conversation between two users regardless of the
	// order they were stored in.
	FindByPair(ctx context.Context, a, b uuid.UUID) (*entity.ChatConversation, error)
	// FindAllForUser lists conversations the user participates in, most
	// recently active first.
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]*entity.ChatConversation, error)
	Update(ctx context.Context, conversation *entity.ChatConversation) error
}
