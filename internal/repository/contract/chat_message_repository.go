package contract

import (
	"context"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MarkRead flags every message in the conversation not sent by the reader.
	MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) error
}
