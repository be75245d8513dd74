package implementation

import (
	"context"
	"encoding/json"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/model"
	"legal-consult-be/internal/repository/contract"
	"legal-consult-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type chatMessageRepositoryImpl struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &chatMessageRepositoryImpl{db: db}
}

func (r *chatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	mm := &model.ChatMessage{
		Id:             message.Id,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Text:           message.Text,
		IsRead:         message.IsRead,
	}
	if len(message.Attachments) > 0 {
		if raw, err := json.Marshal(message.Attachments); err == nil {
			mm.Attachments = datatypes.JSON(raw)
		}
	}
	return r.db.WithContext(ctx).Create(mm).Error
}

func (r *chatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var mms []*model.ChatMessage
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mms).Error; err != nil {
		return nil, err
	}
	var messages []*entity.ChatMessage
	for _, mm := range mms {
		msg := &entity.ChatMessage{
			Id:             mm.Id,
			ConversationID: mm.ConversationID,
			SenderID:       mm.SenderID,
			Text:           mm.Text,
			IsRead:         mm.IsRead,
			CreatedAt:      mm.CreatedAt,
		}
		if len(mm.Attachments) > 0 {
			_ = json.Unmarshal(mm.Attachments, &msg.Attachments)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *chatMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.ChatMessage{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *chatMessageRepositoryImpl) MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}
