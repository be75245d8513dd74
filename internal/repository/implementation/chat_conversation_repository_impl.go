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

type chatConversationRepositoryImpl struct {
	db *gorm.DB
}

func NewChatConversationRepository(db *gorm.DB) contract.ChatConversationRepository {
	return &chatConversationRepositoryImpl{db: db}
}

func (r *chatConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.ChatConversation) error {
	return r.db.WithContext(ctx).Create(r.mapToModel(conversation)).Error
}

func (r *chatConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatConversation, error) {
	var mc model.ChatConversation
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&mc), nil
}

func (r *chatConversationRepositoryImpl) FindByPair(ctx context.Context, a, b uuid.UUID) (*entity.ChatConversation, error) {
	var mc model.ChatConversation
	err := r.db.WithContext(ctx).
		Where("(participant_a = ? AND participant_b = ?) OR (participant_a = ? AND participant_b = ?)", a, b, b, a).
		First(&mc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&mc), nil
}

func (r *chatConversationRepositoryImpl) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]*entity.ChatConversation, error) {
	var mcs []*model.ChatConversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("updated_at DESC").
		Find(&mcs).Error
	if err != nil {
		return nil, err
	}
	var conversations []*entity.ChatConversation
	for _, mc := range mcs {
		conversations = append(conversations, r.mapToEntity(mc))
	}
	return conversations, nil
}

func (r *chatConversationRepositoryImpl) Update(ctx context.Context, conversation *entity.ChatConversation) error {
	mc := r.mapToModel(conversation)
	return r.db.WithContext(ctx).Model(&model.ChatConversation{}).
		Where("id = ?", conversation.Id).
		Updates(map[string]interface{}{
			"last_message": mc.LastMessage,
		}).Error
}

func (r *chatConversationRepositoryImpl) mapToModel(c *entity.ChatConversation) *model.ChatConversation {
	mc := &model.ChatConversation{
		Id:           c.Id,
		ParticipantA: c.ParticipantA,
		ParticipantB: c.ParticipantB,
	}
	if c.LastMessage != nil {
		if raw, err := json.Marshal(c.LastMessage); err == nil {
			mc.LastMessage = datatypes.JSON(raw)
		}
	}
	return mc
}

func (r *chatConversationRepositoryImpl) mapToEntity(mc *model.ChatConversation) *entity.ChatConversation {
	c := &entity.ChatConversation{
		Id:           mc.Id,
		ParticipantA: mc.ParticipantA,
		ParticipantB: mc.ParticipantB,
		CreatedAt:    mc.CreatedAt,
		UpdatedAt:    mc.UpdatedAt,
	}
	if len(mc.LastMessage) > 0 {
		var lm entity.LastMessage
		if err := json.Unmarshal(mc.LastMessage, &lm); err == nil {
			c.LastMessage = &lm
		}
	}
	return c
}
