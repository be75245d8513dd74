package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatConversation struct {
	Id           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ParticipantA uuid.UUID `gorm:"type:uuid;not null;index:idx_conversation_pair,priority:1"`
	ParticipantB uuid.UUID `gorm:"type:uuid;not null;index:idx_conversation_pair,priority:2"`
	LastMessage  datatypes.JSON
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ChatConversation) TableName() string {
	return "chat_conversations"
}
