package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null"`
	Text           string    `gorm:"type:text;not null"`
	Attachments    datatypes.JSON
	IsRead         bool `gorm:"not null;default:false"`
	CreatedAt      time.Time

	Conversation ChatConversation `gorm:"foreignKey:ConversationID"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
