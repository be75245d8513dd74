package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartConversationRequest struct {
	PeerID uuid.UUID `json:"peer_id" validate:"required"`
}

type SendMessageRequest struct {
	ConversationID uuid.UUID `json:"conversation_id" validate:"required"`
	Text           string    `json:"text" validate:"required"`
	Attachments    []string  `json:"attachments"`
}

type ConversationDTO struct {
	Id           uuid.UUID       `json:"id"`
	ParticipantA uuid.UUID       `json:"participant_a"`
	ParticipantB uuid.UUID       `json:"participant_b"`
	LastMessage  *LastMessageDTO `json:"last_message,omitempty"`
	UnreadCount  int64           `json:"unread_count"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type LastMessageDTO struct {
	Text      string    `json:"text"`
	SenderID  uuid.UUID `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageDTO struct {
	Id             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Text           string    `json:"text"`
	Attachments    []string  `json:"attachments,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
