package entity

import (
	"time"

	"github.com/google/uuid"
)

// LastMessage is the denormalized preview stored on the conversation.
type LastMessage struct {
	Text      string    `json:"text"`
	SenderID  uuid.UUID `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatConversation struct {
	Id           uuid.UUID
	ParticipantA uuid.UUID
	ParticipantB uuid.UUID
	LastMessage  *LastMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *ChatConversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

type ChatMessage struct {
	Id             uuid.UUID
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Text           string
	Attachments    []string
	IsRead         bool
	CreatedAt      time.Time
}
