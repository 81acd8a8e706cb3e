package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Fill is a single placeholder mutation reported by one chat turn.
// It is a diff, not the full state of a placeholder; the snapshot is
// the source of truth.
type Fill struct {
	PlaceholderID string
	FieldLabel    string
	Value         string
}

// ChatMessage is one entry in the session transcript. Immutable once created.
type ChatMessage struct {
	ID        string
	Role      Role
	Content   string
	Fills     []Fill
	CreatedAt time.Time
}

// NewChatMessage builds a transcript entry with a fresh ID and timestamp.
func NewChatMessage(role Role, content string, fills []Fill) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Fills:     fills,
		CreatedAt: time.Now(),
	}
}
