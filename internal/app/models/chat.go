package models

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type ChatRole string

const (
	ChatRoleBot  ChatRole = "bot"
	ChatRoleUser ChatRole = "user"
)

type ChatEntry struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChatEntry(role ChatRole, message string, now time.Time) ChatEntry {
	return ChatEntry{
		ID:        ulid.Make().String(),
		Role:      role,
		Message:   message,
		Timestamp: now,
	}
}
