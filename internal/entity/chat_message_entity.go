package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID
	Chat      string
	Role      string
	CreatedAt time.Time
}
