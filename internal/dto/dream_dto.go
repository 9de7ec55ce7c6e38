package dto

import (
	"time"

	"github.com/google/uuid"

	"oak-village-be/internal/entity"
)

type InterpretDreamRequest struct {
	Audio    string `json:"audio" validate:"required"` // base64 payload
	MimeType string `json:"mime_type"`
}

type SetImageSizeRequest struct {
	Size string `json:"size" validate:"required,oneof=1K 2K 4K"`
}

type ArchetypeDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DreamAnalysisDTO struct {
	Title          string         `json:"title"`
	Summary        string         `json:"summary"`
	EmotionalTheme string         `json:"emotional_theme"`
	Archetypes     []ArchetypeDTO `json:"archetypes"`
	Interpretation string         `json:"interpretation"`
}

// DreamSessionResponse is the session snapshot; Error carries the
// user-facing message on the failure paths (status is idle then).
type DreamSessionResponse struct {
	Id            uuid.UUID          `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	Status        entity.DreamStatus `json:"status"`
	Transcription string             `json:"transcription,omitempty"`
	VisualPrompt  string             `json:"visual_prompt,omitempty"`
	ImageUrl      string             `json:"image_url,omitempty"`
	Analysis      *DreamAnalysisDTO  `json:"analysis,omitempty"`
	ImageSize     entity.ImageSize   `json:"image_size"`
	Error         string             `json:"error,omitempty"`
}

type SendChatRequest struct {
	Chat string `json:"chat" validate:"required"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

// SendChatResponse mirrors the relay contract: Reply is null when the
// exchange was dropped.
type SendChatResponse struct {
	Sent  *ChatMessageResponse `json:"sent"`
	Reply *ChatMessageResponse `json:"reply"`
}
