package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateStoryRequest struct {
	Philosophy1 string `json:"philosophy1" validate:"required,oneof=stoicism existentialism taoism hedonism"`
	Philosophy2 string `json:"philosophy2" validate:"required,oneof=stoicism existentialism taoism hedonism"`
	Emotion1    string `json:"emotion1" validate:"required"`
	Emotion2    string `json:"emotion2" validate:"required"`
	Setting     string `json:"setting" validate:"required,oneof=forest ocean library mountain cosmic"`
	Duration    string `json:"duration" validate:"required,oneof=5 10 15"`
}

type StoryParamsDTO struct {
	Philosophy1 string `json:"philosophy1"`
	Philosophy2 string `json:"philosophy2"`
	Emotion1    string `json:"emotion1"`
	Emotion2    string `json:"emotion2"`
	Setting     string `json:"setting"`
	Duration    string `json:"duration"`
}

type StoryResponse struct {
	Id           uuid.UUID      `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	VisualPrompt string         `json:"visual_prompt"`
	ImageUrl     string         `json:"image_url,omitempty"`
	HasAudio     bool           `json:"has_audio"`
	Params       StoryParamsDTO `json:"params"`
}

type SpeakStoryResponse struct {
	StoryId     uuid.UUID `json:"story_id"`
	AudioBase64 string    `json:"audio_base64"`
	Cached      bool      `json:"cached"`
}
