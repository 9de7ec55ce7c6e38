package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoryParams are the generation knobs chosen by the listener.
type StoryParams struct {
	Philosophy1 string
	Philosophy2 string
	Emotion1    string
	Emotion2    string
	Setting     string
	Duration    string // minutes: "5" | "10" | "15"
}

type StorySession struct {
	Id           uuid.UUID
	CreatedAt    time.Time
	Title        string
	Content      string
	VisualPrompt string
	ImageUrl     string
	AudioBase64  string // cached TTS payload, filled on first Speak
	Params       StoryParams
}
