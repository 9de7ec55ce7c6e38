package entity

import (
	"time"

	"github.com/google/uuid"
)

// DreamStatus is the lifecycle state of one interpretation attempt.
type DreamStatus string

const (
	DreamStatusIdle            DreamStatus = "idle"
	DreamStatusRecording       DreamStatus = "recording" // owned by the capturing client
	DreamStatusProcessingAudio DreamStatus = "processing_audio"
	DreamStatusGeneratingImage DreamStatus = "generating_image"
	DreamStatusAnalyzing       DreamStatus = "analyzing"
	DreamStatusComplete        DreamStatus = "complete"
)

// ImageSize is the requested resolution tier for generated images.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

type DreamSession struct {
	Id            uuid.UUID
	CreatedAt     time.Time
	Status        DreamStatus
	Transcription string
	VisualPrompt  string
	ImageUrl      string
	Analysis      *DreamAnalysis
	ImageSize     ImageSize
}

// DreamAnalysis is immutable once produced; it is present iff the owning
// session reached DreamStatusComplete.
type DreamAnalysis struct {
	Title          string      `json:"title"`
	Summary        string      `json:"summary"`
	EmotionalTheme string      `json:"emotionalTheme"`
	Archetypes     []Archetype `json:"archetypes"`
	Interpretation string      `json:"interpretation"`
}

type Archetype struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
