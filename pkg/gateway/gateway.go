package gateway

import (
	"context"

	"oak-village-be/internal/entity"
)

// DreamExtract is the combined result of the transcription call.
type DreamExtract struct {
	Transcription string `json:"transcription"`
	VisualPrompt  string `json:"visualPrompt"`
}

// NarrativeParams are the story generation knobs forwarded to the model.
type NarrativeParams struct {
	Philosophy1 string
	Philosophy2 string
	Emotion1    string
	Emotion2    string
	Setting     string
	Duration    string // minutes: "5" | "10" | "15"
}

// StoryDraft is the raw narrative payload before it becomes a StorySession.
type StoryDraft struct {
	Title        string `json:"title"`
	StoryText    string `json:"story_text"`
	VisualPrompt string `json:"visual_prompt"`
}

// Conversation is a provider-side context retaining prior turns, so
// follow-up questions do not need to resend the dream or the analysis.
type Conversation interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Gateway is the boundary to the external generative AI service.
type Gateway interface {
	TranscribeAndExtract(ctx context.Context, audio []byte, mimeType string) (*DreamExtract, error)
	GenerateImage(ctx context.Context, prompt string, size entity.ImageSize) (string, error)
	AnalyzeText(ctx context.Context, transcription string) (*entity.DreamAnalysis, error)
	OpenConversation(ctx context.Context, transcription string, analysis *entity.DreamAnalysis) (Conversation, error)
	GenerateNarrative(ctx context.Context, params NarrativeParams) (*StoryDraft, error)
	SynthesizeSpeech(ctx context.Context, text string) (string, error)
	ListenToConfession(ctx context.Context, confession string) (string, error)
}

// Factory hands out Gateway handles. Callers get a fresh handle per use so
// credential selection stays externally controllable.
type Factory interface {
	New() Gateway
}

// FactoryFunc adapts a plain constructor to the Factory interface.
type FactoryFunc func() Gateway

func (f FactoryFunc) New() Gateway {
	return f()
}
