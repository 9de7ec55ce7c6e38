package service

import (
	"context"
	"sync"

	"oak-village-be/internal/entity"
	"oak-village-be/pkg/gateway"
)

// stubGateway is a scriptable Gateway used across the service tests.
type stubGateway struct {
	extract      *gateway.DreamExtract
	extractErr   error
	onTranscribe func()

	imageUrl   string
	imageErr   error
	onImage    func()
	imageSize  entity.ImageSize
	imageCalls int

	analysis     *entity.DreamAnalysis
	analysisErr  error
	analyzeCalls int

	conv           gateway.Conversation
	convErr        error
	onConversation func()

	draft    *gateway.StoryDraft
	draftErr error

	audio      string
	audioErr   error
	audioCalls int

	reflection    string
	reflectionErr error
}

func happyStubGateway() *stubGateway {
	return &stubGateway{
		extract: &gateway.DreamExtract{
			Transcription: "I was flying over a silver lake",
			VisualPrompt:  "a figure gliding over moonlit water",
		},
		imageUrl: "data:image/png;base64,abc",
		analysis: &entity.DreamAnalysis{
			Title:          "The Silver Lake",
			Summary:        "A flight over still water",
			EmotionalTheme: "freedom",
			Archetypes:     []entity.Archetype{{Name: "The Explorer", Description: "seeks the unknown"}},
			Interpretation: "A longing for open horizons",
		},
		conv: &stubConversation{reply: "The lake often stands for the unconscious."},
		draft: &gateway.StoryDraft{
			Title:        "The Quiet Grove",
			StoryText:    "Once, beneath an old oak...",
			VisualPrompt: "an oak grove at dusk",
		},
		audio:      "UklGRg==",
		reflection: "The smoke carries it away.",
	}
}

func (s *stubGateway) TranscribeAndExtract(ctx context.Context, audio []byte, mimeType string) (*gateway.DreamExtract, error) {
	if s.onTranscribe != nil {
		s.onTranscribe()
	}
	return s.extract, s.extractErr
}

func (s *stubGateway) GenerateImage(ctx context.Context, prompt string, size entity.ImageSize) (string, error) {
	s.imageCalls++
	s.imageSize = size
	if s.onImage != nil {
		s.onImage()
	}
	if s.imageErr != nil {
		return "", s.imageErr
	}
	return s.imageUrl, nil
}

func (s *stubGateway) AnalyzeText(ctx context.Context, transcription string) (*entity.DreamAnalysis, error) {
	s.analyzeCalls++
	return s.analysis, s.analysisErr
}

func (s *stubGateway) OpenConversation(ctx context.Context, transcription string, analysis *entity.DreamAnalysis) (gateway.Conversation, error) {
	if s.onConversation != nil {
		s.onConversation()
	}
	return s.conv, s.convErr
}

func (s *stubGateway) GenerateNarrative(ctx context.Context, params gateway.NarrativeParams) (*gateway.StoryDraft, error) {
	return s.draft, s.draftErr
}

func (s *stubGateway) SynthesizeSpeech(ctx context.Context, text string) (string, error) {
	s.audioCalls++
	if s.audioErr != nil {
		return "", s.audioErr
	}
	return s.audio, nil
}

func (s *stubGateway) ListenToConfession(ctx context.Context, confession string) (string, error) {
	return s.reflection, s.reflectionErr
}

func (s *stubGateway) factory() gateway.Factory {
	return gateway.FactoryFunc(func() gateway.Gateway { return s })
}

type stubConversation struct {
	reply string
	err   error
	sent  []string
	fn    func(text string) (string, error)
}

func (s *stubConversation) SendMessage(ctx context.Context, text string) (string, error) {
	s.sent = append(s.sent, text)
	if s.fn != nil {
		return s.fn(text)
	}
	return s.reply, s.err
}

// stubPublisher records published events.
type stubPublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
}

func (s *stubPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, topic)
	s.payloads = append(s.payloads, payload)
	return nil
}

func (s *stubPublisher) published() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.topics...)
}
