package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"oak-village-be/internal/constant"
	"oak-village-be/internal/dto"
	"oak-village-be/internal/entity"
	"oak-village-be/internal/mapper"
	"oak-village-be/internal/pkg/logger"
	"oak-village-be/internal/repository/memory"
	"oak-village-be/pkg/events"
	"oak-village-be/pkg/gateway"
)

var (
	ErrStoryNotFound   = errors.New("story: not found")
	ErrStoryGeneration = errors.New(constant.MsgStoryGenerationError)
	ErrSpeechSynthesis = errors.New("story: could not generate audio")
)

type IStoryService interface {
	Generate(ctx context.Context, req *dto.GenerateStoryRequest) (*dto.StoryResponse, error)
	Speak(ctx context.Context, id uuid.UUID) (*dto.SpeakStoryResponse, error)
	Save(ctx context.Context, id uuid.UUID) (*dto.StoryResponse, error)
	List(ctx context.Context) ([]*dto.StoryResponse, error)
}

type storyService struct {
	gatewayFactory gateway.Factory
	storyRepo      *memory.StoryRepository
	publisher      IPublisherService
	log            logger.ILogger
	mapper         *mapper.StoryMapper
}

func NewStoryService(
	gatewayFactory gateway.Factory,
	storyRepo *memory.StoryRepository,
	publisher IPublisherService,
	log logger.ILogger,
) IStoryService {
	return &storyService{
		gatewayFactory: gatewayFactory,
		storyRepo:      storyRepo,
		publisher:      publisher,
		log:            log,
		mapper:         mapper.NewStoryMapper(),
	}
}

// Generate requests the narrative (mandatory) and then an illustration
// (best-effort: a failed illustration never fails the story).
func (s *storyService) Generate(ctx context.Context, req *dto.GenerateStoryRequest) (*dto.StoryResponse, error) {
	gw := s.gatewayFactory.New()

	draft, err := gw.GenerateNarrative(ctx, gateway.NarrativeParams{
		Philosophy1: req.Philosophy1,
		Philosophy2: req.Philosophy2,
		Emotion1:    req.Emotion1,
		Emotion2:    req.Emotion2,
		Setting:     req.Setting,
		Duration:    req.Duration,
	})
	if err != nil {
		s.log.Error("story", "narrative generation failed", map[string]interface{}{"error": err.Error()})
		return nil, ErrStoryGeneration
	}

	story := &entity.StorySession{
		Id:           uuid.New(),
		CreatedAt:    time.Now(),
		Title:        draft.Title,
		Content:      draft.StoryText,
		VisualPrompt: draft.VisualPrompt,
		Params: entity.StoryParams{
			Philosophy1: req.Philosophy1,
			Philosophy2: req.Philosophy2,
			Emotion1:    req.Emotion1,
			Emotion2:    req.Emotion2,
			Setting:     req.Setting,
			Duration:    req.Duration,
		},
	}

	imageUrl, err := gw.GenerateImage(ctx, draft.VisualPrompt, entity.ImageSize1K)
	if err != nil {
		// Degraded-but-usable: the story ships without an illustration.
		s.log.Warn("story", "illustration skipped", map[string]interface{}{"error": err.Error()})
	} else {
		story.ImageUrl = imageUrl
	}

	s.storyRepo.SaveDraft(story)
	return s.mapper.StoryToResponse(story), nil
}

// Speak synthesizes speech for a story once; repeated calls return the
// cached payload so the client can toggle playback without a new request.
func (s *storyService) Speak(ctx context.Context, id uuid.UUID) (*dto.SpeakStoryResponse, error) {
	story, found := s.find(id)
	if !found {
		return nil, ErrStoryNotFound
	}

	if story.AudioBase64 != "" {
		return &dto.SpeakStoryResponse{
			StoryId:     story.Id,
			AudioBase64: story.AudioBase64,
			Cached:      true,
		}, nil
	}

	gw := s.gatewayFactory.New()
	audio, err := gw.SynthesizeSpeech(ctx, story.Content)
	if err != nil {
		s.log.Error("story", "speech synthesis failed", map[string]interface{}{"error": err.Error()})
		return nil, ErrSpeechSynthesis
	}
	story.AudioBase64 = audio

	return &dto.SpeakStoryResponse{
		StoryId:     story.Id,
		AudioBase64: audio,
		Cached:      false,
	}, nil
}

func (s *storyService) Save(ctx context.Context, id uuid.UUID) (*dto.StoryResponse, error) {
	story, found := s.find(id)
	if !found {
		return nil, ErrStoryNotFound
	}

	s.storyRepo.Archive(story)

	event := events.StoryArchived{
		StoryId:    story.Id.String(),
		Title:      story.Title,
		Setting:    story.Params.Setting,
		OccurredAt: time.Now(),
	}
	if payload, err := json.Marshal(event); err == nil {
		if err := s.publisher.Publish(ctx, constant.TopicStoryArchived, payload); err != nil {
			s.log.Warn("story", "failed to publish archive event", map[string]interface{}{"error": err.Error()})
		}
	}

	return s.mapper.StoryToResponse(story), nil
}

func (s *storyService) List(ctx context.Context) ([]*dto.StoryResponse, error) {
	return s.mapper.StoriesToResponse(s.storyRepo.ListArchived()), nil
}

func (s *storyService) find(id uuid.UUID) (*entity.StorySession, bool) {
	if story, found := s.storyRepo.GetDraft(id); found {
		return story, true
	}
	return s.storyRepo.GetArchived(id)
}
