package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"oak-village-be/internal/constant"
	"oak-village-be/internal/dto"
	"oak-village-be/internal/entity"
	"oak-village-be/internal/mapper"
	"oak-village-be/internal/pkg/logger"
	"oak-village-be/pkg/events"
	"oak-village-be/pkg/gateway"
)

var ErrInterpretationInFlight = errors.New("dream: an interpretation is already in progress")

// IDreamService drives one dream session through the interpretation
// pipeline: transcription, image generation, analysis, conversation seeding.
type IDreamService interface {
	Interpret(ctx context.Context, audio []byte, mimeType string) (*dto.DreamSessionResponse, error)
	Session() *dto.DreamSessionResponse
	Reset() *dto.DreamSessionResponse
	SetImageSize(size entity.ImageSize) *dto.DreamSessionResponse
}

type dreamService struct {
	mu        sync.Mutex
	session   *entity.DreamSession
	lastError string
	busy      bool
	epoch     uint64 // bumped on reset; stale pipeline outcomes are discarded

	gatewayFactory gateway.Factory
	relay          IRelayService
	publisher      IPublisherService
	log            logger.ILogger
	mapper         *mapper.DreamMapper
}

func NewDreamService(
	gatewayFactory gateway.Factory,
	relay IRelayService,
	publisher IPublisherService,
	log logger.ILogger,
	defaultSize entity.ImageSize,
) IDreamService {
	return &dreamService{
		session:        newDreamSession(defaultSize),
		gatewayFactory: gatewayFactory,
		relay:          relay,
		publisher:      publisher,
		log:            log,
		mapper:         mapper.NewDreamMapper(),
	}
}

func newDreamSession(size entity.ImageSize) *entity.DreamSession {
	return &entity.DreamSession{
		Id:        uuid.New(),
		CreatedAt: time.Now(),
		Status:    entity.DreamStatusIdle,
		ImageSize: size,
	}
}

// Interpret runs the full pipeline synchronously. Failures never surface as
// transport errors; the returned snapshot carries status idle plus one of
// the two user-facing messages.
func (s *dreamService) Interpret(ctx context.Context, audio []byte, mimeType string) (*dto.DreamSessionResponse, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrInterpretationInFlight
	}
	s.busy = true
	epoch := s.epoch
	// A run always starts from a clean record; partial results from a
	// failed attempt are never resumed.
	s.session = newDreamSession(s.session.ImageSize)
	s.session.Status = entity.DreamStatusProcessingAudio
	s.lastError = ""
	size := s.session.ImageSize
	s.mu.Unlock()

	gw := s.gatewayFactory.New()

	extract, err := gw.TranscribeAndExtract(ctx, audio, mimeType)
	if err != nil {
		return s.failGeneric(epoch, "transcription failed", err)
	}
	if !s.advance(epoch, func(sess *entity.DreamSession) {
		sess.Transcription = extract.Transcription
		sess.VisualPrompt = extract.VisualPrompt
		sess.Status = entity.DreamStatusGeneratingImage
	}) {
		return s.Session(), nil
	}

	imageUrl, err := gw.GenerateImage(ctx, extract.VisualPrompt, size)
	if err != nil {
		if gateway.IsModelUnavailable(err) {
			// Distinct, recoverable failure: prompt credential re-selection.
			return s.fail(epoch, constant.MsgImageModelUnavailable, "image model unavailable", err)
		}
		return s.failGeneric(epoch, "image generation failed", err)
	}
	if !s.advance(epoch, func(sess *entity.DreamSession) {
		sess.ImageUrl = imageUrl
		sess.Status = entity.DreamStatusAnalyzing
	}) {
		return s.Session(), nil
	}

	analysis, err := gw.AnalyzeText(ctx, extract.Transcription)
	if err != nil {
		return s.failGeneric(epoch, "analysis failed", err)
	}

	conv, err := gw.OpenConversation(ctx, extract.Transcription, analysis)
	if err != nil {
		return s.failGeneric(epoch, "conversation seeding failed", err)
	}

	// Commit in one epoch-checked section: completion, busy handoff and
	// relay binding must not land on a session a reset already replaced.
	var event *events.DreamCompleted
	s.mu.Lock()
	if epoch == s.epoch {
		s.session.Analysis = analysis
		s.session.Status = entity.DreamStatusComplete
		s.busy = false
		s.relay.Bind(conv)
		event = &events.DreamCompleted{
			SessionId:      s.session.Id.String(),
			Title:          analysis.Title,
			EmotionalTheme: analysis.EmotionalTheme,
			OccurredAt:     time.Now(),
		}
	}
	s.mu.Unlock()

	if event != nil {
		s.publishCompleted(ctx, event)
	}

	return s.Session(), nil
}

// advance applies a mutation iff no reset superseded the running pipeline.
func (s *dreamService) advance(epoch uint64, apply func(*entity.DreamSession)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	apply(s.session)
	return true
}

func (s *dreamService) failGeneric(epoch uint64, stage string, err error) (*dto.DreamSessionResponse, error) {
	return s.fail(epoch, constant.MsgGenericPipelineError, stage, err)
}

// fail resets the session to a fresh idle record (tier preserved) carrying
// the user-facing message. Stale failures are discarded like stale successes.
func (s *dreamService) fail(epoch uint64, message, stage string, err error) (*dto.DreamSessionResponse, error) {
	s.log.Error("dream", "pipeline aborted: "+stage, map[string]interface{}{"error": err.Error()})

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return s.mapper.SessionToResponse(s.session, s.lastError), nil
	}
	s.busy = false
	s.session = newDreamSession(s.session.ImageSize)
	s.lastError = message
	return s.mapper.SessionToResponse(s.session, s.lastError), nil
}

func (s *dreamService) publishCompleted(ctx context.Context, event *events.DreamCompleted) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, constant.TopicDreamCompleted, payload); err != nil {
		s.log.Warn("dream", "failed to publish completion event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *dreamService) Session() *dto.DreamSessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapper.SessionToResponse(s.session, s.lastError)
}

// Reset starts a fresh session keeping only the chosen image-size tier.
// A pipeline still in flight keeps running but its outcome is discarded.
func (s *dreamService) Reset() *dto.DreamSessionResponse {
	s.mu.Lock()
	s.epoch++
	s.busy = false
	s.session = newDreamSession(s.session.ImageSize)
	s.lastError = ""
	resp := s.mapper.SessionToResponse(s.session, "")
	s.mu.Unlock()

	s.relay.Clear()
	return resp
}

func (s *dreamService) SetImageSize(size entity.ImageSize) *dto.DreamSessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.ImageSize = size
	return s.mapper.SessionToResponse(s.session, s.lastError)
}
