package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"oak-village-be/internal/constant"
	"oak-village-be/internal/dto"
	"oak-village-be/internal/entity"
	"oak-village-be/internal/mapper"
	"oak-village-be/internal/pkg/logger"
	"oak-village-be/pkg/gateway"
)

var (
	ErrEmptyMessage     = errors.New("relay: empty message")
	ErrNoConversation   = errors.New("relay: no open conversation")
	ErrExchangeInFlight = errors.New("relay: an exchange is already in flight")
)

// IRelayService mediates follow-up questions against the conversation
// context opened by a completed dream pipeline. One exchange at a time.
type IRelayService interface {
	Bind(conv gateway.Conversation)
	Clear()
	Send(ctx context.Context, text string) (*dto.SendChatResponse, error)
	History() []*dto.ChatMessageResponse
}

type relayService struct {
	mu       sync.Mutex
	conv     gateway.Conversation
	inFlight bool
	messages []*entity.ChatMessage

	log    logger.ILogger
	mapper *mapper.DreamMapper
}

func NewRelayService(log logger.ILogger) IRelayService {
	return &relayService{
		log:    log,
		mapper: mapper.NewDreamMapper(),
	}
}

// Bind attaches a conversation context and starts a fresh message log.
func (s *relayService) Bind(conv gateway.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv = conv
	s.messages = nil
	s.inFlight = false
}

// Clear drops the relay's reference; the provider-side context object is
// not torn down and may outlive the session that opened it.
func (s *relayService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv = nil
	s.messages = nil
	s.inFlight = false
}

func (s *relayService) Send(ctx context.Context, text string) (*dto.SendChatResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.conv == nil {
		s.mu.Unlock()
		return nil, ErrNoConversation
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrExchangeInFlight
	}

	// Optimistic insert: the user turn joins the log before the provider
	// answers, insertion order is the display order.
	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		Chat:      text,
		Role:      constant.ChatMessageRoleUser,
		CreatedAt: time.Now(),
	}
	s.messages = append(s.messages, userMsg)
	s.inFlight = true
	conv := s.conv
	s.mu.Unlock()

	reply, err := conv.SendMessage(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		// Dropped exchange: no assistant message, no error bubble.
		s.log.Error("relay", "exchange dropped", map[string]interface{}{"error": err.Error()})
		return &dto.SendChatResponse{
			Sent:  s.mapper.ChatMessageToResponse(userMsg),
			Reply: nil,
		}, nil
	}

	if reply == "" {
		reply = constant.MsgChatFallbackReply
	}
	modelMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		Chat:      reply,
		Role:      constant.ChatMessageRoleModel,
		CreatedAt: time.Now(),
	}
	s.messages = append(s.messages, modelMsg)

	return &dto.SendChatResponse{
		Sent:  s.mapper.ChatMessageToResponse(userMsg),
		Reply: s.mapper.ChatMessageToResponse(modelMsg),
	}, nil
}

func (s *relayService) History() []*dto.ChatMessageResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*dto.ChatMessageResponse, 0, len(s.messages))
	for _, msg := range s.messages {
		out = append(out, s.mapper.ChatMessageToResponse(msg))
	}
	return out
}
