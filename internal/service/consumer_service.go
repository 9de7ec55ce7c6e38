package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"oak-village-be/internal/constant"
	"oak-village-be/internal/pkg/logger"
	"oak-village-be/pkg/events"
)

// IConsumerService is the village chronicle: it records completed dreams
// and archived stories from the event bus into the structured log.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub *gochannel.GoChannel
	log    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		log:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	dreams, err := cs.pubSub.Subscribe(ctx, constant.TopicDreamCompleted)
	if err != nil {
		return err
	}
	stories, err := cs.pubSub.Subscribe(ctx, constant.TopicStoryArchived)
	if err != nil {
		return err
	}

	go func() {
		for msg := range dreams {
			cs.recordDream(msg)
		}
	}()
	go func() {
		for msg := range stories {
			cs.recordStory(msg)
		}
	}()

	return nil
}

func (cs *consumerService) recordDream(msg *message.Message) {
	var event events.DreamCompleted
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error("chronicle", "failed to unmarshal dream event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are not retriable
		return
	}
	cs.log.Info("chronicle", "dream interpreted", map[string]interface{}{
		"session_id":      event.SessionId,
		"title":           event.Title,
		"emotional_theme": event.EmotionalTheme,
	})
	msg.Ack()
}

func (cs *consumerService) recordStory(msg *message.Message) {
	var event events.StoryArchived
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error("chronicle", "failed to unmarshal story event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}
	cs.log.Info("chronicle", "story archived", map[string]interface{}{
		"story_id": event.StoryId,
		"title":    event.Title,
		"setting":  event.Setting,
	})
	msg.Ack()
}
