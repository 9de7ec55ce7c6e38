package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oak-village-be/internal/constant"
	"oak-village-be/internal/dto"
	"oak-village-be/internal/pkg/logger"
	"oak-village-be/internal/repository/memory"
)

func newStoryFixture(gw *stubGateway) (IStoryService, *stubPublisher) {
	pub := &stubPublisher{}
	svc := NewStoryService(gw.factory(), memory.NewStoryRepository(), pub, logger.NewNopLogger())
	return svc, pub
}

func storyRequest() *dto.GenerateStoryRequest {
	return &dto.GenerateStoryRequest{
		Philosophy1: "stoicism",
		Philosophy2: "taoism",
		Emotion1:    "wonder",
		Emotion2:    "calm",
		Setting:     "forest",
		Duration:    "5",
	}
}

func TestGenerateStory(t *testing.T) {
	gw := happyStubGateway()
	svc, _ := newStoryFixture(gw)

	resp, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)

	assert.Equal(t, "The Quiet Grove", resp.Title)
	assert.Equal(t, "Once, beneath an old oak...", resp.Content)
	assert.Equal(t, "data:image/png;base64,abc", resp.ImageUrl)
	assert.False(t, resp.HasAudio)
	assert.Equal(t, "forest", resp.Params.Setting)
}

func TestGenerateStoryImageFailureIsSwallowed(t *testing.T) {
	gw := happyStubGateway()
	gw.imageErr = errors.New("image model down")
	svc, _ := newStoryFixture(gw)

	resp, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.ImageUrl)
	assert.Equal(t, "The Quiet Grove", resp.Title)
}

func TestGenerateStoryNarrativeFailure(t *testing.T) {
	gw := happyStubGateway()
	gw.draftErr = errors.New("timeout")
	svc, _ := newStoryFixture(gw)

	_, err := svc.Generate(context.Background(), storyRequest())
	require.ErrorIs(t, err, ErrStoryGeneration)
	assert.Equal(t, constant.MsgStoryGenerationError, err.Error())
	// No half-generated story should be requestable afterwards.
	stories, listErr := svc.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, stories)
}

func TestSpeakStoryCachesAudio(t *testing.T) {
	gw := happyStubGateway()
	svc, _ := newStoryFixture(gw)

	story, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)

	first, err := svc.Speak(context.Background(), story.Id)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "UklGRg==", first.AudioBase64)

	second, err := svc.Speak(context.Background(), story.Id)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.AudioBase64, second.AudioBase64)
	assert.Equal(t, 1, gw.audioCalls)
}

func TestSpeakUnknownStory(t *testing.T) {
	gw := happyStubGateway()
	svc, _ := newStoryFixture(gw)

	_, err := svc.Speak(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestSpeakSynthesisFailure(t *testing.T) {
	gw := happyStubGateway()
	gw.audioErr = errors.New("tts down")
	svc, _ := newStoryFixture(gw)

	story, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)

	_, err = svc.Speak(context.Background(), story.Id)
	assert.ErrorIs(t, err, ErrSpeechSynthesis)

	// A later attempt may still succeed.
	gw.audioErr = nil
	resp, err := svc.Speak(context.Background(), story.Id)
	require.NoError(t, err)
	assert.False(t, resp.Cached)
}

func TestSaveStory(t *testing.T) {
	gw := happyStubGateway()
	svc, pub := newStoryFixture(gw)

	story, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)

	saved, err := svc.Save(context.Background(), story.Id)
	require.NoError(t, err)
	assert.Equal(t, story.Id, saved.Id)
	assert.Equal(t, []string{constant.TopicStoryArchived}, pub.published())

	stories, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, story.Id, stories[0].Id)
}

func TestSaveStoryIdempotent(t *testing.T) {
	gw := happyStubGateway()
	svc, _ := newStoryFixture(gw)

	story, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), story.Id)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), story.Id)
	require.NoError(t, err)

	stories, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stories, 1)
}

func TestSpeakAfterSave(t *testing.T) {
	gw := happyStubGateway()
	svc, _ := newStoryFixture(gw)

	story, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), story.Id)
	require.NoError(t, err)

	resp, err := svc.Speak(context.Background(), story.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AudioBase64)
}

func TestListNewestFirst(t *testing.T) {
	gw := happyStubGateway()
	svc, _ := newStoryFixture(gw)

	first, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), storyRequest())
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), first.Id)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), second.Id)
	require.NoError(t, err)

	stories, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, second.Id, stories[0].Id)
	assert.Equal(t, first.Id, stories[1].Id)
}
