package mapper

import (
	"oak-village-be/internal/dto"
	"oak-village-be/internal/entity"
)

type StoryMapper struct{}

func NewStoryMapper() *StoryMapper {
	return &StoryMapper{}
}

func (m *StoryMapper) StoryToResponse(s *entity.StorySession) *dto.StoryResponse {
	if s == nil {
		return nil
	}
	return &dto.StoryResponse{
		Id:           s.Id,
		CreatedAt:    s.CreatedAt,
		Title:        s.Title,
		Content:      s.Content,
		VisualPrompt: s.VisualPrompt,
		ImageUrl:     s.ImageUrl,
		HasAudio:     s.AudioBase64 != "",
		Params: dto.StoryParamsDTO{
			Philosophy1: s.Params.Philosophy1,
			Philosophy2: s.Params.Philosophy2,
			Emotion1:    s.Params.Emotion1,
			Emotion2:    s.Params.Emotion2,
			Setting:     s.Params.Setting,
			Duration:    s.Params.Duration,
		},
	}
}

func (m *StoryMapper) StoriesToResponse(stories []*entity.StorySession) []*dto.StoryResponse {
	out := make([]*dto.StoryResponse, 0, len(stories))
	for _, s := range stories {
		out = append(out, m.StoryToResponse(s))
	}
	return out
}
