package mapper

import (
	"oak-village-be/internal/dto"
	"oak-village-be/internal/entity"
)

type DreamMapper struct{}

func NewDreamMapper() *DreamMapper {
	return &DreamMapper{}
}

func (m *DreamMapper) SessionToResponse(s *entity.DreamSession, errorMessage string) *dto.DreamSessionResponse {
	if s == nil {
		return nil
	}
	return &dto.DreamSessionResponse{
		Id:            s.Id,
		CreatedAt:     s.CreatedAt,
		Status:        s.Status,
		Transcription: s.Transcription,
		VisualPrompt:  s.VisualPrompt,
		ImageUrl:      s.ImageUrl,
		Analysis:      m.AnalysisToDTO(s.Analysis),
		ImageSize:     s.ImageSize,
		Error:         errorMessage,
	}
}

func (m *DreamMapper) AnalysisToDTO(a *entity.DreamAnalysis) *dto.DreamAnalysisDTO {
	if a == nil {
		return nil
	}
	archetypes := make([]dto.ArchetypeDTO, 0, len(a.Archetypes))
	for _, arch := range a.Archetypes {
		archetypes = append(archetypes, dto.ArchetypeDTO{
			Name:        arch.Name,
			Description: arch.Description,
		})
	}
	return &dto.DreamAnalysisDTO{
		Title:          a.Title,
		Summary:        a.Summary,
		EmotionalTheme: a.EmotionalTheme,
		Archetypes:     archetypes,
		Interpretation: a.Interpretation,
	}
}

func (m *DreamMapper) ChatMessageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	if msg == nil {
		return nil
	}
	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		Role:      msg.Role,
		Chat:      msg.Chat,
		CreatedAt: msg.CreatedAt,
	}
}
