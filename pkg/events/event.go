package events

import "time"

// Chronicle event payloads published on the in-process bus. JSON-encoded on
// the wire so a consumer can be swapped for an external one later.

type DreamCompleted struct {
	SessionId      string    `json:"session_id"`
	Title          string    `json:"title"`
	EmotionalTheme string    `json:"emotional_theme"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type StoryArchived struct {
	StoryId    string    `json:"story_id"`
	Title      string    `json:"title"`
	Setting    string    `json:"setting"`
	OccurredAt time.Time `json:"occurred_at"`
}
