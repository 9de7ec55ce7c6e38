package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// User-facing pipeline failure messages. Exactly two tiers: the
	// credential/model failure is actionable, everything else collapses
	// to the generic retry message.
	MsgImageModelUnavailable = "Please ensure you have selected a valid project/API Key for the Image Generation model."
	MsgGenericPipelineError  = "Something went wrong interpreting your dream. Please try again."

	// Degraded-but-usable fallbacks.
	MsgStoryGenerationError  = "Lyra got distracted by a butterfly. Please try again."
	MsgChatFallbackReply     = "I'm pondering that symbol..."
	MsgConfessionFallback    = "The smoke rises silently."
	MsgStoryInvisibleInk     = "Lyra wrote a story in invisible ink... (Error: Model returned valid JSON but missing 'story_text' field)."
	MsgConfessionWindScatter = "The wind is strong tonight. The smoke scatters."
)

// Event topics for the village chronicle bus.
const (
	TopicDreamCompleted = "village.dream.completed"
	TopicStoryArchived  = "village.story.archived"
)
