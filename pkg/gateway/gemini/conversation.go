package gemini

import (
	"context"
	"sync"

	"oak-village-be/internal/constant"
)

// Conversation replays its accumulated turns on every request, so the
// provider sees the full history without the caller resending it. Turns are
// only recorded after a successful exchange.
type Conversation struct {
	client      *Client
	model       string
	instruction string

	mu      sync.Mutex
	history []*Content
}

func newConversation(client *Client, model, instruction string) *Conversation {
	return &Conversation{
		client:      client,
		model:       model,
		instruction: instruction,
	}
}

func (c *Conversation) SendMessage(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	contents := make([]*Content, 0, len(c.history)+1)
	contents = append(contents, c.history...)
	userTurn := &Content{
		Parts: []*Part{{Text: text}},
		Role:  constant.ChatMessageRoleUser,
	}
	contents = append(contents, userTurn)
	c.mu.Unlock()

	payload := &GenerateContentRequest{
		Contents: contents,
		SystemInstruction: &Content{
			Parts: []*Part{{Text: c.instruction}},
		},
	}

	content, err := c.client.generateContent(ctx, c.model, payload)
	if err != nil {
		return "", err
	}
	reply := firstText(content)

	c.mu.Lock()
	c.history = append(c.history, userTurn, &Content{
		Parts: []*Part{{Text: reply}},
		Role:  constant.ChatMessageRoleModel,
	})
	c.mu.Unlock()

	return reply, nil
}

// Turns reports how many turns the context retains. Used by tests.
func (c *Conversation) Turns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}
