package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"oak-village-be/internal/constant"
	"oak-village-be/internal/entity"
	"oak-village-be/pkg/gateway"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Config carries the credential and the model roster. Empty model fields
// fall back to the defaults below.
type Config struct {
	ApiKey             string
	BaseURL            string
	TranscriptionModel string
	ImageModel         string
	TextModel          string
	TTSModel           string
	TTSVoice           string
}

const (
	defaultTranscriptionModel = "gemini-2.5-flash"
	defaultImageModel         = "gemini-3-pro-image-preview"
	defaultTextModel          = "gemini-3-pro-preview"
	defaultTTSModel           = "gemini-2.5-flash-preview-tts"
	defaultTTSVoice           = "Kore"
)

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TranscriptionModel == "" {
		cfg.TranscriptionModel = defaultTranscriptionModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = defaultImageModel
	}
	if cfg.TextModel == "" {
		cfg.TextModel = defaultTextModel
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = defaultTTSModel
	}
	if cfg.TTSVoice == "" {
		cfg.TTSVoice = defaultTTSVoice
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// --- Wire format ---

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type Content struct {
	Parts []*Part `json:"parts"`
	Role  string  `json:"role,omitempty"`
}

type VoiceConfig struct {
	PrebuiltVoiceConfig *PrebuiltVoiceConfig `json:"prebuiltVoiceConfig,omitempty"`
}

type PrebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type SpeechConfig struct {
	VoiceConfig *VoiceConfig `json:"voiceConfig,omitempty"`
}

type ImageConfig struct {
	ImageSize   string `json:"imageSize,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type GenerationConfig struct {
	ResponseMimeType   string         `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any `json:"responseSchema,omitempty"`
	ResponseModalities []string       `json:"responseModalities,omitempty"`
	SpeechConfig       *SpeechConfig  `json:"speechConfig,omitempty"`
	ImageConfig        *ImageConfig   `json:"imageConfig,omitempty"`
}

type GenerateContentRequest struct {
	Contents          []*Content        `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type Candidate struct {
	Content *Content `json:"content"`
}

type GenerateContentResponse struct {
	Candidates []*Candidate `json:"candidates"`
}

// generateContent posts one request and returns the first candidate content.
func (c *Client) generateContent(ctx context.Context, model string, payload *GenerateContentRequest) (*Content, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.cfg.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, classifyStatusError(res.StatusCode, resBody)
	}

	var genRes GenerateContentResponse
	if err := json.Unmarshal(resBody, &genRes); err != nil {
		return nil, err
	}
	if len(genRes.Candidates) == 0 || genRes.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates in response")
	}
	return genRes.Candidates[0].Content, nil
}

// classifyStatusError maps credential/model-access failures onto the
// distinguished gateway sentinel; everything else stays generic.
func classifyStatusError(status int, body []byte) error {
	text := string(body)
	if status == http.StatusForbidden || status == http.StatusNotFound ||
		strings.Contains(text, "PERMISSION_DENIED") ||
		strings.Contains(text, "Requested entity was not found") {
		return fmt.Errorf("%w: status %d, body %s", gateway.ErrModelUnavailable, status, text)
	}
	return fmt.Errorf("status error, got status %d. with response body %s", status, text)
}

func firstText(content *Content) string {
	for _, part := range content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}

// cleanJson strips markdown code fences the model sometimes wraps around
// JSON payloads.
func cleanJson(text string) []byte {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return []byte(strings.TrimSpace(trimmed))
}

func stringProperty() map[string]any {
	return map[string]any{"type": "STRING"}
}

// --- Gateway operations ---

func (c *Client) TranscribeAndExtract(ctx context.Context, audio []byte, mimeType string) (*gateway.DreamExtract, error) {
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	payload := &GenerateContentRequest{
		Contents: []*Content{{
			Parts: []*Part{
				{InlineData: &InlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(audio),
				}},
				{Text: constant.TranscribeAndExtractPromptV1},
			},
		}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"transcription": stringProperty(),
					"visualPrompt":  stringProperty(),
				},
				"required": []string{"transcription", "visualPrompt"},
			},
		},
	}

	content, err := c.generateContent(ctx, c.cfg.TranscriptionModel, payload)
	if err != nil {
		return nil, err
	}
	text := firstText(content)
	if text == "" {
		return nil, fmt.Errorf("no response from model")
	}

	var extract gateway.DreamExtract
	if err := json.Unmarshal(cleanJson(text), &extract); err != nil {
		return nil, err
	}
	return &extract, nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string, size entity.ImageSize) (string, error) {
	payload := &GenerateContentRequest{
		Contents: []*Content{{
			Parts: []*Part{{Text: prompt}},
		}},
		GenerationConfig: &GenerationConfig{
			ImageConfig: &ImageConfig{
				ImageSize:   string(size),
				AspectRatio: "3:4",
			},
		},
	}

	content, err := c.generateContent(ctx, c.cfg.ImageModel, payload)
	if err != nil {
		return "", err
	}
	for _, part := range content.Parts {
		if part.InlineData != nil {
			return "data:image/png;base64," + part.InlineData.Data, nil
		}
	}
	return "", fmt.Errorf("no image data returned")
}

func (c *Client) AnalyzeText(ctx context.Context, transcription string) (*entity.DreamAnalysis, error) {
	payload := &GenerateContentRequest{
		Contents: []*Content{{
			Parts: []*Part{{Text: fmt.Sprintf(constant.AnalyzeDreamPromptV1, transcription)}},
		}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"title":          stringProperty(),
					"summary":        stringProperty(),
					"emotionalTheme": stringProperty(),
					"archetypes": map[string]any{
						"type": "ARRAY",
						"items": map[string]any{
							"type": "OBJECT",
							"properties": map[string]any{
								"name":        stringProperty(),
								"description": stringProperty(),
							},
						},
					},
					"interpretation": stringProperty(),
				},
			},
		},
	}

	content, err := c.generateContent(ctx, c.cfg.TextModel, payload)
	if err != nil {
		return nil, err
	}
	text := firstText(content)
	if text == "" {
		return nil, fmt.Errorf("analysis failed")
	}

	var analysis entity.DreamAnalysis
	if err := json.Unmarshal(cleanJson(text), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (c *Client) OpenConversation(ctx context.Context, transcription string, analysis *entity.DreamAnalysis) (gateway.Conversation, error) {
	analysisJson, err := json.Marshal(analysis)
	if err != nil {
		return nil, err
	}
	instruction := fmt.Sprintf(constant.DreamChatSystemInstructionV1, transcription, string(analysisJson))
	return newConversation(c, c.cfg.TextModel, instruction), nil
}

// wordCountFor maps a reading duration in minutes to a target word count.
func wordCountFor(duration string) string {
	switch duration {
	case "15":
		return "2500"
	case "10":
		return "1500"
	default:
		return "800"
	}
}

func (c *Client) GenerateNarrative(ctx context.Context, params gateway.NarrativeParams) (*gateway.StoryDraft, error) {
	prompt := fmt.Sprintf(constant.StoryPromptV1,
		params.Philosophy1,
		params.Philosophy2,
		params.Emotion1,
		params.Emotion2,
		params.Setting,
		wordCountFor(params.Duration),
		params.Duration,
	)

	payload := &GenerateContentRequest{
		Contents: []*Content{{
			Parts: []*Part{{Text: prompt}},
		}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"title":         stringProperty(),
					"story_text":    stringProperty(),
					"visual_prompt": stringProperty(),
				},
			},
		},
	}

	content, err := c.generateContent(ctx, c.cfg.TextModel, payload)
	if err != nil {
		return nil, err
	}
	text := firstText(content)
	if text == "" {
		return nil, fmt.Errorf("empty narrative response")
	}

	// The model occasionally returns "story" instead of "story_text";
	// tolerate that before giving up.
	var raw struct {
		Title        string `json:"title"`
		StoryText    string `json:"story_text"`
		Story        string `json:"story"`
		VisualPrompt string `json:"visual_prompt"`
	}
	if err := json.Unmarshal(cleanJson(text), &raw); err != nil {
		return nil, err
	}
	if raw.StoryText == "" {
		raw.StoryText = raw.Story
	}
	// Valid JSON without a story still renders, just with a visible shrug.
	if raw.StoryText == "" {
		raw.StoryText = constant.MsgStoryInvisibleInk
	}

	return &gateway.StoryDraft{
		Title:        raw.Title,
		StoryText:    raw.StoryText,
		VisualPrompt: raw.VisualPrompt,
	}, nil
}

func (c *Client) SynthesizeSpeech(ctx context.Context, text string) (string, error) {
	payload := &GenerateContentRequest{
		Contents: []*Content{{
			Parts: []*Part{{Text: text}},
		}},
		GenerationConfig: &GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &SpeechConfig{
				VoiceConfig: &VoiceConfig{
					PrebuiltVoiceConfig: &PrebuiltVoiceConfig{VoiceName: c.cfg.TTSVoice},
				},
			},
		},
	}

	content, err := c.generateContent(ctx, c.cfg.TTSModel, payload)
	if err != nil {
		return "", err
	}
	for _, part := range content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return part.InlineData.Data, nil
		}
	}
	return "", fmt.Errorf("no audio data returned")
}

func (c *Client) ListenToConfession(ctx context.Context, confession string) (string, error) {
	payload := &GenerateContentRequest{
		Contents: []*Content{{
			Parts: []*Part{{Text: fmt.Sprintf(constant.ConfessionPromptV1, confession)}},
		}},
	}

	content, err := c.generateContent(ctx, c.cfg.TextModel, payload)
	if err != nil {
		return "", err
	}
	if text := firstText(content); text != "" {
		return text, nil
	}
	return constant.MsgConfessionFallback, nil
}
