package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"oak-village-be/internal/constant"
	"oak-village-be/internal/entity"
	"oak-village-be/pkg/gateway"
)

func textResponse(text string) string {
	b, _ := json.Marshal(GenerateContentResponse{
		Candidates: []*Candidate{{
			Content: &Content{Parts: []*Part{{Text: text}}},
		}},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{ApiKey: "test-key", BaseURL: srv.URL})
}

func TestTranscribeAndExtract(t *testing.T) {
	var gotPath, gotKey string
	var gotReq GenerateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(textResponse("```json\n{\"transcription\":\"a lake\",\"visualPrompt\":\"silver water\"}\n```")))
	})

	extract, err := client.TranscribeAndExtract(context.Background(), []byte("audio-bytes"), "audio/webm")
	if err != nil {
		t.Fatalf("TranscribeAndExtract() error = %v", err)
	}
	if extract.Transcription != "a lake" || extract.VisualPrompt != "silver water" {
		t.Errorf("extract = %+v", extract)
	}
	if !strings.Contains(gotPath, defaultTranscriptionModel) {
		t.Errorf("path = %q, want transcription model", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].InlineData == nil {
		t.Fatalf("request missing inline audio: %+v", gotReq)
	}
	if gotReq.Contents[0].Parts[0].InlineData.MimeType != "audio/webm" {
		t.Errorf("mime = %q", gotReq.Contents[0].Parts[0].InlineData.MimeType)
	}
}

func TestGenerateImage(t *testing.T) {
	var gotReq GenerateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		b, _ := json.Marshal(GenerateContentResponse{
			Candidates: []*Candidate{{
				Content: &Content{Parts: []*Part{
					{InlineData: &InlineData{MimeType: "image/png", Data: "iVBOR"}},
				}},
			}},
		})
		w.Write(b)
	})

	url, err := client.GenerateImage(context.Background(), "a grove", entity.ImageSize2K)
	if err != nil {
		t.Fatalf("GenerateImage() error = %v", err)
	}
	if url != "data:image/png;base64,iVBOR" {
		t.Errorf("url = %q", url)
	}
	cfg := gotReq.GenerationConfig.ImageConfig
	if cfg.ImageSize != "2K" || cfg.AspectRatio != "3:4" {
		t.Errorf("image config = %+v", cfg)
	}
}

func TestGenerateImageModelUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"status":"PERMISSION_DENIED"}}`))
	})

	_, err := client.GenerateImage(context.Background(), "a grove", entity.ImageSize1K)
	if !gateway.IsModelUnavailable(err) {
		t.Errorf("err = %v, want model-unavailable", err)
	}
}

func TestClassifyStatusError(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		wantUnavailable bool
	}{
		{"forbidden", http.StatusForbidden, "{}", true},
		{"not found", http.StatusNotFound, "{}", true},
		{"permission denied in body", http.StatusInternalServerError, `{"error":{"status":"PERMISSION_DENIED"}}`, true},
		{"entity not found in body", http.StatusBadRequest, "Requested entity was not found.", true},
		{"rate limited", http.StatusTooManyRequests, "{}", false},
		{"server error", http.StatusInternalServerError, "{}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyStatusError(tt.status, []byte(tt.body))
			if got := gateway.IsModelUnavailable(err); got != tt.wantUnavailable {
				t.Errorf("IsModelUnavailable = %v, want %v", got, tt.wantUnavailable)
			}
		})
	}
}

func TestCleanJson(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(cleanJson(tt.in)); got != tt.want {
				t.Errorf("cleanJson(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWordCountFor(t *testing.T) {
	tests := []struct {
		duration string
		want     string
	}{
		{"15", "2500"},
		{"10", "1500"},
		{"5", "800"},
		{"", "800"},
	}

	for _, tt := range tests {
		if got := wordCountFor(tt.duration); got != tt.want {
			t.Errorf("wordCountFor(%q) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestGenerateNarrative(t *testing.T) {
	var gotReq GenerateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(textResponse(`{"title":"The Grove","story_text":"Once...","visual_prompt":"oaks"}`)))
	})

	draft, err := client.GenerateNarrative(context.Background(), gateway.NarrativeParams{
		Philosophy1: "stoicism",
		Philosophy2: "taoism",
		Emotion1:    "wonder",
		Emotion2:    "calm",
		Setting:     "forest",
		Duration:    "10",
	})
	if err != nil {
		t.Fatalf("GenerateNarrative() error = %v", err)
	}
	if draft.Title != "The Grove" || draft.StoryText != "Once..." {
		t.Errorf("draft = %+v", draft)
	}

	prompt := gotReq.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "1500") {
		t.Errorf("prompt missing word target for 10 minutes: %q", prompt)
	}
}

func TestGenerateNarrativeStoryKeyFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(textResponse(`{"title":"The Grove","story":"Once upon a time..."}`)))
	})

	draft, err := client.GenerateNarrative(context.Background(), gateway.NarrativeParams{Duration: "5"})
	if err != nil {
		t.Fatalf("GenerateNarrative() error = %v", err)
	}
	if draft.StoryText != "Once upon a time..." {
		t.Errorf("StoryText = %q", draft.StoryText)
	}
}

func TestGenerateNarrativeMissingStoryPlaceholder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(textResponse(`{"title":"The Grove"}`)))
	})

	draft, err := client.GenerateNarrative(context.Background(), gateway.NarrativeParams{Duration: "5"})
	if err != nil {
		t.Fatalf("GenerateNarrative() error = %v", err)
	}
	if draft.StoryText != constant.MsgStoryInvisibleInk {
		t.Errorf("StoryText = %q, want invisible-ink placeholder", draft.StoryText)
	}
}

func TestSynthesizeSpeech(t *testing.T) {
	var gotReq GenerateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		b, _ := json.Marshal(GenerateContentResponse{
			Candidates: []*Candidate{{
				Content: &Content{Parts: []*Part{
					{InlineData: &InlineData{MimeType: "audio/wav", Data: "UklGRg=="}},
				}},
			}},
		})
		w.Write(b)
	})

	audio, err := client.SynthesizeSpeech(context.Background(), "Once, beneath an old oak...")
	if err != nil {
		t.Fatalf("SynthesizeSpeech() error = %v", err)
	}
	if audio != "UklGRg==" {
		t.Errorf("audio = %q", audio)
	}

	cfg := gotReq.GenerationConfig
	if len(cfg.ResponseModalities) != 1 || cfg.ResponseModalities[0] != "AUDIO" {
		t.Errorf("modalities = %v", cfg.ResponseModalities)
	}
	if cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName != defaultTTSVoice {
		t.Errorf("voice = %q", cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
	}
}

func TestListenToConfession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(textResponse("The smoke carries it away.")))
	})

	reflection, err := client.ListenToConfession(context.Background(), "I forgot to write back.")
	if err != nil {
		t.Fatalf("ListenToConfession() error = %v", err)
	}
	if reflection != "The smoke carries it away." {
		t.Errorf("reflection = %q", reflection)
	}
}

func TestListenToConfessionEmptyReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := json.Marshal(GenerateContentResponse{
			Candidates: []*Candidate{{Content: &Content{Parts: []*Part{}}}},
		})
		w.Write(b)
	})

	reflection, err := client.ListenToConfession(context.Background(), "...")
	if err != nil {
		t.Fatalf("ListenToConfession() error = %v", err)
	}
	if reflection != constant.MsgConfessionFallback {
		t.Errorf("reflection = %q, want fallback", reflection)
	}
}
