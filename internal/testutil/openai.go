package testutil

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// HausProfileJSON is a noun profile as the text model returns it.
const HausProfileJSON = `{
  "german_word": "Haus",
  "source_language_translation": "house",
  "classification": "(n)",
  "additional_grammatical_info": {
    "noun": {"article": "das", "plural_form": "die Häuser"},
    "verb": {"infinitive": "", "praesens": [], "praeteritum": [], "perfekt": []}
  },
  "examples": [
    {"german_example": "Das Haus ist groß.", "source_example_translation": "The house is big."}
  ]
}`

// SpeechRequest is one recorded text-to-speech call.
type SpeechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// FakeOpenAI serves the chat, image, speech and model endpoints the app
// uses. BaseURL is the value to configure as openai.base_url.
type FakeOpenAI struct {
	*httptest.Server
	BaseURL string

	mu             sync.Mutex
	toolArguments  []string
	speechFailAt   int
	imageFail      bool
	imageWidth     int
	imageHeight    int
	chatRequests   []map[string]any
	imageRequests  []map[string]any
	speechRequests []SpeechRequest
}

// NewFakeOpenAI starts a FakeOpenAI that answers every chat completion with
// one generate_word_profile call carrying HausProfileJSON.
func NewFakeOpenAI(t *testing.T) *FakeOpenAI {
	t.Helper()

	f := &FakeOpenAI{
		toolArguments: []string{HausProfileJSON},
		imageWidth:    600,
		imageHeight:   400,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", f.handleChat)
	mux.HandleFunc("/v1/images/generations", f.handleImage)
	mux.HandleFunc("/v1/audio/speech", f.handleSpeech)
	mux.HandleFunc("/v1/models", f.handleModels)
	mux.HandleFunc("/files/generated.png", f.handleImageFile)

	f.Server = httptest.NewServer(mux)
	f.BaseURL = f.URL + "/v1"
	t.Cleanup(f.Close)
	return f
}

// SetToolArguments sets the function call payloads of the next chat
// completions. No arguments means no tool call at all.
func (f *FakeOpenAI) SetToolArguments(args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toolArguments = args
}

// FailSpeechAt makes the n-th speech request (1-based) fail.
func (f *FakeOpenAI) FailSpeechAt(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speechFailAt = n
}

// FailImages makes image generation fail.
func (f *FakeOpenAI) FailImages() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageFail = true
}

func (f *FakeOpenAI) ChatRequests() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.chatRequests...)
}

func (f *FakeOpenAI) ImageRequests() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.imageRequests...)
}

func (f *FakeOpenAI) SpeechRequests() []SpeechRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SpeechRequest(nil), f.speechRequests...)
}

func (f *FakeOpenAI) handleChat(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOpenAIError(w, http.StatusBadRequest, err.Error())
		return
	}

	f.mu.Lock()
	f.chatRequests = append(f.chatRequests, req)
	args := f.toolArguments
	f.mu.Unlock()

	calls := make([]map[string]any, 0, len(args))
	for i, a := range args {
		calls = append(calls, map[string]any{
			"id":   "call_" + strconv.Itoa(i),
			"type": "function",
			"function": map[string]any{
				"name":      "generate_word_profile",
				"arguments": a,
			},
		})
	}

	writeJSON(w, map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   req["model"],
		"choices": []any{
			map[string]any{
				"index":         0,
				"finish_reason": "tool_calls",
				"message": map[string]any{
					"role":       "assistant",
					"content":    "",
					"tool_calls": calls,
				},
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     120,
			"completion_tokens": 80,
			"total_tokens":      200,
		},
	})
}

func (f *FakeOpenAI) handleImage(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOpenAIError(w, http.StatusBadRequest, err.Error())
		return
	}

	f.mu.Lock()
	f.imageRequests = append(f.imageRequests, req)
	fail := f.imageFail
	f.mu.Unlock()

	if fail {
		writeOpenAIError(w, http.StatusInternalServerError, "image generation unavailable")
		return
	}

	writeJSON(w, map[string]any{
		"created": 1,
		"data": []any{
			map[string]any{"url": f.URL + "/files/generated.png"},
		},
	})
}

func (f *FakeOpenAI) handleImageFile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	width, height := f.imageWidth, f.imageHeight
	f.mu.Unlock()

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(PNG(width, height))
}

func (f *FakeOpenAI) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOpenAIError(w, http.StatusBadRequest, err.Error())
		return
	}

	f.mu.Lock()
	f.speechRequests = append(f.speechRequests, req)
	n := len(f.speechRequests)
	failAt := f.speechFailAt
	f.mu.Unlock()

	if failAt > 0 && n == failAt {
		writeOpenAIError(w, http.StatusInternalServerError, "speech synthesis unavailable")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	_, _ = w.Write([]byte("ID3 fake mp3 " + req.Voice + " " + req.Input))
}

func (f *FakeOpenAI) handleModels(w http.ResponseWriter, r *http.Request) {
	ids := []string{"gpt-4o-mini", "gpt-4o", "dall-e-2", "dall-e-3", "tts-1", "tts-1-hd", "text-embedding-3-small"}
	data := make([]any, 0, len(ids))
	for _, id := range ids {
		data = append(data, map[string]any{"id": id, "object": "model", "created": 1, "owned_by": "openai"})
	}
	writeJSON(w, map[string]any{"object": "list", "data": data})
}

// NewFakeGemini starts a server answering generateContent requests with one
// generate_word_profile function call carrying args.
func NewFakeGemini(t *testing.T, args string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}

		var parsed map[string]any
		if err := json.Unmarshal([]byte(args), &parsed); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role": "model",
						"parts": []any{
							map[string]any{
								"functionCall": map[string]any{
									"name": "generate_word_profile",
									"args": parsed,
								},
							},
						},
					},
					"finishReason": "STOP",
				},
			},
			"usageMetadata": map[string]any{
				"promptTokenCount":     90,
				"candidatesTokenCount": 60,
				"totalTokenCount":      150,
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// PNG encodes a solid colour image of the given size.
func PNG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := color.RGBA{R: 200, G: 40, B: 40, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeOpenAIError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": msg, "type": "server_error"},
	})
}
