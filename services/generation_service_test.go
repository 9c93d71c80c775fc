package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"project/config"
	"project/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	t.Run("Removes json code fences", func(t *testing.T) {
		raw := "```json\n{\"items\": []}\n```"
		assert.Equal(t, `{"items": []}`, StripCodeFences(raw))
	})

	t.Run("Leaves unfenced text alone", func(t *testing.T) {
		assert.Equal(t, `{"items": []}`, StripCodeFences(`{"items": []}`))
	})
}

func TestParseGeneratedBatch(t *testing.T) {
	doc := `{"items": [{"id": "sleep.grow.winding-down", "domain": "Sleep, Energy & Recovery", "pillar": "Grow", "label": "Winding Down"}]}`

	t.Run("Fenced and unfenced output parse identically", func(t *testing.T) {
		plain, err := ParseGeneratedBatch(doc)
		assert.NoError(t, err)
		fenced, err := ParseGeneratedBatch("```json\n" + doc + "\n```")
		assert.NoError(t, err)
		assert.Equal(t, plain, fenced)
		assert.Len(t, plain.Items, 1)
		assert.Equal(t, "Winding Down", plain.Items[0].Label)
	})

	t.Run("Invalid JSON yields a parse error carrying the raw text", func(t *testing.T) {
		raw := "Sorry, I cannot do that."
		_, err := ParseGeneratedBatch(raw)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrGenerationParse))

		var parseErr *GenerationParseError
		assert.True(t, errors.As(err, &parseErr))
		assert.Equal(t, raw, parseErr.Raw)
	})

	t.Run("Valid JSON without an items array is a parse error", func(t *testing.T) {
		_, err := ParseGeneratedBatch(`{"message": "here you go"}`)
		assert.True(t, errors.Is(err, ErrGenerationParse))
	})
}

func TestBuildUserPrompt(t *testing.T) {
	t.Run("Includes batch size and domain focus", func(t *testing.T) {
		prompt := buildUserPrompt(5, "Sleep, Energy & Recovery", nil, nil)
		assert.Contains(t, prompt, "exactly 5 content items")
		assert.Contains(t, prompt, "Sleep, Energy & Recovery")
	})

	t.Run("Caps exclusion hints", func(t *testing.T) {
		ids := make([]string, 0, 15)
		for i := 0; i < 15; i++ {
			ids = append(ids, "id-"+string(rune('a'+i)))
		}
		prompt := buildUserPrompt(20, "", ids, nil)
		assert.Contains(t, prompt, "id-a")
		assert.Contains(t, prompt, "id-j")
		assert.NotContains(t, prompt, "id-k")
	})

	t.Run("Omits exclusion sections when lists are empty", func(t *testing.T) {
		prompt := buildUserPrompt(20, "", nil, nil)
		assert.NotContains(t, prompt, "Do NOT use these IDs")
		assert.NotContains(t, prompt, "Do NOT use these labels")
	})
}

// newCompletionStub returns an httptest server that answers the chat
// completions endpoint with the given message content.
func newCompletionStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4-turbo-preview",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func stubConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL + "/v1",
		Model:     "gpt-4-turbo-preview",
		MaxTokens: 4000,
	}
}

func TestGenerationService_GenerateBatch(t *testing.T) {
	t.Run("Decodes a well-formed response", func(t *testing.T) {
		server := newCompletionStub(t, "```json\n{\"items\": [{\"domain\": \"Sleep, Energy & Recovery\", \"pillar\": \"Grow\", \"label\": \"Winding Down\"}]}\n```")
		defer server.Close()

		service := NewGenerationService(stubConfig(server.URL))
		batch, err := service.GenerateBatch(context.Background(), models.GenerateRequest{BatchSize: 1})

		assert.NoError(t, err)
		assert.Len(t, batch.Items, 1)
		assert.Equal(t, "Winding Down", batch.Items[0].Label)
	})

	t.Run("Non-JSON response surfaces a parse error with the raw text", func(t *testing.T) {
		server := newCompletionStub(t, "I'd rather write a poem.")
		defer server.Close()

		service := NewGenerationService(stubConfig(server.URL))
		_, err := service.GenerateBatch(context.Background(), models.GenerateRequest{})

		assert.True(t, errors.Is(err, ErrGenerationParse))
		var parseErr *GenerationParseError
		assert.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "I'd rather write a poem.", parseErr.Raw)
	})

	t.Run("Upstream failure is a request error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		service := NewGenerationService(stubConfig(server.URL))
		_, err := service.GenerateBatch(context.Background(), models.GenerateRequest{})

		assert.True(t, errors.Is(err, ErrGenerationRequest))
	})
}
