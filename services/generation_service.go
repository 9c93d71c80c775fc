package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"project/config"
	"project/models"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Boundary errors talking to the text-generation API. Handlers match on
// these to pick the response shape.
var (
	// ErrGenerationRequest indicates the upstream API call itself failed.
	ErrGenerationRequest = errors.New("generation request failed")
	// ErrGenerationParse indicates the response text was not the expected JSON document.
	ErrGenerationParse = errors.New("failed to parse generated content")
)

// GenerationParseError carries the raw response text for manual inspection
// when the model's output could not be decoded. The raw text is never
// silently dropped or guessed at.
type GenerationParseError struct {
	Raw string
	Err error
}

func (e *GenerationParseError) Error() string {
	return fmt.Sprintf("failed to parse generated content: %v", e.Err)
}

// Unwrap lets errors.Is match ErrGenerationParse.
func (e *GenerationParseError) Unwrap() error {
	return ErrGenerationParse
}

// systemPrompt instructs the model to produce complete content items in the
// exact wire format the import endpoint accepts.
const systemPrompt = `You are a content architect for a growth-focused "wellness library" designed for military personnel, veterans, and partner/family members.

Generate COMPLETE content items that are positive, educational, and empowering — NOT like a symptom checker. Avoid planting negative ideas. Use UK English.

DOMAIN LIST (MUST USE EXACT NAMES):
1. "Relationships & Connection"
2. "Family, Parenting & Home Life"
3. "Identity, Belonging & Inclusion"
4. "Grief, Change & Life Events"
5. "Calm, Confidence & Emotional Skills"
6. "Sleep, Energy & Recovery"
7. "Health, Injury & Physical Wellbeing"
8. "Money, Housing & Practical Life"
9. "Work, Purpose & Service Culture"
10. "Leadership, Boundaries & Communication"
11. "Transition, Resettlement & Civilian Life"

PILLARS:
- Understand (35%) - Educational, "how it works"
- Grow (35%) - Practical skills
- Reflect (20%) - Self-discovery questions
- Support (10%) - Crisis resources

AUDIENCE:
- any (55%) - Everyone
- service_member (20%) - Currently serving
- veteran (10%) - Former military
- partner_family (15%) - Partners/family

THE REFRAME:
GOOD: "Building confidence", "Finding calm", "Understanding healthy relationships"
BAD: "I'm anxious", "My partner doesn't listen", "I feel like a failure"

Write as LEARNING INTENTIONS and GROWTH AREAS, not problems.

Return ONLY valid JSON with this structure:
{
  "items": [
    {
      "id": "domain-slug.pillar.short-slug",
      "domain": "Exact domain name from list",
      "pillar": "Understand|Reflect|Grow|Support",
      "label": "4-9 words, positive, growth-focused",
      "microcopy": "1-2 sentences, normalising and hopeful, max 240 chars",
      "audience": "any|service_member|veteran|partner_family",
      "disclosure_level": 1|2|3,
      "sensitivity": "normal|sensitive|urgent",
      "keywords": ["8-16 lowercase keywords"],

      "understand_title": "Clear educational title",
      "understand_body": "2-3 paragraphs explaining the concept. Educational and normalising. 150-300 words.",
      "understand_examples": "1-2 concrete real-world examples. Military context when appropriate. 50-100 words.",
      "understand_insights": ["Key insight 1", "Key insight 2", "Key insight 3"],

      "reflect_prompts": ["Gentle question 1?", "Gentle question 2?", "Gentle question 3?"],

      "grow_title": "Practical section title",
      "grow_steps": [
        {"action": "Specific actionable step", "detail": "How and why to do it"},
        {"action": "Another step", "detail": "Explanation"}
      ],
      "grow_obstacles": "Common challenges people face when trying these steps. Normalising and compassionate. 50-100 words.",

      "when_to_seek_help": "When appropriate, guidance on when professional help is needed. Only for sensitive items. Empty string if not needed.",

      "affirmation": "Short positive closing statement"
    }
  ]
}

IMPORTANT:
- Understand section: Always include for Understand and Grow pillars. Can be brief for Reflect and Support.
- Reflect section: Always include 2-3 prompts for Reflect pillar. Optional for others.
- Grow section: Always include for Grow pillar. 3-5 steps minimum. Optional for others.
- Examples: Make them specific and relatable. Use military scenarios when audience is service_member/veteran.
- Obstacles: Be honest about challenges but always frame hopefully.
- When to seek help: Only include for sensitive/urgent items or Support pillar. Otherwise empty string.
- All text should be compassionate, normalising, and hopeful.`

// maxExclusions caps how many previously used IDs/labels are listed in the
// user prompt.
const maxExclusions = 10

// GenerationService produces candidate content batches via the
// text-generation API, in the same document shape the import endpoint
// accepts.
type GenerationService interface {
	GenerateBatch(ctx context.Context, req models.GenerateRequest) (*models.ImportRequest, error)
}

type generationService struct {
	client *openai.Client
	model  string
	tokens int
}

// NewGenerationService creates a GenerationService from the given OpenAI
// settings. The base URL override is kept so tests can point the client at a
// local stub.
func NewGenerationService(cfg config.OpenAIConfig) GenerationService {
	oclient := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oclient.BaseURL = cfg.BaseURL
	}
	return &generationService{
		client: openai.NewClientWithConfig(oclient),
		model:  cfg.Model,
		tokens: cfg.MaxTokens,
	}
}

// GenerateBatch sends the instructional prompt plus the run-time parameters
// and strictly decodes the response into an ImportRequest. Upstream failures
// are reported, not retried.
func (s *generationService) GenerateBatch(ctx context.Context, req models.GenerateRequest) (*models.ImportRequest, error) {
	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	userPrompt := buildUserPrompt(batchSize, req.FocusDomain, req.ExcludeIDs, req.ExcludeLabels)
	log.Printf("INFO: [GenerationService] Requesting batch of %d items (focus: %q).", batchSize, req.FocusDomain)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.8,
		MaxTokens:   s.tokens,
	})
	if err != nil {
		log.Printf("ERROR: [GenerationService] Upstream API call failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationRequest, err)
	}
	if len(resp.Choices) == 0 {
		log.Printf("ERROR: [GenerationService] Upstream API returned no choices.")
		return nil, fmt.Errorf("%w: response contained no choices", ErrGenerationRequest)
	}

	content := resp.Choices[0].Message.Content
	parsed, err := ParseGeneratedBatch(content)
	if err != nil {
		log.Printf("ERROR: [GenerationService] Failed to parse generated content: %v", err)
		return nil, err
	}

	log.Printf("INFO: [GenerationService] Parsed %d generated items.", len(parsed.Items))
	return parsed, nil
}

// buildUserPrompt assembles the run-time portion of the prompt: batch size,
// optional domain focus, and exclusion hints (capped at maxExclusions each).
func buildUserPrompt(batchSize int, focusDomain string, excludeIDs, excludeLabels []string) string {
	var b strings.Builder
	if focusDomain != "" {
		fmt.Fprintf(&b, "Generate exactly %d content items focused on the %q domain.\n", batchSize, focusDomain)
	} else {
		fmt.Fprintf(&b, "Generate exactly %d content items across various domains.\n", batchSize)
	}
	if len(excludeIDs) > 0 {
		fmt.Fprintf(&b, "\nDo NOT use these IDs: %s\n", strings.Join(capList(excludeIDs, maxExclusions), ", "))
	}
	if len(excludeLabels) > 0 {
		fmt.Fprintf(&b, "\nDo NOT use these labels: %s\n", strings.Join(capList(excludeLabels, maxExclusions), ", "))
	}
	b.WriteString("\nReturn ONLY the JSON object with the items array. No markdown, no explanation.")
	return b.String()
}

func capList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// StripCodeFences removes optional Markdown code fence markers
// (```json ... ```) the model sometimes wraps its output in.
func StripCodeFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ParseGeneratedBatch strips optional Markdown code fences from the raw model
// output and strictly decodes it into an ImportRequest. Any structural
// mismatch produces a GenerationParseError carrying the raw text.
func ParseGeneratedBatch(raw string) (*models.ImportRequest, error) {
	cleaned := StripCodeFences(raw)

	var parsed models.ImportRequest
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &GenerationParseError{Raw: raw, Err: err}
	}
	if parsed.Items == nil {
		return nil, &GenerationParseError{Raw: raw, Err: errors.New("missing items array")}
	}
	return &parsed, nil
}
