package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"project/config"
	"project/models"
	"project/repository"

	openai "github.com/sashabaranov/go-openai"
)

// backfillPayload is the detail-only document the model returns when asked
// to expand an existing content item.
type backfillPayload struct {
	UnderstandTitle    string            `json:"understand_title"`
	UnderstandBody     string            `json:"understand_body"`
	UnderstandExamples string            `json:"understand_examples"`
	UnderstandInsights []string          `json:"understand_insights"`
	ReflectPrompts     []string          `json:"reflect_prompts"`
	GrowTitle          string            `json:"grow_title"`
	GrowSteps          []models.GrowStep `json:"grow_steps"`
	GrowObstacles      string            `json:"grow_obstacles"`
	WhenToSeekHelp     string            `json:"when_to_seek_help"`
	Affirmation        string            `json:"affirmation"`
}

// BackfillResult summarizes one backfill run.
type BackfillResult struct {
	Scanned int
	Updated int
	Failed  int
}

// BackfillService fills in missing long-form detail fields on existing
// content items. It only ever writes the details table; summary rows are
// untouched.
type BackfillService interface {
	Backfill(ctx context.Context, limit int) (*BackfillResult, error)
}

type backfillService struct {
	contentRepo repository.ContentRepository
	client      *openai.Client
	model       string
}

// NewBackfillService creates a new instance of BackfillService.
func NewBackfillService(contentRepo repository.ContentRepository, cfg config.OpenAIConfig) BackfillService {
	oclient := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oclient.BaseURL = cfg.BaseURL
	}
	return &backfillService{
		contentRepo: contentRepo,
		client:      openai.NewClientWithConfig(oclient),
		model:       cfg.Model,
	}
}

// Backfill finds content items whose details are missing long-form fields,
// generates the missing content per item, and updates only the details row.
// One item's failure never aborts the run.
func (s *backfillService) Backfill(ctx context.Context, limit int) (*BackfillResult, error) {
	if limit <= 0 {
		limit = 100
	}
	items, err := s.contentRepo.ListItemsMissingDetails(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find items needing backfill: %w", err)
	}

	result := &BackfillResult{Scanned: len(items)}
	for _, item := range items {
		if err := s.backfillItem(ctx, item); err != nil {
			log.Printf("WARN: [BackfillService] Failed to backfill item '%s': %v", item.Label, err)
			result.Failed++
			continue
		}
		result.Updated++
	}

	log.Printf("INFO: [BackfillService] Backfill complete: %d scanned, %d updated, %d failed.",
		result.Scanned, result.Updated, result.Failed)
	return result, nil
}

func (s *backfillService) backfillItem(ctx context.Context, item *models.ContentItem) error {
	domainName := ""
	if item.Domain != nil {
		domainName = item.Domain.Name
	}

	prompt := fmt.Sprintf(`Generate COMPLETE educational content for this item. Return ONLY valid JSON.

Item to expand:
- Label: %s
- Microcopy: %s
- Domain: %s
- Pillar: %s
- Audience: %s

Generate in UK English, positive and growth-focused.

Required JSON format:
{
  "understand_title": "Clear educational title",
  "understand_body": "2-3 paragraphs. Educational and normalising. 150-300 words.",
  "understand_examples": "1-2 concrete real-world examples. 50-100 words.",
  "understand_insights": ["Insight 1", "Insight 2", "Insight 3"],
  "reflect_prompts": ["Question 1?", "Question 2?", "Question 3?"],
  "grow_title": "Practical section title",
  "grow_steps": [
    {"action": "Step 1", "detail": "How and why"},
    {"action": "Step 2", "detail": "How and why"}
  ],
  "grow_obstacles": "Common challenges. 50-100 words.",
  "when_to_seek_help": "When professional help needed. Empty if not applicable.",
  "affirmation": "Short positive closing"
}`, item.Label, item.Microcopy, domainName, item.Pillar, item.Audience)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGenerationRequest, err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: response contained no choices", ErrGenerationRequest)
	}

	raw := resp.Choices[0].Message.Content
	var payload backfillPayload
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &payload); err != nil {
		return &GenerationParseError{Raw: raw, Err: err}
	}

	details := item.Details
	if details == nil {
		details = &models.ContentDetails{ContentItemID: item.ID}
	}
	applyBackfill(details, &payload, item.Microcopy)

	if err := s.contentRepo.UpsertDetails(details); err != nil {
		return fmt.Errorf("failed to save backfilled details: %w", err)
	}
	log.Printf("INFO: [BackfillService] Backfilled details for item '%s'.", item.Label)
	return nil
}

// applyBackfill fills only fields that are currently empty; existing
// hand-edited content is never overwritten.
func applyBackfill(details *models.ContentDetails, payload *backfillPayload, microcopy string) {
	if details.UnderstandTitle == "" {
		details.UnderstandTitle = payload.UnderstandTitle
	}
	if details.UnderstandBody == "" {
		details.UnderstandBody = payload.UnderstandBody
	}
	if details.UnderstandExamples == "" {
		details.UnderstandExamples = payload.UnderstandExamples
	}
	if len(details.UnderstandInsights) == 0 {
		details.UnderstandInsights = models.StringList(payload.UnderstandInsights)
	}
	if len(details.ReflectPrompts) == 0 {
		details.ReflectPrompts = models.StringList(payload.ReflectPrompts)
	}
	if details.GrowTitle == "" {
		details.GrowTitle = payload.GrowTitle
	}
	if len(details.GrowSteps) == 0 {
		details.GrowSteps = models.GrowStepList(payload.GrowSteps)
	}
	if details.GrowObstacles == "" {
		details.GrowObstacles = payload.GrowObstacles
	}
	if details.WhenToSeekHelp == "" {
		details.WhenToSeekHelp = payload.WhenToSeekHelp
	}
	if details.Affirmation == "" {
		details.Affirmation = payload.Affirmation
		if details.Affirmation == "" {
			details.Affirmation = microcopy
		}
	}
}
