package services

import (
	"errors"
	"fmt"
	"log"
	"project/models"
	"project/repository"
	"project/utils"
	"strings"

	"gorm.io/gorm"
)

// labelSlugMaxLen caps the label-derived part of an imported item's slug.
const labelSlugMaxLen = 50

// ImporterService accepts batches of candidate content items and persists
// them, deduplicating against existing records.
type ImporterService interface {
	ImportBatch(items []models.ContentCandidate) (*models.ImportResult, error)
}

type importerService struct {
	domainRepo  repository.DomainRepository
	contentRepo repository.ContentRepository
}

// NewImporterService creates a new instance of ImporterService.
func NewImporterService(domainRepo repository.DomainRepository, contentRepo repository.ContentRepository) ImporterService {
	return &importerService{
		domainRepo:  domainRepo,
		contentRepo: contentRepo,
	}
}

// ImportBatch processes candidate items strictly sequentially. One item's
// failure never aborts the batch; every outcome is recorded in the result.
// Imported items are never auto-published — they always land as drafts for
// human review. Only a failure to load the domain table aborts the whole
// batch, since no item could resolve without it.
func (s *importerService) ImportBatch(items []models.ContentCandidate) (*models.ImportResult, error) {
	log.Printf("INFO: [ImporterService] Starting import batch of %d items.", len(items))

	slugToID, err := s.domainRepo.SlugToIDMap()
	if err != nil {
		log.Printf("ERROR: [ImporterService] Failed to load domain map: %v", err)
		return nil, fmt.Errorf("failed to load domain map: %w", err)
	}

	result := &models.ImportResult{Errors: []string{}}

	for _, item := range items {
		domainSlug := ResolveDomainSlug(item.Domain)
		domainID, ok := slugToID[domainSlug]
		if !ok {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Unknown domain: %s", item.Domain))
			continue
		}

		exists, err := s.contentRepo.ItemExists(domainID, item.Label)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Error: %s - %v", item.Label, err))
			continue
		}
		if exists {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Skipped (exists): %s", item.Label))
			continue
		}

		pillar := models.Pillar(strings.ToLower(item.Pillar))
		if !pillar.Valid() {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Error: %s - invalid pillar '%s'", item.Label, item.Pillar))
			continue
		}

		slug := item.ID
		if slug == "" {
			slug = fmt.Sprintf("%s.%s.%s", domainSlug, pillar, utils.Slugify(item.Label, labelSlugMaxLen))
		}

		contentItem := buildContentItem(&item, domainID, slug, pillar)
		details := buildContentDetails(&item)

		err = s.contentRepo.CreateItemWithDetails(contentItem, details)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Slug collision despite the pre-check: a race, or a second
				// distinct label deriving the same slug. Skip, don't fail.
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Duplicate slug: %s", item.Label))
				continue
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Error: %s - %v", item.Label, err))
			continue
		}

		result.Success++
	}

	result.Message = fmt.Sprintf("Import complete. %d imported, %d skipped, %d failed.",
		result.Success, result.Skipped, result.Failed)
	log.Printf("INFO: [ImporterService] %s", result.Message)
	return result, nil
}

// buildContentItem maps a candidate onto a draft ContentItem row, applying
// defaults for absent optional fields. is_published is always false here
// regardless of anything the candidate carries.
func buildContentItem(item *models.ContentCandidate, domainID, slug string, pillar models.Pillar) *models.ContentItem {
	audience := models.NormalizeAudience(item.Audience)
	if !audience.Valid() {
		audience = models.AudienceAny
	}
	sensitivity := models.Sensitivity(item.Sensitivity)
	if !sensitivity.Valid() {
		sensitivity = models.SensitivityNormal
	}
	disclosure := item.DisclosureLevel
	if disclosure < models.DisclosureLevelMin || disclosure > models.DisclosureLevelMax {
		disclosure = models.DisclosureLevelMin
	}
	keywords := item.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return &models.ContentItem{
		Slug:            slug,
		DomainID:        domainID,
		Pillar:          pillar,
		Label:           item.Label,
		Microcopy:       item.Microcopy,
		Audience:        audience,
		Sensitivity:     sensitivity,
		DisclosureLevel: disclosure,
		Keywords:        models.StringList(keywords),
		IsPublished:     false, // Imported content always lands as a draft
	}
}

// buildContentDetails maps the candidate's deep-content fields onto a
// ContentDetails row, defaulting absent fields to empty values. An item is
// never failed solely because optional deep-content fields are missing.
func buildContentDetails(item *models.ContentCandidate) *models.ContentDetails {
	affirmation := item.Affirmation
	if affirmation == "" {
		affirmation = item.Microcopy
	}
	return &models.ContentDetails{
		UnderstandTitle:    item.UnderstandTitle,
		UnderstandBody:     item.UnderstandBody,
		UnderstandExamples: item.UnderstandExamples,
		UnderstandInsights: emptyIfNil(item.UnderstandInsights),
		ReflectPrompts:     emptyIfNil(item.ReflectPrompts),
		GrowTitle:          item.GrowTitle,
		GrowSteps:          models.GrowStepList(emptyStepsIfNil(item.GrowSteps)),
		GrowObstacles:      item.GrowObstacles,
		SupportIntro:       item.SupportIntro,
		SupportResources:   emptyIfNil(item.SupportResources),
		WhenToSeekHelp:     item.WhenToSeekHelp,
		Affirmation:        affirmation,
	}
}

func emptyIfNil(s []string) models.StringList {
	if s == nil {
		return models.StringList{}
	}
	return models.StringList(s)
}

func emptyStepsIfNil(s []models.GrowStep) []models.GrowStep {
	if s == nil {
		return []models.GrowStep{}
	}
	return s
}
