package api

import (
	"fmt"
	"net/http"
	"project/models"
	"project/repository"
	"project/utils"

	"github.com/gin-gonic/gin"
)

// contentRequest is the flattened document the admin UI posts when creating
// or replacing a content item: summary fields plus the deep-content fields
// that live in the details table.
type contentRequest struct {
	DomainID        string   `json:"domain_id"`
	Pillar          string   `json:"pillar"`
	Label           string   `json:"label"`
	Microcopy       string   `json:"microcopy"`
	Audience        string   `json:"audience"`
	Sensitivity     string   `json:"sensitivity"`
	DisclosureLevel int      `json:"disclosure_level"`
	Keywords        []string `json:"keywords"`
	IsPublished     bool     `json:"is_published"`

	UnderstandTitle    string            `json:"understand_title"`
	UnderstandBody     string            `json:"understand_body"`
	UnderstandExamples string            `json:"understand_examples"`
	UnderstandInsights []string          `json:"understand_insights"`
	ReflectPrompts     []string          `json:"reflect_prompts"`
	GrowTitle          string            `json:"grow_title"`
	GrowSteps          []models.GrowStep `json:"grow_steps"`
	GrowObstacles      string            `json:"grow_obstacles"`
	SupportIntro       string            `json:"support_intro"`
	SupportResources   []string          `json:"support_resources"`
	WhenToSeekHelp     string            `json:"when_to_seek_help"`
	Affirmation        string            `json:"affirmation"`
}

// ListContentHandler returns content items with optional filters:
// domain (domain id), pillar, published (true/false), search.
func (h *APIHandler) ListContentHandler(c *gin.Context) {
	filter := repositoryFilterFromQuery(c)
	items, err := h.contentRepo.ListItems(filter)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch content", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetContentHandler returns a single content item with its domain and details.
func (h *APIHandler) GetContentHandler(c *gin.Context) {
	item, err := h.contentRepo.GetItemByID(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch content", err)
		return
	}
	if item == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Content item not found.", nil)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateContentHandler creates a content item together with its details row.
func (h *APIHandler) CreateContentHandler(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if req.DomainID == "" || req.Label == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "domain_id and label are required.", nil)
		return
	}
	pillar := models.Pillar(req.Pillar)
	if !pillar.Valid() {
		utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid pillar '%s'.", req.Pillar), nil)
		return
	}

	item, details := req.toModels(pillar)
	item.Slug = fmt.Sprintf("%s.%s", pillar, utils.Slugify(req.Label, 50))

	if err := h.contentRepo.CreateItemWithDetails(item, details); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create content", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateContentHandler replaces a content item's fields and upserts its
// details row.
func (h *APIHandler) UpdateContentHandler(c *gin.Context) {
	id := c.Param("id")

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	existing, err := h.contentRepo.GetItemByID(id)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch content", err)
		return
	}
	if existing == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Content item not found.", nil)
		return
	}

	pillar := models.Pillar(req.Pillar)
	if !pillar.Valid() {
		utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid pillar '%s'.", req.Pillar), nil)
		return
	}

	item, details := req.toModels(pillar)
	item.ID = existing.ID
	item.Slug = existing.Slug
	item.CreatedAt = existing.CreatedAt
	item.Domain = nil
	item.Details = nil

	if err := h.contentRepo.UpdateItem(item); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update content", err)
		return
	}
	details.ContentItemID = item.ID
	if err := h.contentRepo.UpsertDetails(details); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update content details", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// contentPatchRequest carries optional summary fields for quick actions such
// as a publish toggle.
type contentPatchRequest struct {
	DomainID        *string   `json:"domain_id"`
	Pillar          *string   `json:"pillar"`
	Label           *string   `json:"label"`
	Microcopy       *string   `json:"microcopy"`
	Audience        *string   `json:"audience"`
	Sensitivity     *string   `json:"sensitivity"`
	DisclosureLevel *int      `json:"disclosure_level"`
	Keywords        *[]string `json:"keywords"`
	IsPublished     *bool     `json:"is_published"`
}

// PatchContentHandler applies a partial update to the summary row only
// (e.g. publish/unpublish). Details are untouched.
func (h *APIHandler) PatchContentHandler(c *gin.Context) {
	id := c.Param("id")

	var req contentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	item, err := h.contentRepo.GetItemByID(id)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch content", err)
		return
	}
	if item == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Content item not found.", nil)
		return
	}

	if req.DomainID != nil {
		item.DomainID = *req.DomainID
	}
	if req.Pillar != nil {
		pillar := models.Pillar(*req.Pillar)
		if !pillar.Valid() {
			utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid pillar '%s'.", *req.Pillar), nil)
			return
		}
		item.Pillar = pillar
	}
	if req.Label != nil {
		item.Label = *req.Label
	}
	if req.Microcopy != nil {
		item.Microcopy = *req.Microcopy
	}
	if req.Audience != nil {
		audience := models.NormalizeAudience(*req.Audience)
		if !audience.Valid() {
			utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid audience '%s'.", *req.Audience), nil)
			return
		}
		item.Audience = audience
	}
	if req.Sensitivity != nil {
		sensitivity := models.Sensitivity(*req.Sensitivity)
		if !sensitivity.Valid() {
			utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid sensitivity '%s'.", *req.Sensitivity), nil)
			return
		}
		item.Sensitivity = sensitivity
	}
	if req.DisclosureLevel != nil {
		if *req.DisclosureLevel < models.DisclosureLevelMin || *req.DisclosureLevel > models.DisclosureLevelMax {
			utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid disclosure level %d.", *req.DisclosureLevel), nil)
			return
		}
		item.DisclosureLevel = *req.DisclosureLevel
	}
	if req.Keywords != nil {
		item.Keywords = models.StringList(*req.Keywords)
	}
	if req.IsPublished != nil {
		item.IsPublished = *req.IsPublished
	}

	item.Domain = nil
	item.Details = nil
	if err := h.contentRepo.UpdateItem(item); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update content", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteContentHandler removes a content item and its details.
func (h *APIHandler) DeleteContentHandler(c *gin.Context) {
	if err := h.contentRepo.DeleteItem(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete content", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *contentRequest) toModels(pillar models.Pillar) (*models.ContentItem, *models.ContentDetails) {
	audience := models.NormalizeAudience(r.Audience)
	if !audience.Valid() {
		audience = models.AudienceAny
	}
	sensitivity := models.Sensitivity(r.Sensitivity)
	if !sensitivity.Valid() {
		sensitivity = models.SensitivityNormal
	}
	disclosure := r.DisclosureLevel
	if disclosure < models.DisclosureLevelMin || disclosure > models.DisclosureLevelMax {
		disclosure = models.DisclosureLevelMin
	}

	item := &models.ContentItem{
		DomainID:        r.DomainID,
		Pillar:          pillar,
		Label:           r.Label,
		Microcopy:       r.Microcopy,
		Audience:        audience,
		Sensitivity:     sensitivity,
		DisclosureLevel: disclosure,
		Keywords:        models.StringList(r.Keywords),
		IsPublished:     r.IsPublished,
	}
	details := &models.ContentDetails{
		UnderstandTitle:    r.UnderstandTitle,
		UnderstandBody:     r.UnderstandBody,
		UnderstandExamples: r.UnderstandExamples,
		UnderstandInsights: models.StringList(r.UnderstandInsights),
		ReflectPrompts:     models.StringList(r.ReflectPrompts),
		GrowTitle:          r.GrowTitle,
		GrowSteps:          models.GrowStepList(r.GrowSteps),
		GrowObstacles:      r.GrowObstacles,
		SupportIntro:       r.SupportIntro,
		SupportResources:   models.StringList(r.SupportResources),
		WhenToSeekHelp:     r.WhenToSeekHelp,
		Affirmation:        r.Affirmation,
	}
	return item, details
}

func repositoryFilterFromQuery(c *gin.Context) repository.ContentFilter {
	filter := repository.ContentFilter{
		DomainID: c.Query("domain"),
		Pillar:   c.Query("pillar"),
		Search:   c.Query("search"),
	}
	switch c.Query("published") {
	case "true":
		published := true
		filter.Published = &published
	case "false":
		published := false
		filter.Published = &published
	}
	return filter
}
