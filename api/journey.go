package api

import (
	"fmt"
	"net/http"
	"project/models"
	"project/utils"

	"github.com/gin-gonic/gin"
)

// ListJourneysHandler returns all journeys, newest first.
func (h *APIHandler) ListJourneysHandler(c *gin.Context) {
	journeys, err := h.journeyRepo.ListJourneys()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch journeys", err)
		return
	}
	c.JSON(http.StatusOK, journeys)
}

// GetJourneyHandler returns a single journey.
func (h *APIHandler) GetJourneyHandler(c *gin.Context) {
	journey, err := h.journeyRepo.GetJourneyByID(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch journey", err)
		return
	}
	if journey == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Journey not found.", nil)
		return
	}
	c.JSON(http.StatusOK, journey)
}

// CreateJourneyHandler creates a new journey. Item references keep the order
// they arrive in; order is significant.
func (h *APIHandler) CreateJourneyHandler(c *gin.Context) {
	var journey models.Journey
	if err := c.ShouldBindJSON(&journey); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if journey.Title == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Journey title is required.", nil)
		return
	}
	if journey.Slug == "" {
		journey.Slug = utils.Slugify(journey.Title, 50)
	}
	if !journey.Audience.Valid() {
		journey.Audience = models.AudienceAny
	}
	if err := h.journeyRepo.CreateJourney(&journey); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create journey", err)
		return
	}
	c.JSON(http.StatusCreated, journey)
}

// journeyPatchRequest carries optional journey fields for partial updates.
type journeyPatchRequest struct {
	Slug        *string   `json:"slug"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Audience    *string   `json:"audience"`
	ItemRefs    *[]string `json:"item_refs"`
	IsPublished *bool     `json:"is_published"`
}

// PatchJourneyHandler applies a partial update to a journey.
func (h *APIHandler) PatchJourneyHandler(c *gin.Context) {
	id := c.Param("id")

	var req journeyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	journey, err := h.journeyRepo.GetJourneyByID(id)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch journey", err)
		return
	}
	if journey == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Journey not found.", nil)
		return
	}

	if req.Slug != nil {
		journey.Slug = *req.Slug
	}
	if req.Title != nil {
		journey.Title = *req.Title
	}
	if req.Description != nil {
		journey.Description = *req.Description
	}
	if req.Audience != nil {
		audience := models.NormalizeAudience(*req.Audience)
		if !audience.Valid() {
			utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid audience '%s'.", *req.Audience), nil)
			return
		}
		journey.Audience = audience
	}
	if req.ItemRefs != nil {
		journey.ItemRefs = models.StringList(*req.ItemRefs)
	}
	if req.IsPublished != nil {
		journey.IsPublished = *req.IsPublished
	}

	if err := h.journeyRepo.UpdateJourney(journey); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update journey", err)
		return
	}
	c.JSON(http.StatusOK, journey)
}

// DeleteJourneyHandler removes a journey.
func (h *APIHandler) DeleteJourneyHandler(c *gin.Context) {
	if err := h.journeyRepo.DeleteJourney(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete journey", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
