package api

import (
	"net/http"
	"project/models"
	"project/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler returns the dashboard summary counts.
func (h *APIHandler) StatsHandler(c *gin.Context) {
	total, err := h.contentRepo.CountItems(nil)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}
	published := true
	publishedCount, err := h.contentRepo.CountItems(&published)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}
	domains, err := h.domainRepo.CountActive()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}
	journeys, err := h.journeyRepo.Count()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}

	c.JSON(http.StatusOK, models.StatsResponse{
		TotalContent:     total,
		PublishedContent: publishedCount,
		DraftContent:     total - publishedCount,
		Domains:          domains,
		Journeys:         journeys,
	})
}
