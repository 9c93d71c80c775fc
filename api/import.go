package api

import (
	"errors"
	"net/http"
	"project/models"
	"project/services"
	"project/utils"

	"github.com/gin-gonic/gin"
)

// ImportHandler accepts a bulk import document { items: [...] } of
// AI-generated content and runs it through the importer. Per-item problems
// are reported in the result, never as an HTTP error; only a malformed
// request body or a storage-level batch failure produces one.
func (h *APIHandler) ImportHandler(c *gin.Context) {
	var req models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Items == nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid format. Expected { items: [...] }", err)
		return
	}

	result, err := h.importerService.ImportBatch(req.Items)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Import failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateHandler asks the text-generation API for a batch of candidate
// content items and returns them in the same shape the import endpoint
// accepts. On a parse failure the raw model output is surfaced for manual
// inspection.
func (h *APIHandler) GenerateHandler(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	batch, err := h.generationService.GenerateBatch(c.Request.Context(), req)
	if err != nil {
		var parseErr *services.GenerationParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to parse generated content",
				"raw":   parseErr.Raw,
			})
			return
		}
		if errors.Is(err, services.ErrGenerationRequest) {
			utils.SendJSONError(c, http.StatusBadGateway, "Failed to generate content", err)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to generate content", err)
		return
	}
	c.JSON(http.StatusOK, batch)
}
