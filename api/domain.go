package api

import (
	"net/http"
	"project/models"
	"project/utils"

	"github.com/gin-gonic/gin"
)

// ListDomainsHandler returns all domains ordered by display order.
func (h *APIHandler) ListDomainsHandler(c *gin.Context) {
	domains, err := h.domainRepo.ListDomains()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch domains", err)
		return
	}
	c.JSON(http.StatusOK, domains)
}

// CreateDomainHandler creates a new domain.
func (h *APIHandler) CreateDomainHandler(c *gin.Context) {
	var domain models.Domain
	if err := c.ShouldBindJSON(&domain); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if domain.Slug == "" || domain.Name == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Domain slug and name are required.", nil)
		return
	}
	if err := h.domainRepo.CreateDomain(&domain); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create domain", err)
		return
	}
	c.JSON(http.StatusCreated, domain)
}

// domainPatchRequest carries optional domain fields for partial updates.
type domainPatchRequest struct {
	Slug         *string `json:"slug"`
	Name         *string `json:"name"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// UpdateDomainHandler applies a partial update to a domain.
func (h *APIHandler) UpdateDomainHandler(c *gin.Context) {
	id := c.Param("id")

	var req domainPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	updates := map[string]interface{}{}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.SendJSONError(c, http.StatusBadRequest, "No fields to update.", nil)
		return
	}

	domain, err := h.domainRepo.UpdateDomain(id, updates)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update domain", err)
		return
	}
	if domain == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Domain not found.", nil)
		return
	}
	c.JSON(http.StatusOK, domain)
}

// DeleteDomainHandler removes a domain.
func (h *APIHandler) DeleteDomainHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.domainRepo.DeleteDomain(id); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete domain", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
