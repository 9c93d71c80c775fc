package api

import (
	"project/repository"
	"project/services"
)

// APIHandler holds all dependencies for API handlers, such as repositories
// and services. Everything is injected at startup; handlers hold no mutable
// state of their own.
type APIHandler struct {
	domainRepo        repository.DomainRepository
	contentRepo       repository.ContentRepository
	journeyRepo       repository.JourneyRepository
	importerService   services.ImporterService
	generationService services.GenerationService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	domainRepo repository.DomainRepository,
	contentRepo repository.ContentRepository,
	journeyRepo repository.JourneyRepository,
	importerService services.ImporterService,
	generationService services.GenerationService,
) *APIHandler {
	return &APIHandler{
		domainRepo:        domainRepo,
		contentRepo:       contentRepo,
		journeyRepo:       journeyRepo,
		importerService:   importerService,
		generationService: generationService,
	}
}
