package repository

import (
	"errors"
	"fmt"
	"log"
	"project/models"

	"gorm.io/gorm"
)

// JourneyRepository defines the interface for interacting with journey data.
type JourneyRepository interface {
	ListJourneys() ([]*models.Journey, error)
	GetJourneyByID(id string) (*models.Journey, error)
	CreateJourney(journey *models.Journey) error
	UpdateJourney(journey *models.Journey) error
	DeleteJourney(id string) error
	Count() (int64, error)
}

type journeyRepository struct {
	db *gorm.DB
}

// NewJourneyRepository creates a new instance of JourneyRepository.
func NewJourneyRepository(db *gorm.DB) JourneyRepository {
	return &journeyRepository{db: db}
}

// ListJourneys retrieves all journeys, newest first.
func (r *journeyRepository) ListJourneys() ([]*models.Journey, error) {
	var journeys []*models.Journey
	err := r.db.Order("created_at desc").Find(&journeys).Error
	if err != nil {
		log.Printf("ERROR: [JourneyRepository] Failed to list journeys: %v", err)
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}
	return journeys, nil
}

// GetJourneyByID retrieves a single journey.
// Returns (nil, nil) when no journey with that ID exists.
func (r *journeyRepository) GetJourneyByID(id string) (*models.Journey, error) {
	var journey models.Journey
	err := r.db.First(&journey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [JourneyRepository] Journey with ID %s not found.", id)
			return nil, nil
		}
		log.Printf("ERROR: [JourneyRepository] Failed to retrieve journey %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve journey %s: %w", id, err)
	}
	return &journey, nil
}

// CreateJourney creates a new journey.
func (r *journeyRepository) CreateJourney(journey *models.Journey) error {
	if journey == nil {
		log.Printf("ERROR: [JourneyRepository] CreateJourney: journey cannot be nil")
		return errors.New("journey cannot be nil")
	}
	err := r.db.Create(journey).Error
	if err != nil {
		log.Printf("ERROR: [JourneyRepository] Failed to create journey '%s': %v", journey.Slug, err)
		return fmt.Errorf("failed to create journey '%s': %w", journey.Slug, err)
	}
	log.Printf("INFO: [JourneyRepository] Successfully created journey %s ('%s') with %d item refs.",
		journey.ID, journey.Slug, len(journey.ItemRefs))
	return nil
}

// UpdateJourney saves the full journey row. Partial updates go through a
// fetch-apply-save cycle in the handler so JSON-serialized columns like
// item_refs round-trip correctly.
func (r *journeyRepository) UpdateJourney(journey *models.Journey) error {
	if journey == nil || journey.ID == "" {
		log.Printf("ERROR: [JourneyRepository] UpdateJourney: journey with ID must be provided")
		return errors.New("journey with ID must be provided for update")
	}
	err := r.db.Save(journey).Error
	if err != nil {
		log.Printf("ERROR: [JourneyRepository] Failed to update journey %s: %v", journey.ID, err)
		return fmt.Errorf("failed to update journey %s: %w", journey.ID, err)
	}
	log.Printf("INFO: [JourneyRepository] Successfully updated journey %s.", journey.ID)
	return nil
}

// DeleteJourney removes a journey by its ID.
func (r *journeyRepository) DeleteJourney(id string) error {
	err := r.db.Delete(&models.Journey{}, "id = ?", id).Error
	if err != nil {
		log.Printf("ERROR: [JourneyRepository] Failed to delete journey %s: %v", id, err)
		return fmt.Errorf("failed to delete journey %s: %w", id, err)
	}
	log.Printf("INFO: [JourneyRepository] Successfully deleted journey %s.", id)
	return nil
}

// Count returns the total number of journeys.
func (r *journeyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Journey{}).Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [JourneyRepository] Failed to count journeys: %v", err)
		return 0, fmt.Errorf("failed to count journeys: %w", err)
	}
	return count, nil
}
