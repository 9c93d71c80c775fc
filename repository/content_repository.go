package repository

import (
	"errors"
	"fmt"
	"log"
	"project/models"

	"gorm.io/gorm"
)

// ContentFilter narrows ListItems results. Nil/zero fields are ignored.
type ContentFilter struct {
	DomainID  string
	Pillar    string
	Published *bool
	Search    string // Matches label or microcopy, case-insensitive substring
}

// ContentRepository defines the interface for interacting with content items
// and their details.
type ContentRepository interface {
	ListItems(filter ContentFilter) ([]*models.ContentItem, error)
	GetItemByID(id string) (*models.ContentItem, error)
	ItemExists(domainID, label string) (bool, error)
	CreateItemWithDetails(item *models.ContentItem, details *models.ContentDetails) error
	UpdateItem(item *models.ContentItem) error
	UpsertDetails(details *models.ContentDetails) error
	DeleteItem(id string) error
	CountItems(published *bool) (int64, error)
	ListItemsMissingDetails(limit int) ([]*models.ContentItem, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new instance of ContentRepository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// ListItems retrieves content items matching the filter, newest first,
// with their domain preloaded.
func (r *contentRepository) ListItems(filter ContentFilter) ([]*models.ContentItem, error) {
	query := r.db.Preload("Domain").Order("created_at desc")

	if filter.DomainID != "" {
		query = query.Where("domain_id = ?", filter.DomainID)
	}
	if filter.Pillar != "" {
		query = query.Where("pillar = ?", filter.Pillar)
	}
	if filter.Published != nil {
		query = query.Where("is_published = ?", *filter.Published)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("label LIKE ? OR microcopy LIKE ?", pattern, pattern)
	}

	var items []*models.ContentItem
	err := query.Find(&items).Error
	if err != nil {
		log.Printf("ERROR: [ContentRepository] Failed to list content items: %v", err)
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}
	return items, nil
}

// GetItemByID retrieves a single content item with its domain and details.
// Returns (nil, nil) when no item with that ID exists.
func (r *contentRepository) GetItemByID(id string) (*models.ContentItem, error) {
	var item models.ContentItem
	err := r.db.Preload("Domain").Preload("Details").First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [ContentRepository] Content item with ID %s not found.", id)
			return nil, nil
		}
		log.Printf("ERROR: [ContentRepository] Failed to retrieve content item %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve content item %s: %w", id, err)
	}
	return &item, nil
}

// ItemExists reports whether an item with the exact (domainID, label) pair
// already exists. The comparison is case-sensitive exact-string match; no
// normalization is applied, so labels differing only in punctuation or
// whitespace count as distinct items.
func (r *contentRepository) ItemExists(domainID, label string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ContentItem{}).
		Where("domain_id = ? AND label = ?", domainID, label).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [ContentRepository] Failed to check existence for label '%s' in domain %s: %v", label, domainID, err)
		return false, fmt.Errorf("failed to check existence for label '%s': %w", label, err)
	}
	return count > 0, nil
}

// CreateItemWithDetails inserts a content item and its details row in a
// single transaction, so a details failure rolls the summary row back and
// never leaves an orphaned item behind.
func (r *contentRepository) CreateItemWithDetails(item *models.ContentItem, details *models.ContentDetails) error {
	if item == nil {
		log.Printf("ERROR: [ContentRepository] CreateItemWithDetails: item cannot be nil")
		return errors.New("content item cannot be nil")
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if details != nil {
			details.ContentItemID = item.ID
			if err := tx.Create(details).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Slug collision despite the pre-check; let the caller decide.
			log.Printf("INFO: [ContentRepository] Duplicate key creating content item '%s' (slug '%s').", item.Label, item.Slug)
			return err
		}
		log.Printf("ERROR: [ContentRepository] Failed to create content item '%s': %v", item.Label, err)
		return fmt.Errorf("failed to create content item '%s': %w", item.Label, err)
	}
	log.Printf("INFO: [ContentRepository] Successfully created content item %s ('%s').", item.ID, item.Label)
	return nil
}

// UpdateItem saves the full content item row.
func (r *contentRepository) UpdateItem(item *models.ContentItem) error {
	if item == nil || item.ID == "" {
		log.Printf("ERROR: [ContentRepository] UpdateItem: item with ID must be provided")
		return errors.New("content item with ID must be provided for update")
	}
	err := r.db.Save(item).Error
	if err != nil {
		log.Printf("ERROR: [ContentRepository] Failed to update content item %s: %v", item.ID, err)
		return fmt.Errorf("failed to update content item %s: %w", item.ID, err)
	}
	log.Printf("INFO: [ContentRepository] Successfully updated content item %s.", item.ID)
	return nil
}

// UpsertDetails creates or replaces the details row for a content item.
func (r *contentRepository) UpsertDetails(details *models.ContentDetails) error {
	if details == nil || details.ContentItemID == "" {
		log.Printf("ERROR: [ContentRepository] UpsertDetails: details with ContentItemID must be provided")
		return errors.New("content details with ContentItemID must be provided")
	}
	var existing models.ContentDetails
	err := r.db.First(&existing, "content_item_id = ?", details.ContentItemID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ERROR: [ContentRepository] Failed to look up details for item %s: %v", details.ContentItemID, err)
			return fmt.Errorf("failed to look up details for item %s: %w", details.ContentItemID, err)
		}
		if createErr := r.db.Create(details).Error; createErr != nil {
			log.Printf("ERROR: [ContentRepository] Failed to create details for item %s: %v", details.ContentItemID, createErr)
			return fmt.Errorf("failed to create details for item %s: %w", details.ContentItemID, createErr)
		}
		return nil
	}
	details.ID = existing.ID
	details.CreatedAt = existing.CreatedAt
	if saveErr := r.db.Save(details).Error; saveErr != nil {
		log.Printf("ERROR: [ContentRepository] Failed to update details for item %s: %v", details.ContentItemID, saveErr)
		return fmt.Errorf("failed to update details for item %s: %w", details.ContentItemID, saveErr)
	}
	return nil
}

// DeleteItem removes a content item and its details row in one transaction.
func (r *contentRepository) DeleteItem(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ContentDetails{}, "content_item_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ContentItem{}, "id = ?", id).Error
	})
	if err != nil {
		log.Printf("ERROR: [ContentRepository] Failed to delete content item %s: %v", id, err)
		return fmt.Errorf("failed to delete content item %s: %w", id, err)
	}
	log.Printf("INFO: [ContentRepository] Successfully deleted content item %s.", id)
	return nil
}

// CountItems counts content items, optionally filtered by published state.
func (r *contentRepository) CountItems(published *bool) (int64, error) {
	query := r.db.Model(&models.ContentItem{})
	if published != nil {
		query = query.Where("is_published = ?", *published)
	}
	var count int64
	err := query.Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [ContentRepository] Failed to count content items: %v", err)
		return 0, fmt.Errorf("failed to count content items: %w", err)
	}
	return count, nil
}

// ListItemsMissingDetails returns items whose details row lacks one of the
// long-form fields the backfill fills in (understand_body,
// understand_examples, grow_obstacles). Domain and details are preloaded so
// the backfill can build its prompt without extra queries.
func (r *contentRepository) ListItemsMissingDetails(limit int) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	err := r.db.Preload("Domain").Preload("Details").
		Joins("LEFT JOIN content_details ON content_details.content_item_id = content_items.id").
		Where("content_details.id IS NULL OR content_details.understand_body = '' OR content_details.understand_examples = '' OR content_details.grow_obstacles = ''").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		log.Printf("ERROR: [ContentRepository] Failed to list items missing details: %v", err)
		return nil, fmt.Errorf("failed to list items missing details: %w", err)
	}
	log.Printf("INFO: [ContentRepository] Found %d items missing detail fields.", len(items))
	return items, nil
}
