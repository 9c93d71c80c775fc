package repository

import (
	"errors"
	"fmt"
	"log"
	"project/models"

	"gorm.io/gorm"
)

// DomainRepository defines the interface for interacting with domain data.
type DomainRepository interface {
	ListDomains() ([]*models.Domain, error)
	GetDomainByID(id string) (*models.Domain, error)
	SlugToIDMap() (map[string]string, error)
	CreateDomain(domain *models.Domain) error
	UpdateDomain(id string, updates map[string]interface{}) (*models.Domain, error)
	DeleteDomain(id string) error
	CountActive() (int64, error)
	EnsureDefaults(defaults []models.Domain) error
}

type domainRepository struct {
	db *gorm.DB
}

// NewDomainRepository creates a new instance of DomainRepository.
func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{db: db}
}

// ListDomains retrieves all domains ordered by display order.
func (r *domainRepository) ListDomains() ([]*models.Domain, error) {
	var domains []*models.Domain
	err := r.db.Order("display_order asc").Find(&domains).Error
	if err != nil {
		log.Printf("ERROR: [DomainRepository] Failed to list domains: %v", err)
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	return domains, nil
}

// GetDomainByID retrieves a single domain by its ID.
// Returns (nil, nil) when no domain with that ID exists.
func (r *domainRepository) GetDomainByID(id string) (*models.Domain, error) {
	var domain models.Domain
	err := r.db.First(&domain, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [DomainRepository] Domain with ID %s not found.", id)
			return nil, nil
		}
		log.Printf("ERROR: [DomainRepository] Failed to retrieve domain %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve domain %s: %w", id, err)
	}
	return &domain, nil
}

// SlugToIDMap returns a slug -> id map over all domains. The importer fetches
// this once per batch and resolves every item against the same snapshot.
func (r *domainRepository) SlugToIDMap() (map[string]string, error) {
	var domains []models.Domain
	err := r.db.Select("id", "slug").Find(&domains).Error
	if err != nil {
		log.Printf("ERROR: [DomainRepository] Failed to build slug map: %v", err)
		return nil, fmt.Errorf("failed to build domain slug map: %w", err)
	}
	m := make(map[string]string, len(domains))
	for _, d := range domains {
		m[d.Slug] = d.ID
	}
	return m, nil
}

// CreateDomain creates a new domain.
func (r *domainRepository) CreateDomain(domain *models.Domain) error {
	if domain == nil {
		log.Printf("ERROR: [DomainRepository] CreateDomain: domain cannot be nil")
		return errors.New("domain cannot be nil")
	}
	err := r.db.Create(domain).Error
	if err != nil {
		log.Printf("ERROR: [DomainRepository] Failed to create domain '%s': %v", domain.Slug, err)
		return fmt.Errorf("failed to create domain '%s': %w", domain.Slug, err)
	}
	log.Printf("INFO: [DomainRepository] Successfully created domain %s ('%s').", domain.ID, domain.Slug)
	return nil
}

// UpdateDomain applies a partial update to a domain and returns the updated row.
func (r *domainRepository) UpdateDomain(id string, updates map[string]interface{}) (*models.Domain, error) {
	res := r.db.Model(&models.Domain{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		log.Printf("ERROR: [DomainRepository] Failed to update domain %s: %v", id, res.Error)
		return nil, fmt.Errorf("failed to update domain %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("INFO: [DomainRepository] UpdateDomain: domain %s not found.", id)
		return nil, nil
	}
	return r.GetDomainByID(id)
}

// DeleteDomain removes a domain by its ID.
func (r *domainRepository) DeleteDomain(id string) error {
	err := r.db.Delete(&models.Domain{}, "id = ?", id).Error
	if err != nil {
		log.Printf("ERROR: [DomainRepository] Failed to delete domain %s: %v", id, err)
		return fmt.Errorf("failed to delete domain %s: %w", id, err)
	}
	log.Printf("INFO: [DomainRepository] Successfully deleted domain %s.", id)
	return nil
}

// CountActive returns the number of active domains.
func (r *domainRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Domain{}).Where("is_active = ?", true).Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [DomainRepository] Failed to count active domains: %v", err)
		return 0, fmt.Errorf("failed to count active domains: %w", err)
	}
	return count, nil
}

// EnsureDefaults seeds the given domains when the table is empty, so a fresh
// instance can resolve every fixed domain name immediately.
func (r *domainRepository) EnsureDefaults(defaults []models.Domain) error {
	var count int64
	if err := r.db.Model(&models.Domain{}).Count(&count).Error; err != nil {
		log.Printf("ERROR: [DomainRepository] Failed to count domains for seeding: %v", err)
		return fmt.Errorf("failed to count domains: %w", err)
	}
	if count > 0 {
		log.Printf("INFO: [DomainRepository] Domains table already has %d rows, skipping seed.", count)
		return nil
	}
	for i := range defaults {
		if err := r.db.Create(&defaults[i]).Error; err != nil {
			log.Printf("ERROR: [DomainRepository] Failed to seed domain '%s': %v", defaults[i].Slug, err)
			return fmt.Errorf("failed to seed domain '%s': %w", defaults[i].Slug, err)
		}
	}
	log.Printf("INFO: [DomainRepository] Seeded %d default domains.", len(defaults))
	return nil
}
