package repository

import (
	"path/filepath"
	"project/database"
	"project/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func emptyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Domain{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestDomainRepository_EnsureDefaults(t *testing.T) {
	defaults := []models.Domain{
		{Slug: "sleep", Name: "Sleep, Energy & Recovery", IsActive: true},
		{Slug: "calm", Name: "Calm, Confidence & Emotional Skills", IsActive: true},
	}

	t.Run("Seeds an empty table", func(t *testing.T) {
		repo := NewDomainRepository(emptyTestDB(t))
		assert.NoError(t, repo.EnsureDefaults(defaults))

		domains, err := repo.ListDomains()
		assert.NoError(t, err)
		assert.Len(t, domains, 2)
	})

	t.Run("Leaves a populated table alone", func(t *testing.T) {
		repo := NewDomainRepository(emptyTestDB(t))
		assert.NoError(t, repo.CreateDomain(&models.Domain{Slug: "custom", Name: "Custom"}))
		assert.NoError(t, repo.EnsureDefaults(defaults))

		domains, err := repo.ListDomains()
		assert.NoError(t, err)
		assert.Len(t, domains, 1)
		assert.Equal(t, "custom", domains[0].Slug)
	})
}

func TestDomainRepository_SlugToIDMap(t *testing.T) {
	repo := NewDomainRepository(emptyTestDB(t))
	sleep := &models.Domain{Slug: "sleep", Name: "Sleep, Energy & Recovery"}
	calm := &models.Domain{Slug: "calm", Name: "Calm, Confidence & Emotional Skills"}
	assert.NoError(t, repo.CreateDomain(sleep))
	assert.NoError(t, repo.CreateDomain(calm))

	m, err := repo.SlugToIDMap()
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"sleep": sleep.ID, "calm": calm.ID}, m)
}

func TestDomainRepository_UpdateDomain(t *testing.T) {
	repo := NewDomainRepository(emptyTestDB(t))
	domain := &models.Domain{Slug: "sleep", Name: "Sleep", IsActive: true}
	assert.NoError(t, repo.CreateDomain(domain))

	t.Run("Applies a partial update", func(t *testing.T) {
		updated, err := repo.UpdateDomain(domain.ID, map[string]interface{}{"name": "Sleep & Recovery", "is_active": false})
		assert.NoError(t, err)
		assert.Equal(t, "Sleep & Recovery", updated.Name)
		assert.False(t, updated.IsActive)
		assert.Equal(t, "sleep", updated.Slug)
	})

	t.Run("Unknown ID returns nil without error", func(t *testing.T) {
		updated, err := repo.UpdateDomain("no-such-id", map[string]interface{}{"name": "X"})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestDomainRepository_GetDomainByID(t *testing.T) {
	repo := NewDomainRepository(emptyTestDB(t))
	domain, err := repo.GetDomainByID("missing")
	assert.NoError(t, err)
	assert.Nil(t, domain)
}
