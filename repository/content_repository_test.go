package repository

import (
	"errors"
	"path/filepath"
	"project/database"
	"project/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// setupTestDB opens a throwaway file-backed SQLite database with the full
// schema migrated and one domain seeded.
func setupTestDB(t *testing.T) (*gorm.DB, *models.Domain) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Domain{}, &models.ContentItem{}, &models.ContentDetails{}, &models.Journey{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	domain := &models.Domain{Slug: "sleep", Name: "Sleep, Energy & Recovery", IsActive: true}
	if err := db.Create(domain).Error; err != nil {
		t.Fatalf("failed to seed domain: %v", err)
	}
	return db, domain
}

func testItem(domainID, slug, label string) *models.ContentItem {
	return &models.ContentItem{
		Slug:        slug,
		DomainID:    domainID,
		Pillar:      models.PillarGrow,
		Label:       label,
		Microcopy:   "Short and hopeful.",
		Audience:    models.AudienceAny,
		Sensitivity: models.SensitivityNormal,
		Keywords:    models.StringList{"sleep", "rest"},
	}
}

func TestContentRepository_ItemExists(t *testing.T) {
	db, domain := setupTestDB(t)
	repo := NewContentRepository(db)

	err := repo.CreateItemWithDetails(testItem(domain.ID, "sleep.grow.winding-down", "Winding Down"), nil)
	assert.NoError(t, err)

	t.Run("Exact match is found", func(t *testing.T) {
		exists, err := repo.ItemExists(domain.ID, "Winding Down")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Comparison is exact, not normalized", func(t *testing.T) {
		exists, err := repo.ItemExists(domain.ID, "winding down")
		assert.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ItemExists(domain.ID, "Winding Down!")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Same label in another domain is distinct", func(t *testing.T) {
		exists, err := repo.ItemExists("other-domain", "Winding Down")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestContentRepository_CreateItemWithDetails(t *testing.T) {
	t.Run("Creates item and details together", func(t *testing.T) {
		db, domain := setupTestDB(t)
		repo := NewContentRepository(db)

		item := testItem(domain.ID, "sleep.grow.winding-down", "Winding Down")
		details := &models.ContentDetails{
			UnderstandBody: "A couple of paragraphs.",
			GrowSteps:      models.GrowStepList{{Action: "Dim the lights", Detail: "An hour before bed"}},
			Affirmation:    "Rest is productive.",
		}
		assert.NoError(t, repo.CreateItemWithDetails(item, details))
		assert.NotEmpty(t, item.ID)

		loaded, err := repo.GetItemByID(item.ID)
		assert.NoError(t, err)
		assert.NotNil(t, loaded)
		assert.NotNil(t, loaded.Details)
		assert.Equal(t, item.ID, loaded.Details.ContentItemID)
		assert.Equal(t, "Rest is productive.", loaded.Details.Affirmation)
		assert.Equal(t, models.StringList{"sleep", "rest"}, loaded.Keywords)
	})

	t.Run("Duplicate slug surfaces gorm.ErrDuplicatedKey", func(t *testing.T) {
		db, domain := setupTestDB(t)
		repo := NewContentRepository(db)

		assert.NoError(t, repo.CreateItemWithDetails(testItem(domain.ID, "sleep.grow.winding-down", "Winding Down"), nil))
		err := repo.CreateItemWithDetails(testItem(domain.ID, "sleep.grow.winding-down", "Another Label, Same Slug"), nil)
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
	})

	t.Run("Details failure rolls back the item row", func(t *testing.T) {
		db, domain := setupTestDB(t)
		repo := NewContentRepository(db)

		// Force the details insert to fail mid-transaction.
		assert.NoError(t, db.Migrator().DropTable(&models.ContentDetails{}))

		item := testItem(domain.ID, "sleep.grow.orphan", "Orphan Candidate")
		err := repo.CreateItemWithDetails(item, &models.ContentDetails{Affirmation: "Never lands"})
		assert.Error(t, err)

		var count int64
		assert.NoError(t, db.Model(&models.ContentItem{}).Where("slug = ?", "sleep.grow.orphan").Count(&count).Error)
		assert.Zero(t, count, "summary row must not survive a failed details insert")
	})
}

func TestContentRepository_GetItemByID(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewContentRepository(db)

	t.Run("Unknown ID returns nil without error", func(t *testing.T) {
		item, err := repo.GetItemByID("no-such-id")
		assert.NoError(t, err)
		assert.Nil(t, item)
	})
}

func TestContentRepository_ListItems(t *testing.T) {
	db, domain := setupTestDB(t)
	repo := NewContentRepository(db)

	published := testItem(domain.ID, "sleep.grow.published", "Published Item")
	published.IsPublished = true
	assert.NoError(t, repo.CreateItemWithDetails(published, nil))
	assert.NoError(t, repo.CreateItemWithDetails(testItem(domain.ID, "sleep.grow.draft", "Draft About Recovery"), nil))

	t.Run("No filter returns everything with domain preloaded", func(t *testing.T) {
		items, err := repo.ListItems(ContentFilter{})
		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.NotNil(t, items[0].Domain)
		assert.Equal(t, "sleep", items[0].Domain.Slug)
	})

	t.Run("Published filter", func(t *testing.T) {
		isPublished := true
		items, err := repo.ListItems(ContentFilter{Published: &isPublished})
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Published Item", items[0].Label)
	})

	t.Run("Search matches label substring", func(t *testing.T) {
		items, err := repo.ListItems(ContentFilter{Search: "Recovery"})
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Draft About Recovery", items[0].Label)
	})
}

func TestContentRepository_CountItems(t *testing.T) {
	db, domain := setupTestDB(t)
	repo := NewContentRepository(db)

	published := testItem(domain.ID, "sleep.grow.published", "Published Item")
	published.IsPublished = true
	assert.NoError(t, repo.CreateItemWithDetails(published, nil))
	assert.NoError(t, repo.CreateItemWithDetails(testItem(domain.ID, "sleep.grow.draft", "Draft Item"), nil))

	total, err := repo.CountItems(nil)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, total)

	isPublished := true
	publishedCount, err := repo.CountItems(&isPublished)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, publishedCount)
}

func TestContentRepository_UpsertDetails(t *testing.T) {
	db, domain := setupTestDB(t)
	repo := NewContentRepository(db)

	item := testItem(domain.ID, "sleep.grow.winding-down", "Winding Down")
	assert.NoError(t, repo.CreateItemWithDetails(item, nil))

	t.Run("Creates the row when none exists", func(t *testing.T) {
		assert.NoError(t, repo.UpsertDetails(&models.ContentDetails{
			ContentItemID: item.ID,
			Affirmation:   "First version",
		}))
	})

	t.Run("Replaces the row in place on second upsert", func(t *testing.T) {
		assert.NoError(t, repo.UpsertDetails(&models.ContentDetails{
			ContentItemID:  item.ID,
			Affirmation:    "Second version",
			UnderstandBody: "Now with a body.",
		}))

		var rows []models.ContentDetails
		assert.NoError(t, db.Find(&rows, "content_item_id = ?", item.ID).Error)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Second version", rows[0].Affirmation)
	})

	t.Run("Rejects details without a parent item ID", func(t *testing.T) {
		assert.Error(t, repo.UpsertDetails(&models.ContentDetails{}))
	})
}

func TestContentRepository_DeleteItem(t *testing.T) {
	db, domain := setupTestDB(t)
	repo := NewContentRepository(db)

	item := testItem(domain.ID, "sleep.grow.winding-down", "Winding Down")
	assert.NoError(t, repo.CreateItemWithDetails(item, &models.ContentDetails{Affirmation: "Bye"}))

	assert.NoError(t, repo.DeleteItem(item.ID))

	loaded, err := repo.GetItemByID(item.ID)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	var detailCount int64
	assert.NoError(t, db.Model(&models.ContentDetails{}).Where("content_item_id = ?", item.ID).Count(&detailCount).Error)
	assert.Zero(t, detailCount)
}

func TestContentRepository_ListItemsMissingDetails(t *testing.T) {
	db, domain := setupTestDB(t)
	repo := NewContentRepository(db)

	complete := testItem(domain.ID, "sleep.grow.complete", "Complete Item")
	assert.NoError(t, repo.CreateItemWithDetails(complete, &models.ContentDetails{
		UnderstandBody:     "Body",
		UnderstandExamples: "Examples",
		GrowObstacles:      "Obstacles",
	}))

	partial := testItem(domain.ID, "sleep.grow.partial", "Partial Item")
	assert.NoError(t, repo.CreateItemWithDetails(partial, &models.ContentDetails{
		UnderstandBody: "Body only",
	}))

	bare := testItem(domain.ID, "sleep.grow.bare", "Bare Item")
	assert.NoError(t, repo.CreateItemWithDetails(bare, nil))

	items, err := repo.ListItemsMissingDetails(10)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	labels := []string{items[0].Label, items[1].Label}
	assert.Contains(t, labels, "Partial Item")
	assert.Contains(t, labels, "Bare Item")
	for _, item := range items {
		assert.NotNil(t, item.Domain, "domain must be preloaded for prompt building")
	}
}
