package api

import (
	"net/http"
	"project/models"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockJourneyRepository is a mock type for the JourneyRepository interface
type MockJourneyRepository struct {
	mock.Mock
}

func (m *MockJourneyRepository) ListJourneys() ([]*models.Journey, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Journey), args.Error(1)
}

func (m *MockJourneyRepository) GetJourneyByID(id string) (*models.Journey, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Journey), args.Error(1)
}

func (m *MockJourneyRepository) CreateJourney(journey *models.Journey) error {
	args := m.Called(journey)
	return args.Error(0)
}

func (m *MockJourneyRepository) UpdateJourney(journey *models.Journey) error {
	args := m.Called(journey)
	return args.Error(0)
}

func (m *MockJourneyRepository) DeleteJourney(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockJourneyRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func patchJourneyRouter(journeyRepo *MockJourneyRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAPIHandler(nil, nil, journeyRepo, nil, nil)
	r := gin.New()
	r.PATCH("/api/journeys/:id", handler.PatchJourneyHandler)
	return r
}

func existingJourney() *models.Journey {
	return &models.Journey{
		ID:       "journey-1",
		Slug:     "settling-into-civilian-life",
		Title:    "Settling Into Civilian Life",
		Audience: models.AudienceAny,
		ItemRefs: models.StringList{"transition.understand.first-weeks"},
	}
}

func TestPatchJourneyHandler_Validation(t *testing.T) {
	t.Run("Rejects an unknown audience", func(t *testing.T) {
		mockRepo := new(MockJourneyRepository)
		mockRepo.On("GetJourneyByID", "journey-1").Return(existingJourney(), nil)
		r := patchJourneyRouter(mockRepo)

		w := performPatch(r, "/api/journeys/journey-1", `{"audience": "vip"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "UpdateJourney", mock.Anything)
	})

	t.Run("Normalizes and stores a valid audience", func(t *testing.T) {
		mockRepo := new(MockJourneyRepository)
		mockRepo.On("GetJourneyByID", "journey-1").Return(existingJourney(), nil)

		var saved *models.Journey
		mockRepo.On("UpdateJourney", mock.AnythingOfType("*models.Journey")).
			Run(func(args mock.Arguments) {
				saved = args.Get(0).(*models.Journey)
			}).Return(nil)
		r := patchJourneyRouter(mockRepo)

		w := performPatch(r, "/api/journeys/journey-1", `{"audience": "partner_family", "is_published": true}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotNil(t, saved)
		assert.Equal(t, models.AudiencePartnerFamily, saved.Audience)
		assert.True(t, saved.IsPublished)
	})

	t.Run("Item reference order is preserved on patch", func(t *testing.T) {
		mockRepo := new(MockJourneyRepository)
		mockRepo.On("GetJourneyByID", "journey-1").Return(existingJourney(), nil)

		var saved *models.Journey
		mockRepo.On("UpdateJourney", mock.AnythingOfType("*models.Journey")).
			Run(func(args mock.Arguments) {
				saved = args.Get(0).(*models.Journey)
			}).Return(nil)
		r := patchJourneyRouter(mockRepo)

		w := performPatch(r, "/api/journeys/journey-1",
			`{"item_refs": ["b.reflect.second", "a.understand.first"]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StringList{"b.reflect.second", "a.understand.first"}, saved.ItemRefs)
	})
}
