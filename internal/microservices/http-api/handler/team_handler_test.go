package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"squadbuilder/internal/microservices/http-api/dto"
	"squadbuilder/internal/microservices/http-api/handler"
	"squadbuilder/internal/microservices/http-api/models"
	"squadbuilder/internal/microservices/http-api/repository"
	"squadbuilder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func intPtr(i int) *int { return &i }

// --- MOCK SERVICE ---

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, userID string, req dto.CreateTeamRequest) (*models.Team, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) Delete(ctx context.Context, userID string, teamID int64) error {
	args := m.Called(ctx, userID, teamID)
	return args.Error(0)
}

func (m *MockTeamService) GetView(ctx context.Context, teamID int64, viewerID string) (*dto.TeamViewResponse, error) {
	args := m.Called(ctx, teamID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TeamViewResponse), args.Error(1)
}

func (m *MockTeamService) ListByUser(ctx context.Context, userID string) ([]repository.TeamSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TeamSummary), args.Error(1)
}

func (m *MockTeamService) ListAll(ctx context.Context) ([]repository.TeamSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TeamSummary), args.Error(1)
}

func (m *MockTeamService) TopRated(ctx context.Context, limit int) ([]repository.TeamSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TeamSummary), args.Error(1)
}

// --- SETUP ---

func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", "testuser")
		c.Next()
	}
}

func setupTeamRouter(mockService *MockTeamService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	h := handler.NewTeamHandler(mockService)

	public := r.Group("/api")
	authed := r.Group("/api")
	if userID != "" {
		authed.Use(mockAuthMiddleware(userID))
	}
	h.RegisterRoutes(public, authed)
	return r
}

func validCreateBody() []byte {
	body, _ := json.Marshal(dto.CreateTeamRequest{
		TeamName:  "My Squad",
		TeamType:  models.TeamTypeFantasy,
		Formation: "4-4-2",
		PlayerIDs: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	})
	return body
}

// --- TESTS ---

func TestTeamHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		created := &models.Team{ID: 1, UserID: "user-1", TeamName: "My Squad", TeamType: models.TeamTypeFantasy, TotalCost: intPtr(660), Formation: "4-4-2"}
		mockService.On("Create", mock.Anything, "user-1", mock.AnythingOfType("dto.CreateTeamRequest")).Return(created, nil).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/teams", bytes.NewBuffer(validCreateBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.TeamResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, 660, *resp.TotalCost)
		mockService.AssertExpectations(t)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		mockService.On("Create", mock.Anything, "user-1", mock.Anything).Return(nil, service.ErrWrongRosterSize).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/teams", bytes.NewBuffer(validCreateBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BudgetExceededCarriesAmounts", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		mockService.On("Create", mock.Anything, "user-1", mock.Anything).
			Return(nil, &service.BudgetExceededError{TotalCost: 701, Cap: 700}).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/teams", bytes.NewBuffer(validCreateBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(701), resp["total_cost"])
		assert.Equal(t, float64(700), resp["budget_cap"])
	})

	t.Run("UnknownPlayer", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		mockService.On("Create", mock.Anything, "user-1", mock.Anything).Return(nil, service.ErrUnknownPlayer).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/teams", bytes.NewBuffer(validCreateBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "")

		req, _ := http.NewRequest(http.MethodPost, "/api/teams", bytes.NewBuffer(validCreateBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "Create")
	})
}

func TestTeamHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		view := &dto.TeamViewResponse{
			Team:         dto.TeamResponse{ID: 7, TeamName: "Galacticos"},
			TotalRatings: 3,
		}
		mockService.On("GetView", mock.Anything, int64(7), "").Return(view, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/teams/7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.TeamViewResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Galacticos", resp.Team.TeamName)
		assert.Nil(t, resp.AverageRating)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		mockService.On("GetView", mock.Anything, int64(99), "").Return(nil, service.ErrTeamNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/teams/99", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		req, _ := http.NewRequest(http.MethodGet, "/api/teams/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetView")
	})
}

func TestTeamHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		mockService.On("Delete", mock.Anything, "user-1", int64(7)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/teams/7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NotOwner", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		mockService.On("Delete", mock.Anything, "user-1", int64(7)).Return(service.ErrPermissionDenied).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/teams/7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockTeamService)
		r := setupTeamRouter(mockService, "user-1")

		mockService.On("Delete", mock.Anything, "user-1", int64(99)).Return(service.ErrTeamNotFound).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/teams/99", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTeamHandler_TopRated(t *testing.T) {
	mockService := new(MockTeamService)
	r := setupTeamRouter(mockService, "")

	avg := 9.5
	summaries := []repository.TeamSummary{
		{ID: 1, TeamName: "Best", AvgRating: &avg, Ratings: 12},
	}
	// Out-of-range limits fall back to the default of 6.
	mockService.On("TopRated", mock.Anything, 6).Return(summaries, nil).Twice()

	for _, path := range []string{"/api/teams/top", "/api/teams/top?limit=500"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	}
	mockService.AssertExpectations(t)
}

func TestTeamHandler_Dashboard(t *testing.T) {
	mockService := new(MockTeamService)
	r := setupTeamRouter(mockService, "user-1")

	mockService.On("ListByUser", mock.Anything, "user-1").Return([]repository.TeamSummary{{ID: 1, TeamName: "Mine"}}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/my/teams", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []repository.TeamSummary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "Mine", resp[0].TeamName)
}
