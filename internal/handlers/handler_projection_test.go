package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkrv/cashflow_app/internal/core/domain"
	portssvc "github.com/mkrv/cashflow_app/internal/core/ports/services"
	"github.com/mkrv/cashflow_app/internal/dto"
	"github.com/mkrv/cashflow_app/internal/handlers"
	"github.com/mkrv/cashflow_app/internal/platform/config"
)

// --- Mock ProjectionService ---
type MockProjectionService struct {
	mock.Mock
}

func (m *MockProjectionService) Project(ctx context.Context, scenarioID, accountID string, until *time.Time) ([]domain.Movement, error) {
	args := m.Called(ctx, scenarioID, accountID, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockProjectionService) ProjectCombined(ctx context.Context, until *time.Time) ([]domain.CombinedMovement, error) {
	args := m.Called(ctx, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CombinedMovement), args.Error(1)
}

var _ portssvc.ProjectionSvc = (*MockProjectionService)(nil)

type ProjectionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockProjectionService
}

func (s *ProjectionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockProjectionService)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Projection: s.mockService,
	})
}

func (s *ProjectionHandlerTestSuite) TestGetProjection() {
	movement := domain.Movement{
		Date:        time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		Category:    "Salary",
		Description: "payday",
		AccountID:   "acc-1",
		Kind:        domain.KindAbsolute,
		Amount:      decimal.NewFromInt(2500),
		Balance:     decimal.NewFromInt(3500),
	}
	s.mockService.On("Project", mock.Anything, "scn-1", "acc-1", (*time.Time)(nil)).
		Return([]domain.Movement{movement}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projection?scenarioID=scn-1&accountID=acc-1", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var body []dto.MovementResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body, 1)
	s.Equal("2025-01-15", body[0].Date)
	s.Equal("Salary", body[0].Category)
	s.True(decimal.NewFromInt(3500).Equal(body[0].Balance))
	s.mockService.AssertExpectations(s.T())
}

func (s *ProjectionHandlerTestSuite) TestGetProjectionPassesUntil() {
	until := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	s.mockService.On("Project", mock.Anything, "", "", &until).
		Return([]domain.Movement{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projection?until=2025-06-01", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *ProjectionHandlerTestSuite) TestGetProjectionRejectsBadUntil() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projection?until=June+2025", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.mockService.AssertNotCalled(s.T(), "Project", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ProjectionHandlerTestSuite) TestGetProjectionServiceError() {
	s.mockService.On("Project", mock.Anything, "", "", (*time.Time)(nil)).
		Return(nil, errors.New("snapshot load failed"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projection", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusInternalServerError, rec.Code)
	// Internal details never leak to the client.
	s.NotContains(rec.Body.String(), "snapshot load failed")
}

func (s *ProjectionHandlerTestSuite) TestGetCombinedProjection() {
	row := domain.CombinedMovement{
		Date:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Category:    domain.OpeningBalanceCategory,
		Description: "Cash",
		AccountType: "Cash",
		Amount:      decimal.Zero,
		Cash:        decimal.NewFromInt(100),
		Bank:        decimal.Zero,
	}
	s.mockService.On("ProjectCombined", mock.Anything, (*time.Time)(nil)).
		Return([]domain.CombinedMovement{row}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projection/combined", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var body []dto.CombinedMovementResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body, 1)
	s.Equal("Cash", body[0].AccountType)
	s.True(decimal.NewFromInt(100).Equal(body[0].Cash))
	s.mockService.AssertExpectations(s.T())
}

func TestProjectionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectionHandlerTestSuite))
}
