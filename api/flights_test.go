package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arunkx/skyfare/internal/domain"
	"github.com/arunkx/skyfare/internal/service/flights"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, sortBy, order string) ([]domain.Flight, error) {
	args := m.Called(ctx, sortBy, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, q flights.SearchQuery) ([]flights.PricedFlight, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]flights.PricedFlight), args.Error(1)
}

func (m *MockFlightUseCase) Quote(ctx context.Context, id int64) (*flights.PricedFlight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.PricedFlight), args.Error(1)
}

func (m *MockFlightUseCase) History(ctx context.Context, flightID int64) ([]domain.FareSnapshot, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FareSnapshot), args.Error(1)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights", nil)

	list := []domain.Flight{
		{ID: 1, FlightNo: "FB401", AirlineName: "IndiGo", Origin: "Mumbai", Destination: "Delhi", TotalSeats: 180, SeatsAvailable: 120, BaseFare: decimal.NewFromInt(4999)},
	}
	mockService.On("List", c.Request.Context(), "price", "asc").Return(list, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []flightResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "FB401", response[0].FlightNo)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_InvalidSortParam(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights?sort_by=airline", nil)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "List")
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights/search?origin=mumbai&destination=delhi&travel_date=2026-03-05", nil)

	results := []flights.PricedFlight{
		{
			Flight:       domain.Flight{ID: 1, FlightNo: "FB403", AirlineName: "IndiGo", Origin: "Mumbai", Destination: "Delhi", BaseFare: decimal.NewFromInt(4999)},
			DynamicPrice: decimal.RequireFromString("5748.85"),
		},
	}
	mockService.On("Search", c.Request.Context(), mock.AnythingOfType("flights.SearchQuery")).Return(results, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []pricedFlightResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.True(t, response[0].DynamicPrice.Equal(decimal.RequireFromString("5748.85")))

	mockService.AssertExpectations(t)
}

func TestFlightHandler_search_SameCity(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights/search?origin=mumbai&destination=mumbai&travel_date=2026-03-05", nil)

	mockService.On("Search", c.Request.Context(), mock.Anything).Return(nil, domain.ErrSameCity)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightHandler_search_BadDate(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights/search?origin=mumbai&destination=delhi&travel_date=05-03-2026", nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Search")
}

func TestFlightHandler_search_NoMatches(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights/search?origin=mumbai&destination=goa&travel_date=2026-03-05", nil)

	mockService.On("Search", c.Request.Context(), mock.Anything).Return(nil, domain.ErrNoFlightsFound)

	handler.search(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_price(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/1/price", nil)

	priced := &flights.PricedFlight{
		Flight:       domain.Flight{ID: 1, FlightNo: "FB401", BaseFare: decimal.NewFromInt(1000)},
		DynamicPrice: decimal.RequireFromString("900.00"),
	}
	mockService.On("Quote", c.Request.Context(), int64(1)).Return(priced, nil)

	handler.price(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response pricedFlightResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.DynamicPrice.Equal(decimal.RequireFromString("900.00")))

	mockService.AssertExpectations(t)
}

func TestFlightHandler_price_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/99/price", nil)

	mockService.On("Quote", c.Request.Context(), int64(99)).Return(nil, domain.ErrFlightNotFound)

	handler.price(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_history_Empty(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/1/history", nil)

	mockService.On("History", c.Request.Context(), int64(1)).Return(nil, domain.ErrNoFareHistory)

	handler.history(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
