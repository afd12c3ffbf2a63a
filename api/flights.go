package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/arunkx/skyfare/internal/domain"
	"github.com/arunkx/skyfare/internal/repository"
	"github.com/arunkx/skyfare/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id/price", h.price)
	router.GET("/:id/history", h.history)
}

type flightResponse struct {
	ID              int64           `json:"id"`
	FlightNo        string          `json:"flight_no"`
	AirlineName     string          `json:"airline_name"`
	Origin          string          `json:"origin"`
	Destination     string          `json:"destination"`
	DepartureTime   string          `json:"departure_time"`
	ArrivalTime     string          `json:"arrival_time"`
	DurationMinutes int             `json:"duration_minutes"`
	BaseFare        decimal.Decimal `json:"base_fare"`
	TotalSeats      int             `json:"total_seats"`
	SeatsAvailable  int             `json:"seats_available"`
}

type pricedFlightResponse struct {
	flightResponse
	DynamicPrice decimal.Decimal `json:"dynamic_price"`
}

type fareSnapshotResponse struct {
	RecordedAt     string          `json:"recorded_at"`
	Price          decimal.Decimal `json:"price"`
	SeatsAvailable int             `json:"seats_available"`
	DemandLevel    string          `json:"demand_level"`
}

func (h *FlightHandler) list(c *gin.Context) {
	sortBy, order, ok := sortParams(c)
	if !ok {
		return
	}

	list, err := h.service.List(c.Request.Context(), sortBy, order)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(list))
	for _, f := range list {
		resp = append(resp, toFlightResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) search(c *gin.Context) {
	sortBy, order, ok := sortParams(c)
	if !ok {
		return
	}

	travelDate, err := time.Parse("2006-01-02", c.Query("travel_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "travel_date must be YYYY-MM-DD"})
		return
	}

	results, err := h.service.Search(c.Request.Context(), flights.SearchQuery{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		TravelDate:  travelDate,
		SortBy:      sortBy,
		Order:       order,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]pricedFlightResponse, 0, len(results))
	for _, f := range results {
		resp = append(resp, pricedFlightResponse{
			flightResponse: toFlightResponse(f.Flight),
			DynamicPrice:   f.DynamicPrice,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) price(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	priced, err := h.service.Quote(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pricedFlightResponse{
		flightResponse: toFlightResponse(priced.Flight),
		DynamicPrice:   priced.DynamicPrice,
	})
}

func (h *FlightHandler) history(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	history, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]fareSnapshotResponse, 0, len(history))
	for _, s := range history {
		resp = append(resp, fareSnapshotResponse{
			RecordedAt:     s.RecordedAt.Format(time.RFC3339),
			Price:          s.Price,
			SeatsAvailable: s.SeatsAvailable,
			DemandLevel:    string(s.Demand),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func sortParams(c *gin.Context) (sortBy, order string, ok bool) {
	sortBy = c.DefaultQuery("sort_by", repository.SortByPrice)
	if sortBy != repository.SortByPrice && sortBy != repository.SortByDuration {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort_by must be price or duration"})
		return "", "", false
	}
	order = c.DefaultQuery("sort_order", repository.OrderAsc)
	if order != repository.OrderAsc && order != repository.OrderDesc {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort_order must be asc or desc"})
		return "", "", false
	}
	return sortBy, order, true
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:              f.ID,
		FlightNo:        f.FlightNo,
		AirlineName:     f.AirlineName,
		Origin:          f.Origin,
		Destination:     f.Destination,
		DepartureTime:   f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:     f.ArrivalTime.Format(time.RFC3339),
		DurationMinutes: f.DurationMinutes,
		BaseFare:        f.BaseFare,
		TotalSeats:      f.TotalSeats,
		SeatsAvailable:  f.SeatsAvailable,
	}
}
