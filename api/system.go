package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/arunkx/skyfare/internal/mockfeed"
)

// SystemHandler serves the health check and the mock external schedule feed.
type SystemHandler struct{}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

func (h *SystemHandler) Register(router *gin.RouterGroup) {
	router.GET("/health", h.health)
	router.GET("/external/mock-schedule", h.mockSchedule)
}

func (h *SystemHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"message":     "backend running",
		"server_time": time.Now().UTC().Format(time.RFC3339),
	})
}

type mockScheduleFlight struct {
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

func (h *SystemHandler) mockSchedule(c *gin.Context) {
	now := time.Now().UTC()
	feed := mockfeed.Flights(now)

	out := make([]mockScheduleFlight, 0, len(feed))
	for _, f := range feed {
		out = append(out, mockScheduleFlight{
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
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":     mockfeed.Provider,
		"generated_at": now.Format(time.RFC3339),
		"flights":      out,
	})
}
