package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/arunkx/skyfare/internal/domain"
	"github.com/arunkx/skyfare/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID      int64  `json:"flight_id" binding:"required"`
	PassengerName string `json:"passenger_name" binding:"required"`
	SeatNo        string `json:"seat_no"`
}

type bookingResponse struct {
	PNR           string          `json:"pnr"`
	FlightID      int64           `json:"flight_id"`
	PassengerName string          `json:"passenger_name"`
	SeatNo        string          `json:"seat_no,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:pnr", h.get)
	router.POST("/:pnr/pay", h.pay)
	router.DELETE("/:pnr", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:      req.FlightID,
		PassengerName: req.PassengerName,
		SeatNo:        req.SeatNo,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetBooking(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) pay(c *gin.Context) {
	paid, err := h.service.PayBooking(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pnr": paid.PNR, "status": string(paid.Status)})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	cancelled, err := h.service.CancelBooking(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pnr": cancelled.PNR, "status": string(cancelled.Status)})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		PNR:           b.PNR,
		FlightID:      b.FlightID,
		PassengerName: b.PassengerName,
		SeatNo:        b.SeatNo,
		Price:         b.Price,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}
