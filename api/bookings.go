package api

import (
	"net/http"

	"github.com/Domenick1991/cabinbooking/internal/domain"
	"github.com/Domenick1991/cabinbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.LedgerUseCase
}

type createBookingRequest struct {
	Seat           string `json:"seat" binding:"required"`
	PassportNumber string `json:"passport_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
}

type bookingResponse struct {
	Seat      string `json:"seat"`
	Reference string `json:"reference"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewBookingHandler(service booking.LedgerUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.DELETE("/:seat", h.free)
}

func (h *BookingHandler) list(c *gin.Context) {
	records := h.service.Bookings()
	out := make([]bookingResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.service.Book(c.Request.Context(), req.Seat, domain.Passenger{
		PassportNumber: req.PassportNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(*record))
}

func (h *BookingHandler) free(c *gin.Context) {
	if err := h.service.Free(c.Request.Context(), c.Param("seat")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toResponse(r domain.Record) bookingResponse {
	return bookingResponse{
		Seat:      r.Seat,
		Reference: r.Reference,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}
