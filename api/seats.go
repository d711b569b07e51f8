package api

import (
	"net/http"

	"github.com/Domenick1991/cabinbooking/internal/service/seatplan"
	"github.com/gin-gonic/gin"
)

type SeatHandler struct {
	service seatplan.PlanUseCase
}

func NewSeatHandler(service seatplan.PlanUseCase) *SeatHandler {
	return &SeatHandler{service: service}
}

func (h *SeatHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.plan)
	router.GET("/:seat", h.status)
}

func (h *SeatHandler) plan(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rows": h.service.Plan(c.Request.Context())})
}

func (h *SeatHandler) status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Param("seat"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
