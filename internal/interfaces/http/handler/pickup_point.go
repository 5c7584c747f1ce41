package handler

import (
	orderingapp "github.com/delivery/backend/internal/application/ordering"
	"github.com/gin-gonic/gin"
)

// PickupPointHandler handles pickup point API endpoints
type PickupPointHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewPickupPointHandler creates a new PickupPointHandler
func NewPickupPointHandler(orderService *orderingapp.OrderService) *PickupPointHandler {
	return &PickupPointHandler{orderService: orderService}
}

// List godoc
// @Summary      List active pickup points
// @Tags         pickup-points
// @Produce      json
// @Success      200 {object} dto.Response{data=[]orderingapp.PickupPointResponse}
// @Router       /pickup-points [get]
func (h *PickupPointHandler) List(c *gin.Context) {
	points, err := h.orderService.ListPickupPoints(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, points)
}

// Create godoc
// @Summary      Add a pickup point
// @Tags         pickup-points
// @Accept       json
// @Produce      json
// @Param        request body orderingapp.CreatePickupPointRequest true "Pickup point creation request"
// @Success      201 {object} dto.Response{data=orderingapp.PickupPointResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pickup-points [post]
func (h *PickupPointHandler) Create(c *gin.Context) {
	var req orderingapp.CreatePickupPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	point, err := h.orderService.CreatePickupPoint(c.Request.Context(), getPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, point)
}
