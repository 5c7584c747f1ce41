package handler

import (
	orderingapp "github.com/delivery/backend/internal/application/ordering"
	"github.com/delivery/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the client-chosen duplicate-submission guard
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler handles the cart-to-order submission
type CheckoutHandler struct {
	BaseHandler
	checkoutService *orderingapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *orderingapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout godoc
// @Summary      Place an order from the cart
// @Description  Atomically validates stock, decrements it, snapshots prices and empties the cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Duplicate submission guard"
// @Param        request body orderingapp.CheckoutRequest true "Checkout request"
// @Success      201 {object} dto.Response{data=orderingapp.CheckoutResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	principal := getPrincipal(c)
	if principal.Role != identity.RoleClient {
		h.Forbidden(c, "Checkout requires a client account")
		return
	}

	var req orderingapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// The header wins over the body field when both are present
	if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
		req.IdempotencyKey = key
	}

	resp, err := h.checkoutService.Checkout(c.Request.Context(), principal.ClientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
