package handler

import (
	cartapp "github.com/delivery/backend/internal/application/cart"
	"github.com/delivery/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// clientID returns the client profile ID of the current principal.
// Cart operations belong to customers only
func (h *CartHandler) clientID(c *gin.Context) (uuid.UUID, bool) {
	principal := getPrincipal(c)
	if principal.Role != identity.RoleClient {
		h.Forbidden(c, "Cart operations require a client account")
		return uuid.Nil, false
	}
	return principal.ClientID, true
}

// List godoc
// @Summary      View cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.List(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Add godoc
// @Summary      Add a product to the cart
// @Description  Adding an already carted product merges quantities
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.AddToCartRequest true "Add to cart request"
// @Success      201 {object} dto.Response{data=cartapp.CartItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	var req cartapp.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.cartService.Add(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// UpdateQuantity godoc
// @Summary      Change a cart line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id path string true "Cart item ID"
// @Param        request body cartapp.UpdateCartItemRequest true "Quantity update request"
// @Success      200 {object} dto.Response{data=cartapp.CartItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	var req cartapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.cartService.UpdateQuantity(c.Request.Context(), clientID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Remove godoc
// @Summary      Remove a cart line
// @Tags         cart
// @Param        id path string true "Cart item ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), clientID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Success      204
// @Security     BearerAuth
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
