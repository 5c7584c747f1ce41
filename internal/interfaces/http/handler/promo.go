package handler

import (
	promotionapp "github.com/delivery/backend/internal/application/promotion"
	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PromoHandler handles promo code management endpoints
type PromoHandler struct {
	BaseHandler
	promoService *promotionapp.PromoService
}

// NewPromoHandler creates a new PromoHandler
func NewPromoHandler(promoService *promotionapp.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

// List godoc
// @Summary      List promo codes
// @Tags         promo-codes
// @Produce      json
// @Param        search query string false "Search by code"
// @Param        active query bool false "Filter on the enabled flag"
// @Param        archived query bool false "true: validity window already closed, false: still open"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]promotionapp.PromoCodeResponse}
// @Security     BearerAuth
// @Router       /promo-codes [get]
func (h *PromoHandler) List(c *gin.Context) {
	var req struct {
		dto.ListRequest
		Active   *bool `form:"active"`
		Archived *bool `form:"archived"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	if req.Active != nil {
		filter.Filters["active"] = *req.Active
	}
	if req.Archived != nil {
		filter.Filters["archived"] = *req.Archived
	}

	codes, err := h.promoService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, codes)
}

// Get godoc
// @Summary      Get a promo code
// @Tags         promo-codes
// @Produce      json
// @Param        id path string true "Promo code ID"
// @Success      200 {object} dto.Response{data=promotionapp.PromoCodeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /promo-codes/{id} [get]
func (h *PromoHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid promo code ID format")
		return
	}

	code, err := h.promoService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}

// Create godoc
// @Summary      Create a promo code
// @Tags         promo-codes
// @Accept       json
// @Produce      json
// @Param        request body promotionapp.CreatePromoCodeRequest true "Promo code creation request"
// @Success      201 {object} dto.Response{data=promotionapp.PromoCodeResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /promo-codes [post]
func (h *PromoHandler) Create(c *gin.Context) {
	var req promotionapp.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	code, err := h.promoService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, code)
}

// Update godoc
// @Summary      Update a promo code
// @Description  Validity window, active flag and product restrictions can change; the code itself cannot
// @Tags         promo-codes
// @Accept       json
// @Produce      json
// @Param        id path string true "Promo code ID"
// @Param        request body promotionapp.UpdatePromoCodeRequest true "Promo code update request"
// @Success      200 {object} dto.Response{data=promotionapp.PromoCodeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /promo-codes/{id} [put]
func (h *PromoHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid promo code ID format")
		return
	}

	var req promotionapp.UpdatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	code, err := h.promoService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}

// Delete godoc
// @Summary      Delete a promo code
// @Tags         promo-codes
// @Param        id path string true "Promo code ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /promo-codes/{id} [delete]
func (h *PromoHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid promo code ID format")
		return
	}

	if err := h.promoService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
