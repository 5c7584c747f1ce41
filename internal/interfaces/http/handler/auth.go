package handler

import (
	identityapp "github.com/delivery/backend/internal/application/identity"
	"github.com/delivery/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication API endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LogoutResponse represents a logout confirmation
type LogoutResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary      Register a client account
// @Description  Self-service registration for storefront customers
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RegisterClientRequest true "Registration request"
// @Success      201 {object} dto.Response{data=identityapp.LoginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.RegisterClient(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// RegisterEmployee godoc
// @Summary      Create a staff account
// @Description  Superuser-only creation of employee accounts
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RegisterEmployeeRequest true "Employee creation request"
// @Success      201 {object} dto.Response{data=identityapp.EmployeeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/employees [post]
func (h *AuthHandler) RegisterEmployee(c *gin.Context) {
	principal := getPrincipal(c)
	if !principal.IsSuperuser() {
		h.Forbidden(c, "Only superusers can create staff accounts")
		return
	}

	var req identityapp.RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.RegisterEmployee(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// UpdateProfile godoc
// @Summary      Update the client profile
// @Description  Clients edit their own phone, address, or birth date
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UpdateProfileRequest true "Profile changes"
// @Success      200 {object} dto.Response{data=identityapp.ClientProfileResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.UpdateProfile(c.Request.Context(), getPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListEmployees godoc
// @Summary      List staff accounts
// @Description  Staff directory with position search and pagination
// @Tags         auth
// @Produce      json
// @Param        search query string false "Search by position"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]identityapp.EmployeeResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/employees [get]
func (h *AuthHandler) ListEmployees(c *gin.Context) {
	principal := getPrincipal(c)
	if !principal.IsSuperuser() && !principal.IsEmployee() {
		h.Forbidden(c, "Staff access required")
		return
	}

	var req identityapp.ListEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employees, err := h.authService.ListEmployees(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employees)
}

// Login godoc
// @Summary      Authenticate
// @Description  Verify credentials and issue a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Login request"
// @Success      200 {object} dto.Response{data=identityapp.LoginResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RefreshRequest true "Refresh request"
// @Success      200 {object} dto.Response{data=auth.TokenPair}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	h.Success(c, tokens)
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the current access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=LogoutResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.ID, claims.GetExpiresAtTime()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary      Current principal
// @Description  Return the resolved identity of the current request
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=MeResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal := getPrincipal(c)
	if !principal.HasProfile() {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp := MeResponse{
		UserID: principal.UserID.String(),
		Email:  principal.Email,
		Role:   string(principal.Role),
	}
	if principal.IsClient() {
		resp.ClientID = principal.ClientID.String()
	}
	if principal.IsEmployee() {
		resp.EmployeeID = principal.EmployeeID.String()
	}

	h.Success(c, resp)
}

// MeResponse represents the resolved identity of the current request
type MeResponse struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ClientID   string `json:"client_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}
