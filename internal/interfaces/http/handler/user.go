package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/movilshop/backend/internal/application/identity"
	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
	"github.com/movilshop/backend/internal/interfaces/http/middleware"
)

// UserHandler handles staff account management endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user management routes; all of them are admin-only
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.RequireRole(string(identity.RoleAdmin)))
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.POST("/:id/reset-password", h.ResetPassword)
		users.POST("/:id/deactivate", h.Deactivate)
		users.POST("/:id/activate", h.Activate)
	}
}

// userListQuery binds list query parameters for users
type userListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Role     string `form:"role"`
	Status   string `form:"status"`
}

// Create registers a new staff account
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List returns staff accounts with pagination
func (h *UserHandler) List(c *gin.Context) {
	var query userListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)
	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Filters:  map[string]interface{}{},
	}
	if query.Role != "" {
		filter.Filters["role"] = query.Role
	}
	if query.Status != "" {
		filter.Filters["status"] = query.Status
	}

	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, dto.NewMeta(filter.Page, filter.PageSize, total))
}

// Get returns a single staff account
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update changes a staff account's display name or role
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ResetPassword sets a new password for a staff account
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req identityapp.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "New password is required")
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Password reset"})
}

// Deactivate disables a staff account
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "User deactivated"})
}

// Activate re-enables a staff account
func (h *UserHandler) Activate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "User activated"})
}
