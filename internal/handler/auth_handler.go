package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/service"
	"github.com/hireflow/hireflow-backend/pkg/ginutil"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Login(&req)
	if errors.Is(err, common.ErrInvalidCredentials) {
		common.ErrorResponse(c, 401, "Invalid username or password", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to sign in", err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// ListUsers handles GET /api/v1/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	data, err := h.service.ListUsers()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch users", err)
		return
	}
	common.SuccessResponse(c, data, nil)
}

// CreateUser handles POST /api/v1/users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req domain.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	if req.Password == "" {
		common.ErrorResponse(c, 400, "Password is required", nil)
		return
	}

	data, err := h.service.CreateUser(actorFrom(c), &req, domain.RoleUser)
	if errors.Is(err, common.ErrUserAlreadyExists) {
		common.ErrorResponse(c, 409, "Username already taken", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create user", err)
		return
	}

	c.JSON(201, common.APIResponse{Data: data})
}

// UpdateUser handles PUT /api/v1/users/:id
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	var req domain.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.UpdateUser(actorFrom(c), id, &req)
	if errors.Is(err, common.ErrUserNotFound) {
		common.ErrorResponse(c, 404, "User not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update user", err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// ToggleAdmin handles POST /api/v1/users/:id/toggle-admin
func (h *AuthHandler) ToggleAdmin(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	data, err := h.service.ToggleAdmin(actorFrom(c), id)
	if errors.Is(err, common.ErrUserNotFound) {
		common.ErrorResponse(c, 404, "User not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update role", err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// DeleteUser handles DELETE /api/v1/users/:id
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, err := ginutil.ParamUint(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	err = h.service.DeleteUser(actorFrom(c), id)
	if errors.Is(err, common.ErrUserNotFound) {
		common.ErrorResponse(c, 404, "User not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete user", err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
