package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimlens/internal/service"
)

// AuthHandler handles admin login.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /api/v1/admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required")
		return
	}

	token, expiresAt, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"token": token, "expires_at": expiresAt})
}
