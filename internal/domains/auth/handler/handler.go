package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"novalib-backend/internal/domains/auth"
	"novalib-backend/internal/domains/auth/service"
)

// AuthHandler serves the legacy login endpoints. Response bodies keep
// the exact shapes the mobile clients already parse, so these handlers
// bypass the envelope used elsewhere.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterRoutes mounts the login endpoints at their historical paths.
func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/send-otp/", h.SendOTP)
	r.POST("/api/verify-otp/", h.VerifyOTP)
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req auth.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := h.svc.IssueOTP(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"name":  res.Name,
			"phone": res.Phone,
		},
		"email": res.Email,
	})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req auth.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := h.svc.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP verified successfully",
		"token":   res.Token,
	})
}

func (h *AuthHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, auth.ErrNoLoginRecord):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No login record found for this user"})
	case errors.Is(err, auth.ErrInvalidOrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
	case errors.Is(err, auth.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	case errors.Is(err, auth.ErrTooManyRequests):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many OTP requests"})
	case errors.Is(err, auth.ErrEmailDelivery):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP email"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
