package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinkauto/internal/modules/auth"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc}
}

type requestOTPReq struct {
	Phone string `json:"phone"`
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req requestOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.auth.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

type verifyOTPReq struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	token, rider, err := h.auth.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "rider": rider})
}
