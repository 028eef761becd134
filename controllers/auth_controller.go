package controllers

import (
	"cafebot/pkg/resp"
	"cafebot/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

type openSessionReq struct {
	GatewaySecret string  `json:"gatewaySecret" binding:"required"`
	TelegramID    int64   `json:"telegramId" binding:"required"`
	Username      *string `json:"username"`
	FirstName     string  `json:"firstName"`
}

// POST /auth/session
func (h *AuthController) OpenSession(c *gin.Context) {
	var req openSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.Svc.OpenSession(req.GatewaySecret, req.TelegramID, req.Username, req.FirstName)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}

	resp.OK(c, gin.H{
		"token": token,
		"user":  user,
		"staff": h.Svc.IsStaff(req.TelegramID),
	})
}
