package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/middleware"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/service"
	"github.com/pageza/menuqr/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
	log         *logrus.Entry
}

func NewAuthHandler(authService service.IAuthService, log *logrus.Entry) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/logout", requireAuth, h.Logout)
	router.GET("/user", requireAuth, h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusCreated, func() (*types.AuthResponse, error) {
		return h.authService.Register(c.Request.Context(), req)
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*types.AuthResponse, error) {
		return h.authService.Login(c.Request.Context(), req)
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.Claims(c)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*models.User, error) {
		return h.authService.Me(c.Request.Context(), userID)
	})
}
