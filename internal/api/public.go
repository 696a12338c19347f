package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/service"
	"github.com/pageza/menuqr/backend/internal/types"
)

// PublicHandler serves customers scanning a table's QR code. No route
// requires auth.
type PublicHandler struct {
	restaurants service.IRestaurantService
	menus       service.IMenuService
	chat        service.IChatService
	log         *logrus.Entry
}

func NewPublicHandler(restaurants service.IRestaurantService, menus service.IMenuService, chat service.IChatService, log *logrus.Entry) *PublicHandler {
	return &PublicHandler{restaurants: restaurants, menus: menus, chat: chat, log: log}
}

func (h *PublicHandler) RegisterRoutes(router *gin.RouterGroup, chatLimit gin.HandlerFunc) {
	router.GET("/discover", h.ListRestaurants)
	router.GET("/public/:slug", h.Menu)
	router.GET("/public/:slug/restaurant", h.Restaurant)
	router.POST("/restaurants/:id/chat", chatLimit, h.Chat)
}

func (h *PublicHandler) ListRestaurants(c *gin.Context) {
	handle(c, h.log, http.StatusOK, func() ([]types.PublicRestaurant, error) {
		return h.restaurants.ListAll(c.Request.Context())
	})
}

func (h *PublicHandler) Restaurant(c *gin.Context) {
	handle(c, h.log, http.StatusOK, func() (*types.PublicRestaurant, error) {
		return h.restaurants.GetBySlug(c.Request.Context(), c.Param("slug"))
	})
}

// Menu returns the restaurant and the menu selected by ?menu=<id>, or its
// first active menu.
func (h *PublicHandler) Menu(c *gin.Context) {
	var menuID uint
	if raw := c.Query("menu"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Message: "Invalid menu", Field: "menu"})
			return
		}
		menuID = uint(id)
	}
	handle(c, h.log, http.StatusOK, func() (*types.PublicMenuView, error) {
		return h.menus.PublicMenu(c.Request.Context(), c.Param("slug"), menuID)
	})
}

func (h *PublicHandler) Chat(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req types.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*types.ChatResponse, error) {
		return h.chat.Reply(c.Request.Context(), id, req)
	})
}
