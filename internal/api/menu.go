package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/service"
	"github.com/pageza/menuqr/backend/internal/types"
)

type MenuHandler struct {
	menus service.IMenuService
	log   *logrus.Entry
}

func NewMenuHandler(menus service.IMenuService, log *logrus.Entry) *MenuHandler {
	return &MenuHandler{menus: menus, log: log}
}

// RegisterRoutes mounts owner menu and item routes. Every route requires auth.
func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	menus := router.Group("/menus")
	{
		menus.POST("", h.CreateMenu)
		menus.GET("/:id", h.GetMenu)
		menus.PATCH("/:id", h.UpdateMenu)
	}

	items := router.Group("/menu-items")
	{
		items.POST("", h.CreateItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *MenuHandler) CreateMenu(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req types.CreateMenuRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusCreated, func() (*models.MenuWithItems, error) {
		return h.menus.CreateMenu(c.Request.Context(), userID, req)
	})
}

func (h *MenuHandler) GetMenu(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*models.MenuWithItems, error) {
		return h.menus.GetMenu(c.Request.Context(), userID, id)
	})
}

func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req types.UpdateMenuRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*models.MenuWithItems, error) {
		return h.menus.UpdateMenu(c.Request.Context(), userID, id, req)
	})
}

func (h *MenuHandler) CreateItem(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req types.CreateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusCreated, func() (*models.MenuItem, error) {
		return h.menus.CreateItem(c.Request.Context(), userID, req)
	})
}

func (h *MenuHandler) UpdateItem(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req types.UpdateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*models.MenuItem, error) {
		return h.menus.UpdateItem(c.Request.Context(), userID, id, req)
	})
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.menus.DeleteItem(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
