package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/service"
	"github.com/pageza/menuqr/backend/internal/types"
)

type RestaurantHandler struct {
	restaurants service.IRestaurantService
	menus       service.IMenuService
	log         *logrus.Entry
}

func NewRestaurantHandler(restaurants service.IRestaurantService, menus service.IMenuService, log *logrus.Entry) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, menus: menus, log: log}
}

// RegisterRoutes mounts the owner restaurant routes. Every route requires auth.
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	restaurants := router.Group("/restaurants")
	{
		restaurants.POST("", h.Create)
		restaurants.GET("", h.ListMine)
		restaurants.GET("/:id", h.Get)
		restaurants.PATCH("/:id", h.Update)
		restaurants.GET("/:id/menus", h.ListMenus)
		restaurants.GET("/:id/tables", h.TableLinks)
	}
}

func (h *RestaurantHandler) Create(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req types.CreateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusCreated, func() (*models.Restaurant, error) {
		return h.restaurants.Create(c.Request.Context(), userID, req)
	})
}

func (h *RestaurantHandler) ListMine(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	handle(c, h.log, http.StatusOK, func() ([]models.Restaurant, error) {
		return h.restaurants.ListMine(c.Request.Context(), userID)
	})
}

func (h *RestaurantHandler) Get(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*models.Restaurant, error) {
		return h.restaurants.Get(c.Request.Context(), userID, id)
	})
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req types.UpdateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*models.Restaurant, error) {
		return h.restaurants.Update(c.Request.Context(), userID, id, req)
	})
}

func (h *RestaurantHandler) ListMenus(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	handle(c, h.log, http.StatusOK, func() ([]models.MenuWithItems, error) {
		return h.menus.ListMenus(c.Request.Context(), userID, id)
	})
}

func (h *RestaurantHandler) TableLinks(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	handle(c, h.log, http.StatusOK, func() ([]types.TableLink, error) {
		return h.restaurants.TableLinks(c.Request.Context(), userID, id)
	})
}
