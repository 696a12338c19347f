package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/middleware"
	"github.com/pageza/menuqr/backend/internal/types"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Menu API is running",
	})
}

// bindJSON decodes the body into dst and answers 400 when it cannot.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Message: "Invalid request body"})
		return false
	}
	return true
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Message: "Invalid " + name, Field: name})
		return 0, false
	}
	return uint(id), true
}

// ownerID returns the authenticated caller or answers 401.
func ownerID(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Message: "User not authenticated"})
		return 0, false
	}
	return id, true
}

// handle runs fn and writes either its result with status or the mapped error.
func handle[T any](c *gin.Context, log logrus.FieldLogger, status int, fn func() (T, error)) {
	result, err := fn()
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(status, result)
}
