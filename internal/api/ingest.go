package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/ingest"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/service"
	"github.com/pageza/menuqr/backend/internal/types"
)

// multipartOverhead leaves room for form fields and part headers around the file.
const multipartOverhead = 1 << 20

var errFileTooLarge = apperr.Invalid("file", "must be at most 10 MB")

type IngestHandler struct {
	ingest service.IIngestService
	log    *logrus.Entry
}

func NewIngestHandler(ingestService service.IIngestService, log *logrus.Entry) *IngestHandler {
	return &IngestHandler{ingest: ingestService, log: log}
}

// RegisterRoutes mounts ingestion and draft routes. Every route requires
// auth; limit guards the two routes that call the AI provider.
func (h *IngestHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	router.POST("/menus/generate", limit, h.Generate)
	router.POST("/menus/upload", limit, h.Upload)

	drafts := router.Group("/drafts")
	{
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DiscardDraft)
		drafts.POST("/:id/commit", h.CommitDraft)
	}
}

func (h *IngestHandler) Generate(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req types.GenerateMenuRequest
	if !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusCreated, func() (*types.MenuDraft, error) {
		return h.ingest.Generate(c.Request.Context(), userID, req)
	})
}

// Upload accepts multipart form data with a "file" part and a
// "restaurantId" field.
func (h *IngestHandler) Upload(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ingest.MaxUploadBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, h.log, errFileTooLarge)
			return
		}
		respondError(c, h.log, apperr.Invalid("file", "is required"))
		return
	}
	if header.Size > ingest.MaxUploadBytes {
		respondError(c, h.log, errFileTooLarge)
		return
	}

	restaurantID, err := strconv.ParseUint(c.PostForm("restaurantId"), 10, 32)
	if err != nil || restaurantID == 0 {
		respondError(c, h.log, apperr.Invalid("restaurantId", "is required"))
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, h.log, apperr.Wrap(apperr.KindValidation, "could not read the uploaded file", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, ingest.MaxUploadBytes+1))
	if err != nil {
		respondError(c, h.log, apperr.Wrap(apperr.KindValidation, "could not read the uploaded file", err))
		return
	}

	handle(c, h.log, http.StatusCreated, func() (*types.MenuDraft, error) {
		return h.ingest.Upload(c.Request.Context(), userID, uint(restaurantID), service.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	})
}

func (h *IngestHandler) GetDraft(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	handle(c, h.log, http.StatusOK, func() (*types.MenuDraft, error) {
		return h.ingest.GetDraft(c.Request.Context(), userID, c.Param("id"))
	})
}

func (h *IngestHandler) DiscardDraft(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	if err := h.ingest.DiscardDraft(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CommitDraft accepts an empty body to commit the draft unchanged.
func (h *IngestHandler) CommitDraft(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req types.CommitDraftRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	handle(c, h.log, http.StatusCreated, func() (*models.MenuWithItems, error) {
		return h.ingest.CommitDraft(c.Request.Context(), userID, c.Param("id"), req)
	})
}
