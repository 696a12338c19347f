package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/ingest"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/types"
	"github.com/pageza/menuqr/backend/internal/validation"
)

const (
	SourceGenerated = "generated"
	SourceUpload    = "upload"
)

// Upload is a menu file received from an owner.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// IngestService runs the ingestion pipeline for an owner's restaurant and
// manages the resulting drafts until they are committed or discarded.
type IngestService struct {
	repo     repository.Repository
	pipeline *ingest.Pipeline
	drafts   *ingest.DraftStore
	archive  Archiver
	log      *logrus.Entry
}

// NewIngestService wires the pipeline. archive may be nil.
func NewIngestService(repo repository.Repository, pipeline *ingest.Pipeline, drafts *ingest.DraftStore, archive Archiver, log *logrus.Entry) *IngestService {
	return &IngestService{
		repo:     repo,
		pipeline: pipeline,
		drafts:   drafts,
		archive:  archive,
		log:      log,
	}
}

func (s *IngestService) Generate(ctx context.Context, ownerID uint, req types.GenerateMenuRequest) (*types.MenuDraft, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	if _, err := ownedRestaurant(ctx, s.repo, ownerID, req.RestaurantID); err != nil {
		return nil, err
	}

	parsed, err := s.pipeline.Generate(ctx, req.Cuisine, req.Tone)
	if err != nil {
		return nil, err
	}
	return s.saveDraft(ctx, ownerID, req.RestaurantID, SourceGenerated, parsed, "")
}

func (s *IngestService) Upload(ctx context.Context, ownerID, restaurantID uint, file Upload) (*types.MenuDraft, error) {
	if restaurantID == 0 {
		return nil, apperr.Invalid("restaurantId", "is required")
	}
	if len(file.Data) == 0 {
		return nil, apperr.Invalid("file", "is required")
	}
	if len(file.Data) > ingest.MaxUploadBytes {
		return nil, apperr.Invalid("file", "must be at most 10 MB")
	}
	if _, err := ownedRestaurant(ctx, s.repo, ownerID, restaurantID); err != nil {
		return nil, err
	}

	parsed, err := s.pipeline.ExtractFile(ctx, file.Data, file.Filename, file.ContentType)
	if err != nil {
		return nil, err
	}

	var sourceKey string
	if s.archive != nil {
		key, err := s.archive.Archive(ctx, restaurantID, file.Filename, file.ContentType, file.Data)
		if err != nil {
			s.log.WithError(err).WithField("restaurant_id", restaurantID).Warn("failed to archive uploaded menu")
		} else {
			sourceKey = key
		}
	}
	return s.saveDraft(ctx, ownerID, restaurantID, SourceUpload, parsed, sourceKey)
}

// GetDraft returns the caller's draft. Drafts of other owners look missing.
func (s *IngestService) GetDraft(ctx context.Context, ownerID uint, id string) (*types.MenuDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.OwnerID != ownerID {
		return nil, errDraftNotFound
	}
	return draft, nil
}

func (s *IngestService) DiscardDraft(ctx context.Context, ownerID uint, id string) error {
	if _, err := s.GetDraft(ctx, ownerID, id); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, id)
}

// CommitDraft persists a draft as a new menu. The request may replace the
// draft's name, description or items; replaced items are validated again.
// The draft is claimed before writing, so concurrent commits create one menu;
// it is put back if the transaction fails. The menu and its items are written
// in one transaction, items in order.
func (s *IngestService) CommitDraft(ctx context.Context, ownerID uint, id string, req types.CommitDraftRequest) (*models.MenuWithItems, error) {
	draft, err := s.GetDraft(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if _, err := ownedRestaurant(ctx, s.repo, ownerID, draft.RestaurantID); err != nil {
		return nil, err
	}

	menuReq := types.CreateMenuRequest{
		RestaurantID: draft.RestaurantID,
		Name:         draft.Name,
		Description:  models.StringPtr(draft.Description),
	}
	if req.Name != nil {
		menuReq.Name = *req.Name
	}
	if req.Description != nil {
		menuReq.Description = req.Description
	}
	menu, err := validation.ValidateMenuCreate(menuReq)
	if err != nil {
		return nil, err
	}

	drafts := draft.Items
	if req.Items != nil {
		drafts = req.Items
	}
	if len(drafts) == 0 {
		return nil, apperr.Invalid("items", "at least one item is required")
	}
	items := make([]models.MenuItem, 0, len(drafts))
	for i, d := range drafts {
		item, err := validation.ValidateItemDraft(d)
		if err != nil {
			return nil, indexed(i, err)
		}
		items = append(items, *item)
	}

	// only one concurrent commit gets the draft
	claimed, ttl, err := s.drafts.Claim(ctx, id)
	if err != nil {
		return nil, err
	}
	if claimed == nil {
		return nil, errDraftNotFound
	}
	logger := s.log.WithFields(logrus.Fields{
		"draft_id":      id,
		"restaurant_id": menu.RestaurantID,
	})

	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.CreateMenu(ctx, menu); err != nil {
			return err
		}
		for i := range items {
			items[i].MenuID = menu.ID
			if err := tx.CreateMenuItem(ctx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if rerr := s.drafts.Restore(ctx, claimed, ttl); rerr != nil {
			logger.WithError(rerr).Error("failed to restore draft after failed commit")
		}
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"menu_id": menu.ID,
		"items":   len(items),
	}).Info("committed menu draft")

	return &models.MenuWithItems{Menu: *menu, Items: items}, nil
}

func (s *IngestService) saveDraft(ctx context.Context, ownerID, restaurantID uint, source string, parsed *ingest.ParsedMenu, sourceKey string) (*types.MenuDraft, error) {
	draft := &types.MenuDraft{
		RestaurantID: restaurantID,
		OwnerID:      ownerID,
		Source:       source,
		Name:         parsed.Name,
		Description:  parsed.Description,
		Items:        parsed.Items,
		Dropped:      parsed.Dropped,
		SourceKey:    sourceKey,
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"draft_id":      draft.ID,
		"restaurant_id": restaurantID,
		"source":        source,
	}).Info("stored menu draft")
	return draft, nil
}

// indexed prefixes a validation field with the position of the failing item.
func indexed(i int, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind == apperr.KindValidation {
		field := fmt.Sprintf("items[%d]", i)
		if appErr.Field != "" {
			field += "." + appErr.Field
		}
		return apperr.Invalid(field, appErr.Message)
	}
	return err
}
