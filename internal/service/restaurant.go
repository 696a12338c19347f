package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/policy"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/types"
	"github.com/pageza/menuqr/backend/internal/validation"
)

var errSlugTaken = apperr.New(apperr.KindConflict, "slug is already in use")

type RestaurantService struct {
	repo          repository.Repository
	publicBaseURL string
	log           *logrus.Entry
}

func NewRestaurantService(repo repository.Repository, publicBaseURL string, log *logrus.Entry) *RestaurantService {
	return &RestaurantService{
		repo:          repo,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
	}
}

// Create registers a restaurant for ownerID. An empty slug is derived from the name.
func (s *RestaurantService) Create(ctx context.Context, ownerID uint, req types.CreateRestaurantRequest) (*models.Restaurant, error) {
	if strings.TrimSpace(req.Slug) == "" {
		req.Slug = validation.Slugify(req.Name)
	}

	restaurant, err := validation.ValidateRestaurantCreate(req, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureSlugFree(ctx, restaurant.Slug, 0); err != nil {
		return nil, err
	}
	if err := s.repo.CreateRestaurant(ctx, restaurant); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"restaurant_id": restaurant.ID,
		"owner_id":      ownerID,
		"slug":          restaurant.Slug,
	}).Info("created restaurant")
	return restaurant, nil
}

func (s *RestaurantService) ListMine(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	return s.repo.ListRestaurantsByOwner(ctx, ownerID)
}

func (s *RestaurantService) Get(ctx context.Context, ownerID, id uint) (*models.Restaurant, error) {
	return ownedRestaurant(ctx, s.repo, ownerID, id)
}

func (s *RestaurantService) Update(ctx context.Context, ownerID, id uint, req types.UpdateRestaurantRequest) (*models.Restaurant, error) {
	restaurant, err := ownedRestaurant(ctx, s.repo, ownerID, id)
	if err != nil {
		return nil, err
	}

	patch, err := validation.ValidateRestaurantUpdate(req)
	if err != nil {
		return nil, err
	}
	if slug, ok := patch["slug"].(string); ok && slug != restaurant.Slug {
		if err := s.ensureSlugFree(ctx, slug, id); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateRestaurant(ctx, id, patch)
}

// GetBySlug is the public lookup of a restaurant.
func (s *RestaurantService) GetBySlug(ctx context.Context, slug string) (*types.PublicRestaurant, error) {
	restaurant, err := s.repo.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, errRestaurantNotFound
	}
	public := policy.PublicRestaurant(*restaurant)
	return &public, nil
}

func (s *RestaurantService) ListAll(ctx context.Context) ([]types.PublicRestaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.PublicRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, policy.PublicRestaurant(r))
	}
	return out, nil
}

// TableLinks returns the public menu URL for each table, numbered from 1.
func (s *RestaurantService) TableLinks(ctx context.Context, ownerID, id uint) ([]types.TableLink, error) {
	restaurant, err := ownedRestaurant(ctx, s.repo, ownerID, id)
	if err != nil {
		return nil, err
	}

	tables := restaurant.TableCount
	if tables < 1 {
		tables = models.DefaultTableCount
	}
	links := make([]types.TableLink, 0, tables)
	for n := 1; n <= tables; n++ {
		links = append(links, types.TableLink{
			Table: n,
			URL:   fmt.Sprintf("%s/menu/%s?table=%d", s.publicBaseURL, url.PathEscape(restaurant.Slug), n),
		})
	}
	return links, nil
}

// ensureSlugFree rejects a slug held by any restaurant other than self.
func (s *RestaurantService) ensureSlugFree(ctx context.Context, slug string, self uint) error {
	existing, err := s.repo.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return errSlugTaken
	}
	return nil
}
