package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/discoshop/backend/internal/events"
	"github.com/discoshop/backend/internal/logging"
	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/repo"
	"github.com/discoshop/backend/internal/search"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Search   *search.Client
}

// ListProducts returns the catalog filtered by id set or category slug,
// ordered by name. Ids win when both are present; an unknown slug is an
// empty result, not an error.
func (s *CatalogService) ListProducts(ctx context.Context, ids []uint, categorySlug string) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, ids, categorySlug)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return product, err
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Cover       string
	CategoryIDs []uint
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	exists, err := s.Repo.ProductNameExists(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("product %q already exists: %w", in.Name, ErrConflict)
	}

	prod := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cover:       in.Cover,
	}
	if err := s.Repo.CreateProduct(ctx, prod, in.CategoryIDs); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, prod, "product_created")
	return prod, nil
}

type PatchProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Cover       *string
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, in PatchProductInput) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		prod.Name = *in.Name
	}
	if in.Description != nil {
		prod.Description = *in.Description
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		prod.Price = *in.Price
	}
	if in.Cover != nil {
		prod.Cover = *in.Cover
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, prod, "product_updated")
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Search.Delete(ctx, id); err != nil {
		l.Warn("search_delete_failed", "product_id", id, "error", err)
	}
	event := map[string]any{"type": "product_deleted", "product_id": id}
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(id), event); err != nil {
		l.Warn("event_publish_failed", "topic", events.TopicProductEvents, "error", err)
	}
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	return s.Search.Search(ctx, query, from, size)
}

// afterWrite mirrors a catalog change into the search index and the event
// stream. Both are best effort.
func (s *CatalogService) afterWrite(ctx context.Context, prod *models.Product, eventType string) {
	l := logging.FromContext(ctx)

	if err := s.Search.Index(ctx, prod); err != nil {
		l.Warn("search_index_failed", "product_id", prod.ID, "error", err)
	}

	event := map[string]any{
		"type":       eventType,
		"product_id": prod.ID,
		"name":       prod.Name,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(prod.ID), event); err != nil {
		l.Warn("event_publish_failed", "topic", events.TopicProductEvents, "error", err)
	}
}
