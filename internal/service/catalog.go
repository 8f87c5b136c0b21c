package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/internal/repo"
	"github.com/Skotchmaster/cellar_society/internal/search"
	"github.com/Skotchmaster/cellar_society/pkg/events"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

type ProductInput struct {
	Name        string
	Type        string
	Region      string
	Vintage     int
	Price       decimal.Decimal
	Alcohol     float64
	Stock       int
	Description string
	ImageURL    string
}

func (in ProductInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case strings.TrimSpace(in.Type) == "":
		return fmt.Errorf("%w: type is required", domain.ErrValidation)
	case strings.TrimSpace(in.Region) == "":
		return fmt.Errorf("%w: region is required", domain.ErrValidation)
	case in.Vintage <= 0:
		return fmt.Errorf("%w: vintage must be a year", domain.ErrValidation)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must be >= 0", domain.ErrValidation)
	case in.Alcohol < 0 || in.Alcohol > 100:
		return fmt.Errorf("%w: alcohol must be between 0 and 100", domain.ErrValidation)
	case in.Stock < 0:
		return fmt.Errorf("%w: stock must be >= 0", domain.ErrValidation)
	}
	return nil
}

func (in ProductInput) apply(p *models.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Type = strings.TrimSpace(in.Type)
	p.Region = strings.TrimSpace(in.Region)
	p.Vintage = in.Vintage
	p.Price = in.Price.Round(2)
	p.Alcohol = in.Alcohol
	p.Stock = in.Stock
	p.Description = strings.TrimSpace(in.Description)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
}

type ShopQuery struct {
	Type   string
	Search string
	Sort   string
}

type CatalogService struct {
	Deps
	// Index mirrors admin writes; nil disables it.
	Index search.Indexer
	// Search answers storefront queries; nil falls back to SQL LIKE.
	Search search.Searcher
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) Types(ctx context.Context) ([]string, error) {
	return s.Repo.ProductTypes(ctx)
}

// Shop lists in-stock products for the storefront.
func (s *CatalogService) Shop(ctx context.Context, q ShopQuery) ([]models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.shop")

	filter := repo.ShopFilter{
		Type:   strings.TrimSpace(q.Type),
		Search: strings.TrimSpace(q.Search),
		Sort:   repo.ShopSort(q.Sort),
	}
	if filter.Search != "" && s.Search != nil {
		ids, err := s.Search.SearchProductIDs(ctx, filter.Search, 200)
		if err == nil {
			filter.IDs = ids
		} else {
			l.Warn("search_index_unavailable", "reason", "falling back to sql", "error", err)
		}
	}
	return s.Repo.ListInStock(ctx, filter)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var p models.Product
	in.apply(&p)
	if err := s.Repo.CreateProduct(ctx, &p); err != nil {
		return nil, err
	}

	s.sync(ctx, events.ProductCreated, &p)
	return &p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := models.Product{ID: id}
	in.apply(&p)
	if err := s.Repo.UpdateProduct(ctx, &p); err != nil {
		return nil, err
	}

	s.sync(ctx, events.ProductUpdated, &p)
	return &p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_delete_failed", "product_id", id, "error", err)
		}
	}
	s.publish(ctx, events.TopicProducts, strconv.FormatUint(uint64(id), 10), events.ProductEvent{
		Type:      events.ProductDeleted,
		ProductID: id,
		Timestamp: s.now(),
	})
	return nil
}

func (s *CatalogService) sync(ctx context.Context, eventType string, p *models.Product) {
	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, *p); err != nil {
			logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
		}
	}
	s.publish(ctx, events.TopicProducts, strconv.FormatUint(uint64(p.ID), 10), events.ProductEvent{
		Type:      eventType,
		ProductID: p.ID,
		Name:      p.Name,
		Timestamp: s.now(),
	})
}

// ProductsByID loads several products at once; unknown ids are left out.
func (s *CatalogService) ProductsByID(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	return s.Repo.GetProducts(ctx, ids)
}
