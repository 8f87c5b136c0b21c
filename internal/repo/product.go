package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
)

type ShopSort string

const (
	SortNewest    ShopSort = "newest"
	SortPriceLow  ShopSort = "price_low"
	SortPriceHigh ShopSort = "price_high"
	SortName      ShopSort = "name"
)

func (s ShopSort) orderBy() string {
	switch s {
	case SortPriceLow:
		return "price ASC, id ASC"
	case SortPriceHigh:
		return "price DESC, id DESC"
	case SortName:
		return "name ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

type ShopFilter struct {
	Type   string
	Search string
	Sort   ShopSort
	// IDs restricts the result to these products when non-nil, e.g. hits
	// returned by the search index.
	IDs []uint
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListInStock returns products a customer can order right now.
func (r *GormRepo) ListInStock(ctx context.Context, f ShopFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Where("stock > 0")
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.IDs != nil {
		if len(f.IDs) == 0 {
			return []models.Product{}, nil
		}
		q = q.Where("id IN ?", f.IDs)
	} else if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("name LIKE ? OR region LIKE ?", like, like)
	}

	var items []models.Product
	if err := q.Order(f.Sort.orderBy()).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ProductTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Distinct("type").Order("type ASC").Pluck("type", &types).Error
	return types, err
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err, "product", id)
	}
	return &product, nil
}

// GetProducts loads the given ids; missing ones are absent from the map.
func (r *GormRepo) GetProducts(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	out := make(map[uint]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// UpdateProduct replaces every editable column of an existing product.
func (r *GormRepo) UpdateProduct(ctx context.Context, p *models.Product) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).
		Select("name", "type", "region", "vintage", "price", "alcohol", "stock", "description", "image_url").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetProduct(ctx, p.ID); err != nil {
			return err
		}
	}
	return r.DB.WithContext(ctx).First(p, p.ID).Error
}

// DeleteProduct refuses to remove a product that any order still points at.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.Order{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: product %d is referenced by %d orders", domain.ErrConflict, id, refs)
		}

		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
		}
		return nil
	})
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

// reserve takes quantity units out of stock. The conditional update is the
// only place stock decreases, which keeps it non-negative.
func reserve(tx *gorm.DB, productID uint, quantity int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var exists int64
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
	}
	return fmt.Errorf("%w: product %d has fewer than %d bottles", domain.ErrInsufficientStock, productID, quantity)
}

func release(tx *gorm.DB, productID uint, quantity int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
	}
	return nil
}
