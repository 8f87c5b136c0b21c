package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
)

type OrderLine struct {
	ProductID uint
	Quantity  int
}

type OrderFilter struct {
	CustomerID uint
	Status     domain.OrderStatus
	Limit      int
	Offset     int
}

// PlaceOrders reserves stock and inserts one Pending order per line inside a
// single transaction. Any failing line rolls back every line before it.
func (r *GormRepo) PlaceOrders(ctx context.Context, customerID uint, lines []OrderLine) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(lines))
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			if line.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
			}
			if err := reserve(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}

			var product models.Product
			if err := tx.Select("id", "price").First(&product, line.ProductID).Error; err != nil {
				return notFound(err, "product", line.ProductID)
			}

			order := models.Order{
				CustomerID: customerID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
				Status:     domain.StatusPending,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			orders = append(orders, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, notFound(err, "order", id)
	}
	return &o, nil
}

const orderViewColumns = `o.*,
	c.name AS customer_name, c.email AS customer_email, c.phone AS customer_phone, c.address AS customer_address,
	p.name AS product_name, p.type AS product_type, p.region AS product_region, p.vintage AS product_vintage, p.image_url AS product_image`

func (r *GormRepo) orderViews(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Table("orders AS o").
		Select(orderViewColumns).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Joins("JOIN products p ON p.id = o.product_id")
}

// ListOrderViews returns orders joined with customer and product columns,
// newest first.
func (r *GormRepo) ListOrderViews(ctx context.Context, f OrderFilter) ([]models.OrderView, error) {
	q := f.apply(r.orderViews(ctx))
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	views := []models.OrderView{}
	if err := q.Order("o.order_date DESC, o.id DESC").Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// CountOrderViews counts the orders ListOrderViews would return without
// Limit and Offset.
func (r *GormRepo) CountOrderViews(ctx context.Context, f OrderFilter) (int64, error) {
	var n int64
	err := f.apply(r.DB.WithContext(ctx).Table("orders AS o")).Count(&n).Error
	return n, err
}

func (f OrderFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CustomerID != 0 {
		q = q.Where("o.customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("o.status = ?", string(f.Status))
	}
	return q
}

func (r *GormRepo) GetOrderView(ctx context.Context, id uint) (*models.OrderView, error) {
	var views []models.OrderView
	if err := r.orderViews(ctx).Where("o.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	return &views[0], nil
}

// ApplyTransition moves an order from t.From to t.To. The status update is
// conditional on t.From, so a concurrent change by the other portal makes it
// fail with ErrInvalidTransition instead of applying twice.
func (r *GormRepo) ApplyTransition(ctx context.Context, orderID uint, t domain.Transition, now time.Time) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := map[string]any{"status": string(t.To)}
		if t.StampShipment {
			cols["shipped_date"] = now
			cols["estimated_delivery_date"] = now.Add(domain.EstimatedDeliveryOffset)
		}

		res := tx.Model(&models.Order{}).Where("id = ? AND status = ?", orderID, string(t.From)).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current models.Order
			if err := tx.First(&current, orderID).Error; err != nil {
				return notFound(err, "order", orderID)
			}
			return fmt.Errorf("%w: order %d is %s, expected %s", domain.ErrInvalidTransition, orderID, current.Status, t.From)
		}

		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if t.Release {
			return release(tx, order.ProductID, order.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CountOrdersByStatus counts every order, or one customer's when customerID
// is non-zero. Every known status is present in the result.
func (r *GormRepo) CountOrdersByStatus(ctx context.Context, customerID uint) (map[domain.OrderStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	q := r.DB.WithContext(ctx).Model(&models.Order{}).Select("status, COUNT(*) AS count")
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	var rows []row
	if err := q.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[domain.OrderStatus]int64, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		out[s] = 0
	}
	for _, rw := range rows {
		out[domain.OrderStatus(rw.Status)] = rw.Count
	}
	return out, nil
}

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) HasActiveOrders(ctx context.Context, customerID uint) (bool, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).
		Where("customer_id = ? AND status IN ?", customerID, []string{string(domain.StatusPending), string(domain.StatusProcessing)}).
		Select("id").First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
