package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
)

func (r *GormRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Customer{}).Where("email = ?", c.Email).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: email %s already registered", domain.ErrConflict, c.Email)
		}
		return tx.Create(c).Error
	})
}

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "customer", id)
	}
	return &c, nil
}

func (r *GormRepo) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, notFound(err, "customer", email)
	}
	return &c, nil
}

// ListCustomers matches search against name or email, newest members first.
func (r *GormRepo) ListCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	q := r.DB.WithContext(ctx).Model(&models.Customer{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	var items []models.Customer
	if err := q.Order("joined_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Customer{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) UpdateCustomerProfile(ctx context.Context, id uint, name, phone, address string) error {
	return r.updateCustomer(ctx, id, map[string]any{"name": name, "phone": phone, "address": address})
}

func (r *GormRepo) UpdateCustomerAddress(ctx context.Context, id uint, address string) error {
	return r.updateCustomer(ctx, id, map[string]any{"address": address})
}

func (r *GormRepo) UpdateCustomerPassword(ctx context.Context, id uint, passwordHash string) error {
	return r.updateCustomer(ctx, id, map[string]any{"password": passwordHash})
}

func (r *GormRepo) updateCustomer(ctx context.Context, id uint, cols map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: customer %d", domain.ErrNotFound, id)
	}
	return nil
}

// DeleteCustomer removes the customer's messages and orders and then the
// customer, all or nothing. Customers with Pending or Processing orders keep
// their account so reserved stock is never orphaned.
func (r *GormRepo) DeleteCustomer(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Customer
		if err := tx.First(&c, id).Error; err != nil {
			return notFound(err, "customer", id)
		}

		var active int64
		if err := tx.Model(&models.Order{}).
			Where("customer_id = ? AND status IN ?", id, []string{string(domain.StatusPending), string(domain.StatusProcessing)}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: customer %d has %d active orders", domain.ErrConflict, id, active)
		}

		if err := tx.Where("customer_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, id).Error
	})
}

func (r *GormRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: admin %s", domain.ErrNotFound, username)
		}
		return nil, err
	}
	return &a, nil
}
