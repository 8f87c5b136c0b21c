package schema

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/pkg/hash"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// EnsureDefaultAdmin creates the "admin" account when it does not exist yet.
// It reports whether a row was inserted.
func EnsureDefaultAdmin(ctx context.Context, db *gorm.DB, password string) (bool, error) {
	if password == "" {
		password = DefaultAdminPassword
	}

	var existing models.Admin
	err := db.WithContext(ctx).Where("username = ?", DefaultAdminUsername).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("lookup default admin: %w", err)
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return false, err
	}
	if err := db.WithContext(ctx).Create(&models.Admin{
		Username:     DefaultAdminUsername,
		PasswordHash: hashed,
	}).Error; err != nil {
		return false, fmt.Errorf("create default admin: %w", err)
	}
	return true, nil
}
