package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/domain"
)

// GormRepo is the single data access layer both portals share.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func notFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %v", domain.ErrNotFound, what, id)
	}
	return err
}
