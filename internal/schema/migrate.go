package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/models"
)

type step struct {
	version int
	name    string
	apply   func(tx *gorm.DB) error
}

var steps = []step{
	{version: 1, name: "base_tables", apply: createBaseTables},
	{version: 2, name: "order_shipment_dates", apply: addShipmentDates},
	{version: 3, name: "messages", apply: createMessages},
}

// LatestVersion is the highest step Migrate knows about.
func LatestVersion() int {
	return steps[len(steps)-1].version
}

// Migrate brings the database up to LatestVersion. Steps already recorded in
// schema_migrations are skipped; every step also checks the live schema before
// changing it, so a database created before version tracking is adopted as is.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if !db.Migrator().HasTable(&models.SchemaMigration{}) {
		if err := db.Migrator().CreateTable(&models.SchemaMigration{}); err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}
	}

	var versions []int
	if err := db.Model(&models.SchemaMigration{}).Pluck("version", &versions).Error; err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	for _, s := range steps {
		if applied[s.version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := s.apply(tx); err != nil {
				return err
			}
			return tx.Create(&models.SchemaMigration{
				Version:   s.version,
				Name:      s.name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", s.version, s.name, err)
		}
	}
	return nil
}

// AppliedVersions lists recorded steps in ascending order.
func AppliedVersions(ctx context.Context, db *gorm.DB) ([]int, error) {
	var versions []int
	err := db.WithContext(ctx).Model(&models.SchemaMigration{}).Order("version ASC").Pluck("version", &versions).Error
	return versions, err
}

// baseOrder is the orders table as it looked before shipment tracking.
type baseOrder struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	CustomerID uint            `gorm:"not null;index"`
	ProductID  uint            `gorm:"not null;index"`
	Quantity   int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:Pending;index"`
	OrderDate  time.Time       `gorm:"autoCreateTime"`
}

func (baseOrder) TableName() string { return "orders" }

func createBaseTables(tx *gorm.DB) error {
	for _, table := range []any{&models.Admin{}, &models.Product{}, &models.Customer{}, &baseOrder{}} {
		if tx.Migrator().HasTable(table) {
			continue
		}
		if err := tx.Migrator().CreateTable(table); err != nil {
			return err
		}
	}
	return nil
}

func addShipmentDates(tx *gorm.DB) error {
	for _, field := range []string{"ShippedDate", "EstimatedDeliveryDate"} {
		if tx.Migrator().HasColumn(&models.Order{}, field) {
			continue
		}
		if err := tx.Migrator().AddColumn(&models.Order{}, field); err != nil {
			return err
		}
	}
	return nil
}

const messagesIndex = "idx_messages_customer"

func createMessages(tx *gorm.DB) error {
	if !tx.Migrator().HasTable(&models.Message{}) {
		if err := tx.Migrator().CreateTable(&models.Message{}); err != nil {
			return err
		}
	}
	if !tx.Migrator().HasIndex(&models.Message{}, messagesIndex) {
		return tx.Migrator().CreateIndex(&models.Message{}, messagesIndex)
	}
	return nil
}
