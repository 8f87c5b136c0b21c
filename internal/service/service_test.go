package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/internal/repo"
	"github.com/Skotchmaster/cellar_society/internal/testdb"
	"github.com/Skotchmaster/cellar_society/pkg/events"
	"github.com/Skotchmaster/cellar_society/pkg/metrics"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

type fixture struct {
	deps     Deps
	recorder *events.Recorder
	accounts *AccountService
	catalog  *CatalogService
	orders   *OrderService
	messages *MessageService
	stats    *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &events.Recorder{}
	deps := Deps{
		Repo:    repo.New(testdb.Open(t)),
		Events:  rec,
		Metrics: metrics.New("test"),
		Now:     func() time.Time { return fixedNow },
	}
	return &fixture{
		deps:     deps,
		recorder: rec,
		accounts: &AccountService{Deps: deps},
		catalog:  &CatalogService{Deps: deps},
		orders:   &OrderService{Deps: deps},
		messages: &MessageService{Deps: deps},
		stats:    &DashboardService{Deps: deps},
	}
}

func (f *fixture) customer(t *testing.T, email string) *models.Customer {
	t.Helper()
	c, err := f.accounts.Register(context.Background(), RegisterInput{
		Name:            "Sam",
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Address:         "12 Cellar Road, Porto",
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name string, price string, stock int) *models.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), ProductInput{
		Name:    name,
		Type:    "Red",
		Region:  "Douro",
		Vintage: 2019,
		Price:   decimal.RequireFromString(price),
		Alcohol: 14,
		Stock:   stock,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()
	p, err := f.catalog.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) checkout(t *testing.T, customerID, productID uint, qty int) *models.Order {
	t.Helper()
	res, err := f.orders.Checkout(context.Background(), customerID, "", []repo.OrderLine{{ProductID: productID, Quantity: qty}})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	return &res.Orders[0]
}
