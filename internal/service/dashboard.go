package service

import (
	"context"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/internal/repo"
)

const recentOrdersOnDashboard = 5

type Dashboard struct {
	TotalProducts  int64                        `json:"total_products"`
	TotalCustomers int64                        `json:"total_customers"`
	TotalOrders    int64                        `json:"total_orders"`
	PendingOrders  int64                        `json:"pending_orders"`
	UnreadMessages int64                        `json:"unread_messages"`
	OrdersByStatus map[domain.OrderStatus]int64 `json:"orders_by_status"`
	RecentOrders   []models.OrderView           `json:"recent_orders"`
}

type DashboardService struct {
	Deps
}

// Dashboard is computed from committed rows on every call.
func (s *DashboardService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.TotalProducts, err = s.Repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if d.TotalCustomers, err = s.Repo.CountCustomers(ctx); err != nil {
		return nil, err
	}
	if d.TotalOrders, err = s.Repo.CountOrders(ctx); err != nil {
		return nil, err
	}
	if d.OrdersByStatus, err = s.Repo.CountOrdersByStatus(ctx, 0); err != nil {
		return nil, err
	}
	d.PendingOrders = d.OrdersByStatus[domain.StatusPending]
	if d.UnreadMessages, err = s.Repo.CountUnreadAll(ctx, domain.SenderCustomer); err != nil {
		return nil, err
	}
	if d.RecentOrders, err = s.Repo.ListOrderViews(ctx, repo.OrderFilter{Limit: recentOrdersOnDashboard}); err != nil {
		return nil, err
	}
	return &d, nil
}

// OrderCountsByStatus covers all orders, or one customer's when customerID is
// non-zero.
func (s *DashboardService) OrderCountsByStatus(ctx context.Context, customerID uint) (map[domain.OrderStatus]int64, error) {
	return s.Repo.CountOrdersByStatus(ctx, customerID)
}
