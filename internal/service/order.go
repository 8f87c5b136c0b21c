package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/internal/repo"
	"github.com/Skotchmaster/cellar_society/pkg/events"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/pkg/util"
)

type CheckoutResult struct {
	Orders  []models.Order  `json:"orders"`
	Total   decimal.Decimal `json:"total"`
	Address string          `json:"address"`
}

type CustomerOrders struct {
	Orders []models.OrderView           `json:"orders"`
	Counts map[domain.OrderStatus]int64 `json:"counts"`
}

type OrderService struct {
	Deps
}

// Checkout turns cart lines into Pending orders. The shipping address falls
// back to the profile address, and a different address is saved back to the
// profile once the orders are placed.
func (s *OrderService) Checkout(ctx context.Context, customerID uint, address string, lines []repo.OrderLine) (*CheckoutResult, error) {
	l := logging.FromContext(ctx).With("svc", "orders.checkout", "customer_id", customerID)

	if len(lines) == 0 {
		s.Metrics.CheckoutRejected("empty_cart")
		return nil, domain.ErrEmptyCart
	}

	customer, err := s.Repo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	address = strings.TrimSpace(address)
	if address == "" {
		address = strings.TrimSpace(customer.Address)
	}
	if utf8.RuneCountInString(address) < MinAddressLength {
		s.Metrics.CheckoutRejected("address")
		return nil, fmt.Errorf("%w: address must be at least %d characters", domain.ErrValidation, MinAddressLength)
	}

	orders, err := s.Repo.PlaceOrders(ctx, customerID, lines)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			s.Metrics.CheckoutRejected("insufficient_stock")
		case errors.Is(err, domain.ErrNotFound):
			s.Metrics.CheckoutRejected("unknown_product")
		}
		return nil, err
	}

	if address != customer.Address {
		if err := s.Repo.UpdateCustomerAddress(ctx, customerID, address); err != nil {
			l.Warn("address_save_failed", "error", err)
		}
	}

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalPrice)
		s.publish(ctx, events.TopicOrders, orderKey(o.ID), events.OrderEvent{
			Type:       events.OrderPlaced,
			OrderID:    o.ID,
			CustomerID: o.CustomerID,
			ProductID:  o.ProductID,
			Quantity:   o.Quantity,
			Status:     string(o.Status),
			Actor:      string(domain.ActorCustomer),
			Timestamp:  s.now(),
		})
	}
	s.Metrics.OrdersPlaced(len(orders))
	l.Info("checkout_completed", "orders", len(orders), "total", total.StringFixed(2))

	return &CheckoutResult{Orders: orders, Total: total, Address: address}, nil
}

// SetStatus applies an admin status change.
func (s *OrderService) SetStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, domain.ActorAdmin, order, to)
}

func (s *OrderService) Cancel(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	order, err := s.ownedOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, domain.ActorCustomer, order, domain.StatusCancelled)
}

func (s *OrderService) MarkReceived(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	order, err := s.ownedOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, domain.ActorCustomer, order, domain.StatusReceived)
}

func (s *OrderService) ownedOrder(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, actor domain.Actor, order *models.Order, to domain.OrderStatus) (*models.Order, error) {
	t, err := domain.NextTransition(actor, order.Status, to)
	if err != nil {
		return nil, err
	}
	updated, err := s.Repo.ApplyTransition(ctx, order.ID, t, s.now())
	if err != nil {
		return nil, err
	}

	s.Metrics.OrderTransition(string(t.From), string(t.To))
	s.publish(ctx, events.TopicOrders, orderKey(updated.ID), events.OrderEvent{
		Type:       events.OrderStatusChanged,
		OrderID:    updated.ID,
		CustomerID: updated.CustomerID,
		ProductID:  updated.ProductID,
		Quantity:   updated.Quantity,
		From:       string(t.From),
		Status:     string(t.To),
		Actor:      string(actor),
		Timestamp:  s.now(),
	})
	logging.FromContext(ctx).Info("order_transition",
		"svc", "orders.transition", "order_id", updated.ID, "actor", actor, "from", t.From, "to", t.To, "released", t.Release)
	return updated, nil
}

func parseStatusFilter(status string) (domain.OrderStatus, error) {
	if strings.TrimSpace(status) == "" {
		return "", nil
	}
	return domain.ParseStatus(strings.TrimSpace(status))
}

// ListOrders is the admin order list, optionally narrowed to one status.
func (s *OrderService) ListOrders(ctx context.Context, status string) ([]models.OrderView, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListOrderViews(ctx, repo.OrderFilter{Status: st})
}

// ListOrdersPage is ListOrders one page at a time.
func (s *OrderService) ListOrdersPage(ctx context.Context, status string, page, size int) ([]models.OrderView, util.Meta, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, util.Meta{}, err
	}
	offset, limit := util.Calculate(page, size)
	f := repo.OrderFilter{Status: st, Limit: limit, Offset: offset}

	total, err := s.Repo.CountOrderViews(ctx, f)
	if err != nil {
		return nil, util.Meta{}, err
	}
	views, err := s.Repo.ListOrderViews(ctx, f)
	if err != nil {
		return nil, util.Meta{}, err
	}
	return views, util.NewMeta(page, offset, limit, total), nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.OrderView, error) {
	return s.Repo.GetOrderView(ctx, id)
}

func (s *OrderService) CustomerOrders(ctx context.Context, customerID uint, status string) (*CustomerOrders, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrderViews(ctx, repo.OrderFilter{CustomerID: customerID, Status: st})
	if err != nil {
		return nil, err
	}
	counts, err := s.Repo.CountOrdersByStatus(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &CustomerOrders{Orders: orders, Counts: counts}, nil
}

func orderKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
