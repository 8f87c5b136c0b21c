package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusDelivered  OrderStatus = "Delivered"
	StatusReceived   OrderStatus = "Received"
	StatusCancelled  OrderStatus = "Cancelled"
)

var AllStatuses = []OrderStatus{StatusPending, StatusProcessing, StatusDelivered, StatusReceived, StatusCancelled}

func ParseStatus(s string) (OrderStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
}

// Active orders still hold reserved stock that has not shipped to the customer.
func (s OrderStatus) Active() bool {
	return s == StatusPending || s == StatusProcessing
}

type Actor string

const (
	ActorAdmin    Actor = "admin"
	ActorCustomer Actor = "customer"
)

const EstimatedDeliveryOffset = 4 * 24 * time.Hour

type Transition struct {
	From OrderStatus
	To   OrderStatus
	// Release returns the order quantity to product stock.
	Release bool
	// StampShipment sets shipped_date and estimated_delivery_date.
	StampShipment bool
}

// NextTransition validates a requested status change for an actor and returns
// the side effects it carries.
func NextTransition(actor Actor, from, to OrderStatus) (Transition, error) {
	t := Transition{From: from, To: to}

	switch actor {
	case ActorAdmin:
		switch {
		case to == StatusCancelled && from != StatusCancelled:
			t.Release = true
			return t, nil
		case from == StatusPending && to == StatusProcessing:
			t.StampShipment = true
			return t, nil
		case from == StatusProcessing && to == StatusDelivered:
			return t, nil
		}
	case ActorCustomer:
		switch {
		case from == StatusPending && to == StatusCancelled:
			t.Release = true
			return t, nil
		case from == StatusDelivered && to == StatusReceived:
			return t, nil
		}
	default:
		return t, fmt.Errorf("%w: unknown actor %q", ErrValidation, actor)
	}

	return t, fmt.Errorf("%w: %s cannot move order from %s to %s", ErrInvalidTransition, actor, from, to)
}
