package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actor   Actor
		from    OrderStatus
		to      OrderStatus
		ok      bool
		release bool
		stamp   bool
	}{
		{name: "admin ships", actor: ActorAdmin, from: StatusPending, to: StatusProcessing, ok: true, stamp: true},
		{name: "admin delivers", actor: ActorAdmin, from: StatusProcessing, to: StatusDelivered, ok: true},
		{name: "admin cancels pending", actor: ActorAdmin, from: StatusPending, to: StatusCancelled, ok: true, release: true},
		{name: "admin cancels delivered", actor: ActorAdmin, from: StatusDelivered, to: StatusCancelled, ok: true, release: true},
		{name: "admin cancels received", actor: ActorAdmin, from: StatusReceived, to: StatusCancelled, ok: true, release: true},
		{name: "admin cannot cancel twice", actor: ActorAdmin, from: StatusCancelled, to: StatusCancelled},
		{name: "admin cannot skip to delivered", actor: ActorAdmin, from: StatusPending, to: StatusDelivered},
		{name: "admin cannot go backwards", actor: ActorAdmin, from: StatusDelivered, to: StatusProcessing},
		{name: "admin cannot mark received", actor: ActorAdmin, from: StatusDelivered, to: StatusReceived},
		{name: "customer receives", actor: ActorCustomer, from: StatusDelivered, to: StatusReceived, ok: true},
		{name: "customer cancels pending", actor: ActorCustomer, from: StatusPending, to: StatusCancelled, ok: true, release: true},
		{name: "customer cannot cancel processing", actor: ActorCustomer, from: StatusProcessing, to: StatusCancelled},
		{name: "customer cannot receive processing", actor: ActorCustomer, from: StatusProcessing, to: StatusReceived},
		{name: "customer cannot ship", actor: ActorCustomer, from: StatusPending, to: StatusProcessing},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr, err := NextTransition(tt.actor, tt.from, tt.to)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.release, tr.Release)
			assert.Equal(t, tt.stamp, tr.StampShipment)
		})
	}
}

func TestNextTransition_UnknownActor(t *testing.T) {
	t.Parallel()

	_, err := NextTransition(Actor("courier"), StatusPending, StatusProcessing)
	require.ErrorIs(t, err, ErrValidation)
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	st, err := ParseStatus("Delivered")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, st)

	_, err = ParseStatus("delivered")
	require.ErrorIs(t, err, ErrValidation)
}

func TestSentinelWrapping(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrInsufficientStock, ErrValidation)
	assert.ErrorIs(t, ErrEmptyCart, ErrValidation)
	assert.Contains(t, ErrEmptyCart.Error(), "cart is empty")
}

func TestNormalizeMessageBody(t *testing.T) {
	t.Parallel()

	body, err := NormalizeMessageBody("  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", body)

	_, err = NormalizeMessageBody("   ")
	require.ErrorIs(t, err, ErrValidation)

	_, err = NormalizeMessageBody(strings.Repeat("a", MaxMessageLength))
	require.NoError(t, err)

	_, err = NormalizeMessageBody(strings.Repeat("é", MaxMessageLength+1))
	require.ErrorIs(t, err, ErrValidation)
}

func TestSenderRole(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SenderAdmin, SenderCustomer.Other())
	assert.Equal(t, SenderCustomer, SenderAdmin.Other())
	assert.False(t, SenderRole("bot").Valid())
}
