package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	t.Parallel()

	m := New("cellar_test")
	m.OrdersPlaced(3)
	m.OrderTransition("Pending", "Processing")
	m.OrderTransition("Pending", "Processing")
	m.CheckoutRejected("insufficient_stock")
	m.MessagePosted("customer")
	m.EventPublishFailed("order_events")

	assert.Equal(t, 3.0, testutil.ToFloat64(m.OrdersPlacedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrderTransitionsTotal.WithLabelValues("Pending", "Processing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckoutRejectedTotal.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessagesPostedTotal.WithLabelValues("customer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventPublishErrorTotal.WithLabelValues("order_events")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.OrdersPlaced(1)
		m.OrderTransition("a", "b")
		m.CheckoutRejected("x")
		m.MessagePosted("admin")
		m.EventPublishFailed("t")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	t.Parallel()

	m := New("cellar_test")
	m.OrdersPlaced(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cellar_test_orders_placed_total 1")
}
