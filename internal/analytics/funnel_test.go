package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shoplytics/shoplytics/internal/models"
)

func sessionEvents(sid string, types ...models.EventType) []models.Event {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	events := make([]models.Event, 0, len(types))
	for i, typ := range types {
		ev := models.Event{
			UserID:    "U000001",
			SessionID: sid,
			Type:      typ,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if ev.HasProduct() {
			ev.ProductID = "P0001"
			ev.Category = "Electronics"
			ev.Price = 10
			ev.Quantity = 1
		}
		events = append(events, ev)
	}
	return events
}

func TestComputeFunnel(t *testing.T) {
	var events []models.Event
	// Bounce: start, end.
	events = append(events, sessionEvents("S1", models.EventSessionStart, models.EventSessionEnd)...)
	// Browse only.
	events = append(events, sessionEvents("S2", models.EventSessionStart, models.EventProductView, models.EventSessionEnd)...)
	// Abandoned cart.
	events = append(events, sessionEvents("S3", models.EventSessionStart, models.EventProductView, models.EventAddToCart, models.EventSessionEnd)...)
	// Converted.
	events = append(events, sessionEvents("S4", models.EventSessionStart, models.EventProductView, models.EventAddToCart, models.EventPurchase, models.EventSessionEnd)...)

	report := ComputeFunnel(events)
	assert.Equal(t, 4, report.TotalSessions)
	assert.Equal(t, 3, report.SessionsWithView)
	assert.Equal(t, 2, report.SessionsWithCart)
	assert.Equal(t, 1, report.SessionsWithPurchase)
	assert.InDelta(t, 75.0, report.ViewRate, 1e-9)
	assert.InDelta(t, 50.0, report.CartRate, 1e-9)
	assert.InDelta(t, 25.0, report.PurchaseRate, 1e-9)
}

func TestFunnelIgnoresSessionsWithoutStart(t *testing.T) {
	// A window can clip session_start away; such sessions don't count.
	events := sessionEvents("S1", models.EventProductView, models.EventAddToCart, models.EventSessionEnd)
	events = append(events, sessionEvents("S2", models.EventSessionStart, models.EventSessionEnd)...)

	report := ComputeFunnel(events)
	assert.Equal(t, 1, report.TotalSessions)
	assert.Equal(t, 0, report.SessionsWithView)
}

func TestFunnelEmptyWindow(t *testing.T) {
	report := ComputeFunnel(nil)
	assert.Zero(t, report.TotalSessions)
	assert.Zero(t, report.ViewRate)
	assert.Zero(t, report.CartRate)
	assert.Zero(t, report.PurchaseRate)
}

func TestFunnelRateBounds(t *testing.T) {
	var events []models.Event
	for _, sid := range []string{"S1", "S2", "S3"} {
		events = append(events, sessionEvents(sid,
			models.EventSessionStart, models.EventProductView, models.EventAddToCart,
			models.EventPurchase, models.EventSessionEnd)...)
	}
	report := ComputeFunnel(events)
	for _, rate := range []float64{report.ViewRate, report.CartRate, report.PurchaseRate} {
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
	}
}
