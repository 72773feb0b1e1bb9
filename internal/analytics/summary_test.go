package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplytics/shoplytics/internal/models"
)

func TestComputeSummary(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	events := []models.Event{
		{UserID: "U000001", SessionID: "S1", Type: models.EventSessionStart, Timestamp: base},
		{UserID: "U000001", SessionID: "S1", Type: models.EventProductView, Timestamp: base, ProductID: "P0001", Category: "Books", Price: 15},
		{UserID: "U000001", SessionID: "S1", Type: models.EventPurchase, Timestamp: base, ProductID: "P0001", Category: "Books", Price: 15, Quantity: 2},
		{UserID: "U000001", SessionID: "S1", Type: models.EventSessionEnd, Timestamp: base},
		{UserID: "U000002", SessionID: "S2", Type: models.EventSessionStart, Timestamp: base.AddDate(0, 0, 1)},
		{UserID: "U000002", SessionID: "S2", Type: models.EventProductView, Timestamp: base.AddDate(0, 0, 1), ProductID: "P0002", Category: "Sports", Price: 40},
		{UserID: "U000002", SessionID: "S2", Type: models.EventProductView, Timestamp: base.AddDate(0, 0, 1), ProductID: "P0003", Category: "Sports", Price: 60},
		{UserID: "U000002", SessionID: "S2", Type: models.EventPurchase, Timestamp: base.AddDate(0, 0, 1), ProductID: "P0002", Category: "Sports", Price: 40, Quantity: 1},
		{UserID: "U000002", SessionID: "S2", Type: models.EventSessionEnd, Timestamp: base.AddDate(0, 0, 1)},
	}

	s := ComputeSummary(events)
	assert.Equal(t, 2, s.TotalUsers)
	assert.Equal(t, 2, s.TotalSessions)
	assert.Equal(t, 2, s.TotalPurchases)
	assert.InDelta(t, 70.0, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 35.0, s.AvgOrderValue, 1e-9)
	assert.InDelta(t, 100.0, s.ConversionRate, 1e-9)
	assert.Equal(t, "Sports", s.TopCategory, "most viewed category wins")
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := ComputeSummary(nil)
	assert.Zero(t, s.TotalUsers)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.AvgOrderValue)
	assert.Zero(t, s.ConversionRate)
	assert.Empty(t, s.TopCategory)
}

func TestEventTypeCounts(t *testing.T) {
	events := []models.Event{
		{Type: models.EventSessionEnd},
		{Type: models.EventSessionStart},
		{Type: models.EventProductView},
		{Type: models.EventProductView},
		{Type: models.EventSessionStart},
	}
	counts := EventTypeCounts(events)
	require.Len(t, counts, 3)
	// Reported in funnel order regardless of input order.
	assert.Equal(t, TypeCount{models.EventSessionStart, 2}, counts[0])
	assert.Equal(t, TypeCount{models.EventProductView, 2}, counts[1])
	assert.Equal(t, TypeCount{models.EventSessionEnd, 1}, counts[2])
}

func TestDailyEventCounts(t *testing.T) {
	d1 := time.Date(2024, 5, 2, 23, 59, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	events := []models.Event{
		{Type: models.EventSessionStart, Timestamp: d1},
		{Type: models.EventSessionStart, Timestamp: d2},
		{Type: models.EventSessionEnd, Timestamp: d1},
	}
	days := DailyEventCounts(events)
	require.Len(t, days, 2)
	assert.Equal(t, DailyCount{"2024-05-01", 1}, days[0])
	assert.Equal(t, DailyCount{"2024-05-02", 2}, days[1])
}

func TestSegmentActivity(t *testing.T) {
	users := []models.User{
		{UserID: "U000001", Segment: models.SegmentRegular},
		{UserID: "U000002", Segment: models.SegmentHighValue},
	}
	events := []models.Event{
		{UserID: "U000001", Type: models.EventSessionStart},
		{UserID: "U000001", Type: models.EventSessionEnd},
		{UserID: "U000002", Type: models.EventSessionStart},
		{UserID: "U999999", Type: models.EventSessionStart}, // unknown user is skipped
	}
	counts := SegmentActivity(events, users)
	require.Len(t, counts, 2)
	assert.Equal(t, SegmentCount{models.SegmentRegular, 2}, counts[0])
	assert.Equal(t, SegmentCount{models.SegmentHighValue, 1}, counts[1])
}

func TestFilterWindow(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		{EventID: "E1", Timestamp: base},
		{EventID: "E2", Timestamp: base.AddDate(0, 0, 1)},
		{EventID: "E3", Timestamp: base.AddDate(0, 0, 2)},
	}

	// Half-open window: the `to` bound is excluded.
	got := FilterWindow(events, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2))
	require.Len(t, got, 1)
	assert.Equal(t, "E2", got[0].EventID)

	assert.Len(t, FilterWindow(events, time.Time{}, time.Time{}), 3)
	assert.Len(t, FilterWindow(events, base.AddDate(0, 0, 1), time.Time{}), 2)
	assert.Empty(t, FilterWindow(events, base.AddDate(0, 0, 5), time.Time{}))
}
