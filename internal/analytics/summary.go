package analytics

import (
	"sort"

	"github.com/shoplytics/shoplytics/internal/models"
)

// Summary holds the headline metrics of the filtered window.
type Summary struct {
	TotalUsers     int     `json:"total_users"`
	TotalSessions  int     `json:"total_sessions"`
	TotalPurchases int     `json:"total_purchases"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	ConversionRate float64 `json:"conversion_rate"` // purchase events per session_start, as a percentage
	TopCategory    string  `json:"top_category"`
}

// TypeCount is one event-type distribution row, in funnel order.
type TypeCount struct {
	Type  models.EventType `json:"event_type"`
	Count int              `json:"count"`
}

// CategoryCount is one product-view-by-category row.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DailyCount is one point of the daily event time series.
type DailyCount struct {
	Date  string `json:"date"` // ISO-8601 calendar day
	Count int    `json:"count"`
}

// SegmentCount is the event volume attributed to one generator segment.
type SegmentCount struct {
	Segment models.UserSegment `json:"segment"`
	Count   int                `json:"count"`
}

// ComputeSummary derives the headline metrics. An empty window yields the
// zero summary.
func ComputeSummary(events []models.Event) Summary {
	var s Summary
	users := map[string]bool{}
	sessions := map[string]bool{}
	starts := 0
	for _, ev := range events {
		users[ev.UserID] = true
		sessions[ev.SessionID] = true
		switch ev.Type {
		case models.EventSessionStart:
			starts++
		case models.EventPurchase:
			s.TotalPurchases++
			s.TotalRevenue += ev.Price * float64(ev.Quantity)
		}
	}
	s.TotalUsers = len(users)
	s.TotalSessions = len(sessions)
	if s.TotalPurchases > 0 {
		s.AvgOrderValue = s.TotalRevenue / float64(s.TotalPurchases)
	}
	if starts > 0 {
		s.ConversionRate = float64(s.TotalPurchases) / float64(starts) * 100
	}
	if top := ViewsByCategory(events); len(top) > 0 {
		s.TopCategory = top[0].Category
	}
	return s
}

// EventTypeCounts tallies events per type, reported in funnel order.
func EventTypeCounts(events []models.Event) []TypeCount {
	counts := map[models.EventType]int{}
	for _, ev := range events {
		counts[ev.Type]++
	}
	out := make([]TypeCount, 0, len(models.EventTypes))
	for _, t := range models.EventTypes {
		if counts[t] > 0 {
			out = append(out, TypeCount{Type: t, Count: counts[t]})
		}
	}
	return out
}

// ViewsByCategory tallies product_view events per category, most viewed
// first; category name breaks ties for stable output.
func ViewsByCategory(events []models.Event) []CategoryCount {
	counts := map[string]int{}
	for _, ev := range events {
		if ev.Type == models.EventProductView {
			counts[ev.Category]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DailyEventCounts buckets events per UTC calendar day, in date order.
func DailyEventCounts(events []models.Event) []DailyCount {
	counts := map[string]int{}
	for _, ev := range events {
		counts[ev.Timestamp.UTC().Format("2006-01-02")]++
	}
	out := make([]DailyCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DailyCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// SegmentActivity attributes event volume to the generator segment of each
// event's user, largest first.
func SegmentActivity(events []models.Event, users []models.User) []SegmentCount {
	segmentOf := make(map[string]models.UserSegment, len(users))
	for _, u := range users {
		segmentOf[u.UserID] = u.Segment
	}
	counts := map[models.UserSegment]int{}
	for _, ev := range events {
		if seg, ok := segmentOf[ev.UserID]; ok {
			counts[seg]++
		}
	}
	out := make([]SegmentCount, 0, len(counts))
	for seg, n := range counts {
		out = append(out, SegmentCount{Segment: seg, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}
