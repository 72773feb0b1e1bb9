// Package analytics computes derived metrics over the generated event log:
// RFM customer scoring, behavioral k-means clustering, conversion funnels
// and descriptive summaries. Every computation is pure: inputs are never
// mutated, and insufficient data yields an explicitly empty result instead
// of an error.
package analytics

import (
	"time"

	"github.com/shoplytics/shoplytics/internal/models"
)

// FilterWindow returns the events falling in the half-open window [from, to).
// A zero bound is unbounded on that side. The half-open interval avoids
// double counting at window boundaries.
func FilterWindow(events []models.Event, from, to time.Time) []models.Event {
	if from.IsZero() && to.IsZero() {
		return events
	}
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if !from.IsZero() && ev.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && !ev.Timestamp.Before(to) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
