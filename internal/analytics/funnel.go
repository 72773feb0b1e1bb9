package analytics

import (
	"github.com/shoplytics/shoplytics/internal/models"
)

// FunnelReport aggregates session-level conversion over the filtered window.
// Rates are percentages of total sessions. view_rate >= cart_rate >=
// purchase_rate is typical but not guaranteed: a session can add a re-viewed
// product to the cart in a window that clipped the views.
type FunnelReport struct {
	TotalSessions        int     `json:"total_sessions"`
	SessionsWithView     int     `json:"sessions_with_view"`
	SessionsWithCart     int     `json:"sessions_with_cart"`
	SessionsWithPurchase int     `json:"sessions_with_purchase"`
	ViewRate             float64 `json:"view_rate"`
	CartRate             float64 `json:"cart_rate"`
	PurchaseRate         float64 `json:"purchase_rate"`
}

// ComputeFunnel evaluates the session → view → cart → purchase funnel.
// A session counts only if its session_start falls inside the window; zero
// sessions reports zero rates, not an error.
func ComputeFunnel(events []models.Event) FunnelReport {
	type flags struct {
		started, view, cart, purchase bool
	}
	bySession := make(map[string]*flags)
	for _, ev := range events {
		f := bySession[ev.SessionID]
		if f == nil {
			f = &flags{}
			bySession[ev.SessionID] = f
		}
		switch ev.Type {
		case models.EventSessionStart:
			f.started = true
		case models.EventProductView:
			f.view = true
		case models.EventAddToCart:
			f.cart = true
		case models.EventPurchase:
			f.purchase = true
		}
	}

	var report FunnelReport
	for _, f := range bySession {
		if !f.started {
			continue
		}
		report.TotalSessions++
		if f.view {
			report.SessionsWithView++
		}
		if f.cart {
			report.SessionsWithCart++
		}
		if f.purchase {
			report.SessionsWithPurchase++
		}
	}
	if report.TotalSessions > 0 {
		total := float64(report.TotalSessions)
		report.ViewRate = float64(report.SessionsWithView) / total * 100
		report.CartRate = float64(report.SessionsWithCart) / total * 100
		report.PurchaseRate = float64(report.SessionsWithPurchase) / total * 100
	}
	return report
}
