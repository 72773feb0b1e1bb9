package generator

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/shoplytics/shoplytics/internal/models"
)

// behaviorParams are the per-segment knobs of the session state machine.
// SessionsPerMonth is drawn once per user; SessionLength (the product_view
// count) is drawn once per session.
type behaviorParams struct {
	sessionsPerMonthMin int
	sessionsPerMonthMax int
	purchaseProb        float64
	sessionLengthMin    int
	sessionLengthMax    int
}

// behaviorBySegment is the single source of truth for segment behavior.
var behaviorBySegment = map[models.UserSegment]behaviorParams{
	models.SegmentHighValue:  {4, 10, 0.30, 3, 8},
	models.SegmentRegular:    {2, 6, 0.15, 2, 5},
	models.SegmentOccasional: {1, 3, 0.08, 1, 3},
	models.SegmentNew:        {1, 2, 0.05, 1, 2},
}

// maxSessionsPerUser caps output volume for long-tenured users.
const maxSessionsPerUser = 20

// Session clock window: sessions start between 08:00:00 and 22:59:59.
const (
	sessionHourMin = 8
	sessionHourMax = 22
)

// simulator emits the event log for a user population against a catalog.
// Event and session ordinals are global and monotonically increasing in
// generation order.
type simulator struct {
	seed       uint64
	end        time.Time
	progress   func(done, total int)
	eventOrd   int
	sessionOrd int
}

// run simulates every user independently and returns the concatenated event
// log in generation order. The log is user-major: sessions of one user are
// not sorted by date relative to one another, and users are not interleaved
// by time. That is a documented property of the generator, not a bug.
func (s *simulator) run(users []models.User, products []models.Product) []models.Event {
	if len(users) == 0 || len(products) == 0 {
		return nil
	}

	var events []models.Event
	for i, u := range users {
		r := userStream(s.seed, i)
		events = append(events, s.simulateUser(r, u, products)...)
		if s.progress != nil {
			s.progress(i+1, len(users))
		}
	}
	return events
}

// simulateUser derives the session count from tenure and segment, then runs
// the session state machine once per session.
func (s *simulator) simulateUser(r *rand.Rand, u models.User, products []models.Product) []models.Event {
	daysActive := int(s.end.Sub(u.RegistrationDate).Hours() / 24)
	if daysActive <= 0 {
		return nil
	}

	params := behaviorBySegment[u.Segment]
	sessionsPerMonth := intBetween(r, params.sessionsPerMonthMin, params.sessionsPerMonthMax)
	totalSessions := int(math.Round(float64(daysActive) / 30 * float64(sessionsPerMonth)))
	if totalSessions > maxSessionsPerUser {
		totalSessions = maxSessionsPerUser
	}

	var events []models.Event
	for i := 0; i < totalSessions; i++ {
		sessionDay := u.RegistrationDate.AddDate(0, 0, r.IntN(daysActive))
		events = append(events, s.simulateSession(r, u, products, params, sessionDay)...)
	}
	return events
}

// simulateSession walks the fixed session state machine:
//
//	session_start → product_view* → add_to_cart{0..2} → purchase{0..|cart|} → session_end
//
// with a strictly increasing session clock (gaps of 1-5, 1-3, 1-2 and 1-5
// minutes respectively). Cart items are a subset of viewed products and
// purchased items a subset of the cart.
func (s *simulator) simulateSession(r *rand.Rand, u models.User, products []models.Product, params behaviorParams, day time.Time) []models.Event {
	s.sessionOrd++
	sessionID := models.SessionID(s.sessionOrd)

	clock := time.Date(day.Year(), day.Month(), day.Day(),
		intBetween(r, sessionHourMin, sessionHourMax),
		r.IntN(60), r.IntN(60), 0, time.UTC)

	var events []models.Event
	emit := func(t models.EventType, p *models.Product, qty int) {
		s.eventOrd++
		ev := models.Event{
			EventID:   models.EventID(s.eventOrd),
			UserID:    u.UserID,
			SessionID: sessionID,
			Type:      t,
			Timestamp: clock,
		}
		if p != nil {
			ev.ProductID = p.ProductID
			ev.Category = p.Category
			ev.Price = p.Price
			ev.Quantity = qty
		}
		events = append(events, ev)
	}

	emit(models.EventSessionStart, nil, 0)

	// Views: each an independent uniform pick from the full catalog.
	numViews := intBetween(r, params.sessionLengthMin, params.sessionLengthMax)
	viewed := make([]models.Product, 0, numViews)
	for i := 0; i < numViews; i++ {
		p := products[r.IntN(len(products))]
		clock = clock.Add(time.Duration(intBetween(r, 1, 5)) * time.Minute)
		emit(models.EventProductView, &p, 0)
		viewed = append(viewed, p)
	}

	// Cart: 1-2 distinct viewed products, capped by how many distinct
	// products the session actually saw.
	distinct := distinctProducts(viewed)
	cartSize := intBetween(r, 1, 2)
	if cartSize > len(distinct) {
		cartSize = len(distinct)
	}
	cart := sampleProducts(r, distinct, cartSize)
	for i := range cart {
		clock = clock.Add(time.Duration(intBetween(r, 1, 3)) * time.Minute)
		emit(models.EventAddToCart, &cart[i], intBetween(r, 1, 3))
	}

	// Purchase: one Bernoulli trial per session over a subset of the cart.
	if len(cart) > 0 && r.Float64() < params.purchaseProb {
		purchased := sampleProducts(r, cart, intBetween(r, 1, len(cart)))
		for i := range purchased {
			clock = clock.Add(time.Duration(intBetween(r, 1, 2)) * time.Minute)
			emit(models.EventPurchase, &purchased[i], intBetween(r, 1, 2))
		}
	}

	clock = clock.Add(time.Duration(intBetween(r, 1, 5)) * time.Minute)
	emit(models.EventSessionEnd, nil, 0)

	return events
}

// distinctProducts keeps the first occurrence of each product ID,
// preserving view order.
func distinctProducts(viewed []models.Product) []models.Product {
	seen := make(map[string]bool, len(viewed))
	out := make([]models.Product, 0, len(viewed))
	for _, p := range viewed {
		if !seen[p.ProductID] {
			seen[p.ProductID] = true
			out = append(out, p)
		}
	}
	return out
}

// sampleProducts draws n products without replacement via a partial
// Fisher-Yates shuffle of a copy.
func sampleProducts(r *rand.Rand, pool []models.Product, n int) []models.Product {
	if n <= 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	cp := make([]models.Product, len(pool))
	copy(cp, pool)
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}
