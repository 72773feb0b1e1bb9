package generator

import (
	"math/rand/v2"
	"time"

	"github.com/shoplytics/shoplytics/internal/models"
)

// segmentWeights is the fixed categorical distribution users are drawn from.
// Order matters for reproducibility of the cumulative draw.
var segmentWeights = []struct {
	segment models.UserSegment
	weight  float64
}{
	{models.SegmentHighValue, 0.10},
	{models.SegmentRegular, 0.50},
	{models.SegmentOccasional, 0.30},
	{models.SegmentNew, 0.10},
}

// Registration sub-windows, in days. "New" users registered recently; the
// rest registered early in the window.
const (
	newUserWindowDays   = 30
	earlyUserWindowDays = 100
)

var genders = []string{"Male", "Female", "Other"}

var locations = []string{
	"New York", "Los Angeles", "Chicago", "Houston",
	"Phoenix", "Philadelphia", "San Antonio", "San Diego",
}

// generateUsers produces the user population for the window [start, end).
// Registration dates are whole days: New users fall in the final 30 days,
// everyone else in the first 100 days (clamped to the window length).
func generateUsers(r *rand.Rand, n int, start, end time.Time) []models.User {
	windowDays := int(end.Sub(start).Hours() / 24)

	users := make([]models.User, 0, n)
	for i := 1; i <= n; i++ {
		segment := sampleSegment(r)

		var registration time.Time
		if segment == models.SegmentNew {
			span := min(newUserWindowDays, windowDays)
			registration = end.AddDate(0, 0, -span+r.IntN(span))
		} else {
			span := min(earlyUserWindowDays, windowDays)
			registration = start.AddDate(0, 0, r.IntN(span))
		}

		users = append(users, models.User{
			UserID:           models.UserID(i),
			RegistrationDate: registration,
			Age:              intBetween(r, 18, 70),
			Gender:           genders[r.IntN(len(genders))],
			Location:         locations[r.IntN(len(locations))],
			Segment:          segment,
		})
	}
	return users
}

// sampleSegment draws one segment from the weighted distribution.
func sampleSegment(r *rand.Rand) models.UserSegment {
	x := r.Float64()
	cum := 0.0
	for _, sw := range segmentWeights {
		cum += sw.weight
		if x < cum {
			return sw.segment
		}
	}
	// Float rounding can leave x at or above the final cumulative weight.
	return segmentWeights[len(segmentWeights)-1].segment
}
