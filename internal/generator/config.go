package generator

import (
	"errors"
	"time"
)

// Defaults match the reference dataset: 1000 users over a 180-day window
// with catalog prices in [10, 500].
const (
	DefaultNumUsers = 1000
	DefaultDays     = 180
	DefaultPriceMin = 10.0
	DefaultPriceMax = 500.0
)

// Config holds the parameters of one generation run.
type Config struct {
	Seed     uint64
	NumUsers int
	Days     int       // length of the simulation window in days
	End      time.Time // exclusive end of the simulation window; zero means now (UTC, midnight)
	PriceMin float64
	PriceMax float64

	// Progress, when set, is called after each simulated user.
	Progress func(done, total int)
}

// Validate fails fast on parameters that cannot produce a coherent dataset.
// A zero population is valid and yields an empty event log.
func (c Config) Validate() error {
	if c.NumUsers < 0 {
		return errors.New("generator: population must not be negative")
	}
	if c.Days <= 0 {
		return errors.New("generator: simulation window must be at least one day")
	}
	if c.PriceMin <= 0 || c.PriceMax < c.PriceMin {
		return errors.New("generator: price range must satisfy 0 < min <= max")
	}
	return nil
}

// window returns the [start, end) simulation window. End is truncated to
// midnight UTC so day arithmetic stays integral.
func (c Config) window() (time.Time, time.Time) {
	end := c.End
	if end.IsZero() {
		end = time.Now()
	}
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -c.Days), end
}
