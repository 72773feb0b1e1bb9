// Package generator builds the synthetic e-commerce dataset: a fixed product
// catalog, a segmented user population and a per-user simulated event log.
// All randomness flows through explicit sources seeded from Config.Seed, so
// a run is reproducible bit-for-bit.
package generator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shoplytics/shoplytics/internal/models"
)

// Generate runs the full pipeline: catalog → users → event simulation.
// It fails fast on invalid configuration; a zero population or empty catalog
// downstream yields an empty event log, never an error.
func Generate(cfg Config) (*models.Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start, end := cfg.window()
	base := newSource(cfg.Seed)

	products, err := generateCatalog(base, defaultCatalog, cfg.PriceMin, cfg.PriceMax)
	if err != nil {
		return nil, fmt.Errorf("generate catalog: %w", err)
	}

	users := generateUsers(base, cfg.NumUsers, start, end)

	sim := &simulator{seed: cfg.Seed, end: end, progress: cfg.Progress}
	events := sim.run(users, products)

	return &models.Dataset{
		RunID:    uuid.New().String(),
		Seed:     cfg.Seed,
		Users:    users,
		Products: products,
		Events:   events,
	}, nil
}
