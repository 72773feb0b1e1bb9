package main

import (
	"errors"
	"log"

	"github.com/shoplytics/shoplytics/internal/config"
	"github.com/shoplytics/shoplytics/internal/datastore"
	"github.com/shoplytics/shoplytics/internal/generator"
	"github.com/shoplytics/shoplytics/internal/httpserver"
	"github.com/shoplytics/shoplytics/internal/models"
)

// main boots the service: config → dataset (load or generate) → HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ds, err := loadOrGenerate(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("dataset ready: run_id=%s users=%d products=%d events=%d",
		ds.RunID, len(ds.Users), len(ds.Products), len(ds.Events))

	st := datastore.NewStore(ds)
	router := httpserver.NewRouter(cfg, st)

	log.Printf("server started on %s", cfg.Addr)
	log.Fatal(router.Run(cfg.Addr))
}

// loadOrGenerate prefers a persisted CSV bundle when a data directory is
// configured; a missing bundle is generated fresh and materialized so the
// next boot reuses it.
func loadOrGenerate(cfg config.Config) (*models.Dataset, error) {
	if cfg.DataDir != "" {
		loaded, err := datastore.ReadBundle(cfg.DataDir)
		if err == nil {
			log.Printf("loaded bundle from %s", cfg.DataDir)
			return loaded, nil
		}
		if !errors.Is(err, datastore.ErrMissingDataset) {
			return nil, err
		}
		log.Printf("no bundle in %s, generating", cfg.DataDir)
	}

	generated, err := generator.Generate(cfg.Generator)
	if err != nil {
		return nil, err
	}
	if cfg.DataDir != "" {
		if err := datastore.WriteBundle(cfg.DataDir, generated); err != nil {
			return nil, err
		}
	}
	return generated, nil
}
