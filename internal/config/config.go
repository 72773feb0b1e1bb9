package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/shoplytics/shoplytics/internal/generator"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Addr           string   // HTTP listen address
	DataDir        string   // directory holding the CSV bundle; empty means in-memory only
	APIKey         string   // optional X-API-Key guard; empty disables auth
	AllowedOrigins []string // CORS origins for the external dashboard
	Generator      generator.Config
}

// Load reads values from the environment, after loading an optional .env
// file, and fails fast on invalid generation parameters.
//
//	ADDR          listen address (default :8080)
//	DATA_DIR      CSV bundle directory (optional)
//	API_KEY       API key for metric endpoints (optional)
//	CORS_ORIGINS  comma-separated allowed origins (default *)
//	SEED          generation seed (default 42)
//	NUM_USERS     population size (default 1000)
//	NUM_DAYS      simulation window in days (default 180)
func Load() (Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := Config{
		Addr:    envOr("ADDR", ":8080"),
		DataDir: strings.TrimSpace(os.Getenv("DATA_DIR")),
		APIKey:  strings.TrimSpace(os.Getenv("API_KEY")),
		Generator: generator.Config{
			Seed:     42,
			NumUsers: generator.DefaultNumUsers,
			Days:     generator.DefaultDays,
			PriceMin: generator.DefaultPriceMin,
			PriceMax: generator.DefaultPriceMax,
		},
	}

	origins := envOr("CORS_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if v := os.Getenv("SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("SEED must be an unsigned integer: %w", err)
		}
		cfg.Generator.Seed = seed
	}
	if v := os.Getenv("NUM_USERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("NUM_USERS must be an integer: %w", err)
		}
		cfg.Generator.NumUsers = n
	}
	if v := os.Getenv("NUM_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("NUM_DAYS must be an integer: %w", err)
		}
		cfg.Generator.Days = n
	}

	if err := cfg.Generator.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
