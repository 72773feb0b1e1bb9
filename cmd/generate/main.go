package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/schollz/progressbar/v3"

	"github.com/shoplytics/shoplytics/internal/datastore"
	"github.com/shoplytics/shoplytics/internal/generator"
)

// generate materializes a synthetic dataset bundle as CSV files.
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	seed := flag.Uint64("seed", 42, "random seed; a fixed seed reproduces the dataset bit-for-bit")
	numUsers := flag.Int("users", generator.DefaultNumUsers, "population size")
	days := flag.Int("days", generator.DefaultDays, "simulation window in days")
	priceMin := flag.Float64("price-min", generator.DefaultPriceMin, "catalog price floor")
	priceMax := flag.Float64("price-max", generator.DefaultPriceMax, "catalog price ceiling")
	out := flag.String("out", "data", "output directory for users.csv, products.csv, events.csv")
	flag.Parse()

	var bar *progressbar.ProgressBar
	cfg := generator.Config{
		Seed:     *seed,
		NumUsers: *numUsers,
		Days:     *days,
		PriceMin: *priceMin,
		PriceMax: *priceMax,
		Progress: func(done, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "simulating users")
			}
			_ = bar.Add(1)
		},
	}

	ds, err := generator.Generate(cfg)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	if err := datastore.WriteBundle(*out, ds); err != nil {
		log.Fatalf("write bundle: %v", err)
	}

	fmt.Printf("run_id=%s seed=%d users=%d products=%d events=%d -> %s\n",
		ds.RunID, ds.Seed, len(ds.Users), len(ds.Products), len(ds.Events), *out)
}
