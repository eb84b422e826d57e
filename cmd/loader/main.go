// Command loader imports a GeoJSON feature collection into the osm_features
// PostGIS table and prints the number of rows per layer_type.
//
//	loader data/processed/low_emission_simulation.geojson
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/smartcity/lowemission/internal/config"
	applog "github.com/smartcity/lowemission/internal/logger"
	"github.com/smartcity/lowemission/internal/repository/geojsonfile"
	"github.com/smartcity/lowemission/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: loader <geojson_file>")
		fmt.Println("\nExample:")
		fmt.Println("  loader data/processed/low_emission_simulation.geojson")
		os.Exit(1)
	}

	cfg := config.Load()
	applog.Init(cfg.LogLevel, cfg.LogFormat)
	cfg.LogLoadNotes()

	path := os.Args[1]
	if _, err := os.Stat(path); err != nil {
		log.Fatalf("File not found: %s", path)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fc, err := geojsonfile.NewSource(path).Fetch(ctx)
	if err != nil {
		log.Fatalf("Failed to read features: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewRepository(pool)
	imported, err := repo.ImportFeatures(ctx, fc)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	counts, err := repo.LayerCounts(ctx)
	if err != nil {
		log.Fatalf("Failed to read layer counts: %v", err)
	}

	layerTypes := make([]string, 0, len(counts))
	for lt := range counts {
		layerTypes = append(layerTypes, lt)
	}
	sort.Strings(layerTypes)

	fmt.Printf("\nImport complete: %d features\n", imported)
	fmt.Println("\nStatistics:")
	for _, lt := range layerTypes {
		fmt.Printf("  - %s: %d rows\n", lt, counts[lt])
	}
}
