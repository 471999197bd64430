package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"parcel-delivery-sim/internal/adapters/repositories"
	"parcel-delivery-sim/internal/adapters/tables"
	"parcel-delivery-sim/internal/config"
	"parcel-delivery-sim/internal/platform/db"
	"strings"
)

func main() {
	config.LoadDotEnv()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	db, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	manifestPath := config.Get("MANIFEST_PATH", "data/parcels.csv")
	sheet := config.Get("XLSX_SHEET", "")
	if err := initAndSeed(ctx, db, manifestPath, sheet); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, db *sql.DB, manifestPath, sheet string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	parcels, err := tables.NewFileParcelRepository(manifestPath, sheet).ListParcels(ctx)
	if err != nil {
		log.Fatalf("reading manifest failed: %v", err)
	}
	if err := repositories.NewSQLParcelRepository(db).SeedParcels(ctx, parcels); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. parcels=%d", len(parcels))

	return nil
}
