// Package config reads runtime settings from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"log"
	"os"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/services"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ModeMenu = "menu"
	ModeHTTP = "http"

	SourceFiles    = "files"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

type Config struct {
	DistancePath string
	AddressPath  string
	ManifestPath string
	XLSXSheet    string

	ManifestSource string
	DBPath         string
	DatabaseURL    string
	RedisAddr      string

	Mode string
	Port string

	Simulation services.SimulationConfig

	// CorrectionParcelID is zero when no correction is modeled.
	CorrectionParcelID int
	Correction         domain.AddressCorrection
}

// LoadDotEnv loads .env when present. Missing files are not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return f, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config %s: %w", key, err)
	}
	return b, nil
}

// Load reads the full configuration. Defaults reproduce the reference
// scenario: three vehicles at 18 mph leaving at 08:00 with sixteen-parcel
// loads, and parcel 9's address corrected at 10:20.
func Load() (Config, error) {
	cfg := Config{
		DistancePath:   Get("DISTANCE_PATH", "data/distances.csv"),
		AddressPath:    Get("ADDRESS_PATH", "data/addresses.csv"),
		ManifestPath:   Get("MANIFEST_PATH", "data/parcels.csv"),
		XLSXSheet:      Get("XLSX_SHEET", ""),
		ManifestSource: Get("MANIFEST_SOURCE", SourceFiles),
		DBPath:         Get("DB_PATH", "data/app.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		Mode:           Get("MODE", ModeMenu),
		Port:           Get("PORT", "8080"),
	}

	switch cfg.Mode {
	case ModeMenu, ModeHTTP:
	default:
		return Config{}, fmt.Errorf("config MODE: unknown mode %q", cfg.Mode)
	}
	switch cfg.ManifestSource {
	case SourceFiles, SourcePostgres, SourceSQLite:
	default:
		return Config{}, fmt.Errorf("config MANIFEST_SOURCE: unknown source %q", cfg.ManifestSource)
	}

	sim, err := loadSimulation()
	if err != nil {
		return Config{}, err
	}
	cfg.Simulation = sim

	if cfg.CorrectionParcelID, err = GetInt("CORRECTION_PARCEL_ID", 9); err != nil {
		return Config{}, err
	}
	if cfg.CorrectionParcelID != 0 {
		at, err := domain.ParseTimeOfDay(Get("CORRECTION_AT", "10:20:00"))
		if err != nil {
			return Config{}, fmt.Errorf("config CORRECTION_AT: %w", err)
		}
		addr, err := ParseAddress(Get("CORRECTION_ADDRESS", "410 S State St|Salt Lake City|UT|84111"))
		if err != nil {
			return Config{}, fmt.Errorf("config CORRECTION_ADDRESS: %w", err)
		}
		cfg.Correction = domain.AddressCorrection{EffectiveAt: at, Address: addr}
	}

	return cfg, nil
}

func loadSimulation() (services.SimulationConfig, error) {
	var (
		sim services.SimulationConfig
		err error
	)

	if sim.VehicleCount, err = GetInt("VEHICLE_COUNT", 3); err != nil {
		return sim, err
	}
	if sim.VehicleSpeed, err = GetFloat("VEHICLE_SPEED", 18); err != nil {
		return sim, err
	}
	if sim.VehicleCapacity, err = GetInt("VEHICLE_CAPACITY", 16); err != nil {
		return sim, err
	}
	if sim.GatedVehicleID, err = GetInt("GATED_VEHICLE_ID", 0); err != nil {
		return sim, err
	}
	if sim.ReturnToDepot, err = GetBool("RETURN_TO_DEPOT", false); err != nil {
		return sim, err
	}

	if sim.DepartAt, err = domain.ParseTimeOfDay(Get("DEPART_AT", "08:00:00")); err != nil {
		return sim, fmt.Errorf("config DEPART_AT: %w", err)
	}

	sim.Assignment = Get("ASSIGNMENT", services.AssignmentRanges)
	if sim.Assignment == services.AssignmentRanges {
		if sim.Ranges, err = services.ParseRanges(Get("VEHICLE_RANGES", "1-16,17-32,33-40")); err != nil {
			return sim, fmt.Errorf("config VEHICLE_RANGES: %w", err)
		}
	}

	return sim, nil
}

// ParseAddress reads "street|city|state|zip".
func ParseAddress(s string) (domain.Address, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 4 {
		return domain.Address{}, fmt.Errorf("want street|city|state|zip, got %q", s)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" {
		return domain.Address{}, fmt.Errorf("street must not be empty in %q", s)
	}
	return domain.Address{Street: parts[0], City: parts[1], State: parts[2], Zip: parts[3]}, nil
}
