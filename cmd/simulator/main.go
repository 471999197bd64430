package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"parcel-delivery-sim/internal/adapters/cache"
	"parcel-delivery-sim/internal/adapters/repositories"
	"parcel-delivery-sim/internal/adapters/tables"
	"parcel-delivery-sim/internal/api"
	"parcel-delivery-sim/internal/cli"
	"parcel-delivery-sim/internal/config"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/platform/db"
	"parcel-delivery-sim/internal/platform/obs"
	"parcel-delivery-sim/internal/ports"
	"parcel-delivery-sim/internal/services"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It loads the tables, runs the simulation once, records the results and
// then serves queries from the menu or over HTTP.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)

	sqliteDB, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	if err := repositories.InitSchema(ctx, sqliteDB); err != nil {
		log.Fatal(err)
	}

	var pg *sql.DB
	if cfg.DatabaseURL != "" {
		if pg, err = db.Open(ctx, cfg.DatabaseURL); err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := repositories.InitPostgresSchema(ctx, pg); err != nil {
			log.Fatal(err)
		}
	}

	sim, err := buildSimulation(ctx, cfg, sqliteDB, pg)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := sim.Run(ctx); err != nil {
		log.Fatal(err)
	}
	for _, run := range sim.Result().Aborted {
		log.Printf("op=simulate vehicle=%d outcome=%s remaining=%v err=%v", run.VehicleID, run.Outcome, run.Remaining, run.Err)
	}

	sinks := []ports.ResultSink{repositories.NewSqliteResultRepository(sqliteDB)}
	if pg != nil {
		sinks = append(sinks, repositories.NewSQLResultRepository(pg))
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		sinks = append(sinks, cache.NewRedisSnapshotPublisher(rdb))
	}

	if err := saveRun(ctx, runID, sim, sinks); err != nil {
		log.Fatal(err)
	}

	queries := sim.Queries()
	switch cfg.Mode {
	case config.ModeHTTP:
		err = serve(ctx, cfg.Port, queries)
	default:
		err = cli.NewMenu(queries, os.Stdin, os.Stdout).Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func buildSimulation(ctx context.Context, cfg config.Config, sqliteDB, pg *sql.DB) (*services.Simulation, error) {
	oracle, err := tables.LoadDistanceOracle(cfg.DistancePath, cfg.XLSXSheet)
	if err != nil {
		return nil, fmt.Errorf("build simulation: %w", err)
	}
	index, err := tables.LoadAddressIndex(cfg.AddressPath, cfg.XLSXSheet)
	if err != nil {
		return nil, fmt.Errorf("build simulation: %w", err)
	}

	parcels, err := loadManifest(ctx, cfg, sqliteDB, pg)
	if err != nil {
		return nil, fmt.Errorf("build simulation: %w", err)
	}
	log.Printf("op=load parcels=%d locations=%d source=%s", len(parcels), oracle.Size(), cfg.ManifestSource)

	sim, err := services.NewSimulation(cfg.Simulation, parcels, oracle, index)
	if err != nil {
		return nil, fmt.Errorf("build simulation: %w", err)
	}

	if cfg.CorrectionParcelID != 0 {
		err := sim.RegisterCorrection(cfg.CorrectionParcelID, cfg.Correction)
		if errors.Is(err, domain.ErrParcelNotFound) {
			log.Printf("op=correction parcel=%d skipped=true reason=not_in_manifest", cfg.CorrectionParcelID)
		} else if err != nil {
			return nil, fmt.Errorf("build simulation: %w", err)
		}
	}

	return sim, nil
}

// loadManifest reads parcels from the configured source. An empty SQLite
// manifest is seeded from the manifest file on first use.
func loadManifest(ctx context.Context, cfg config.Config, sqliteDB, pg *sql.DB) ([]*domain.Parcel, error) {
	file := tables.NewFileParcelRepository(cfg.ManifestPath, cfg.XLSXSheet)

	var repo ports.ParcelRepository
	switch cfg.ManifestSource {
	case config.SourcePostgres:
		if pg == nil {
			return nil, errors.New("load manifest: MANIFEST_SOURCE=postgres needs DATABASE_URL")
		}
		repo = repositories.NewSQLParcelRepository(pg)
	case config.SourceSQLite:
		sqliteRepo := repositories.NewSqliteParcelRepository(sqliteDB)
		parcels, err := sqliteRepo.ListParcels(ctx)
		if err != nil {
			return nil, fmt.Errorf("load manifest: %w", err)
		}
		if len(parcels) > 0 {
			return parcels, nil
		}

		seed, err := file.ListParcels(ctx)
		if err != nil {
			return nil, fmt.Errorf("load manifest: %w", err)
		}
		if err := sqliteRepo.SeedParcels(ctx, seed); err != nil {
			return nil, fmt.Errorf("load manifest: %w", err)
		}
		repo = sqliteRepo
	default:
		repo = file
	}

	parcels, err := repo.ListParcels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	return parcels, nil
}

// saveRun hands the finished state to every sink concurrently.
func saveRun(ctx context.Context, runID string, sim *services.Simulation, sinks []ports.ResultSink) error {
	parcels := sim.Store.All()
	vehicles := make([]domain.Vehicle, 0, len(sim.Vehicles))
	for _, v := range sim.Vehicles {
		vehicles = append(vehicles, *v)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, sink := range sinks {
		g.Go(func() error {
			return sink.SaveRun(gctx, runID, parcels, vehicles)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("save run %s: %w", runID, err)
	}

	log.Printf("op=save_run run_id=%s sinks=%d", runID, len(sinks))
	return nil
}

func serve(ctx context.Context, port string, queries *services.QueryService) error {
	router := api.NewRouter(queries, api.NewMetrics())

	// Queries read in-memory state only, so the timeouts can stay short.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
