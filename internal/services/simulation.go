package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/ports"
	"parcel-delivery-sim/internal/store"
)

// Assignment policies understood by SimulationConfig.
const (
	AssignmentRanges   = "ranges"
	AssignmentDistance = "distance"
)

type SimulationConfig struct {
	VehicleCount    int
	VehicleSpeed    float64
	VehicleCapacity int
	DepartAt        domain.TimeOfDay
	Assignment      string
	Ranges          []IDRange
	GatedVehicleID  int
	ReturnToDepot   bool
}

// Simulation owns every piece of state for one run: the parcel store, the
// read-only tables and the fleet. Build one per run and discard it after.
type Simulation struct {
	Store    *store.ParcelStore
	Oracle   ports.DistanceOracle
	Index    ports.LocationIndex
	Vehicles []*domain.Vehicle
	Planner  *DispatchPlanner

	result *DispatchResult
}

// NewSimulation loads the parcels into a fresh store and builds the fleet.
// Duplicate parcel IDs overwrite earlier rows, as the store does.
func NewSimulation(
	cfg SimulationConfig,
	parcels []*domain.Parcel,
	oracle ports.DistanceOracle,
	index ports.LocationIndex,
) (*Simulation, error) {
	if oracle == nil || index == nil {
		return nil, errors.New("new simulation: distance oracle and location index are required")
	}
	if cfg.VehicleCount < 1 {
		return nil, fmt.Errorf("new simulation: vehicle count must be at least 1 (got %d)", cfg.VehicleCount)
	}

	s := store.New(len(parcels) * 2)
	for _, p := range parcels {
		s.Put(p)
	}

	vehicles := make([]*domain.Vehicle, 0, cfg.VehicleCount)
	for i := 0; i < cfg.VehicleCount; i++ {
		v, err := domain.NewVehicle(i+1, cfg.VehicleSpeed, cfg.VehicleCapacity, cfg.DepartAt)
		if err != nil {
			return nil, fmt.Errorf("new simulation: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	var assign Assigner
	switch cfg.Assignment {
	case AssignmentRanges:
		if len(cfg.Ranges) == 0 {
			return nil, errors.New("new simulation: ranges assignment needs at least one range")
		}
		assign = AssignByRanges(cfg.Ranges)
	case AssignmentDistance, "":
		assign = AssignByDepotDistance(oracle, index)
	default:
		return nil, fmt.Errorf("new simulation: unknown assignment policy %q", cfg.Assignment)
	}

	engine := NewRouteEngine(s, oracle, index)
	engine.ReturnToDepot = cfg.ReturnToDepot

	return &Simulation{
		Store:    s,
		Oracle:   oracle,
		Index:    index,
		Vehicles: vehicles,
		Planner: &DispatchPlanner{
			Store:          s,
			Engine:         engine,
			Assign:         assign,
			GatedVehicleID: cfg.GatedVehicleID,
		},
	}, nil
}

// ErrCorrectionExists is returned when a parcel already has a correction.
var ErrCorrectionExists = errors.New("parcel already has an address correction")

// RegisterCorrection records the address correction for a parcel. The
// corrected destination becomes visible from c.EffectiveAt, and the parcel
// is held back from dispatch until then.
func (s *Simulation) RegisterCorrection(id int, c domain.AddressCorrection) error {
	var err error
	ok := s.Store.Update(id, func(p *domain.Parcel) {
		if p.Correction != nil {
			err = fmt.Errorf("register correction: parcel %d: %w", id, ErrCorrectionExists)
			return
		}
		p.Correction = &c
	})
	if !ok {
		return fmt.Errorf("register correction: parcel %d: %w", id, domain.ErrParcelNotFound)
	}
	return err
}

// Run dispatches every wave. It may only be called once.
func (s *Simulation) Run(ctx context.Context) (*DispatchResult, error) {
	if s.result != nil {
		return nil, errors.New("simulation run: already ran")
	}

	res, err := s.Planner.Dispatch(ctx, s.Vehicles)
	if err != nil {
		return nil, fmt.Errorf("simulation run: %w", err)
	}
	s.result = res

	log.Printf(
		"op=simulate parcels=%d waves=%d aborted=%d undelivered=%d miles=%.1f",
		s.Store.Len(), len(res.Waves), len(res.Aborted), len(res.Undelivered), s.TotalMileage(),
	)
	return res, nil
}

// Result returns the dispatch result, or nil before Run.
func (s *Simulation) Result() *DispatchResult { return s.result }

func (s *Simulation) TotalMileage() float64 {
	total := 0.0
	for _, v := range s.Vehicles {
		total += v.Mileage
	}
	return total
}

// Queries returns the read-only query surface for this run.
func (s *Simulation) Queries() *QueryService {
	mileage := make(map[int]float64, len(s.Vehicles))
	for _, v := range s.Vehicles {
		mileage[v.ID] = v.Mileage
	}
	return &QueryService{Store: s.Store, mileage: mileage}
}
