package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/ports"
	"parcel-delivery-sim/internal/store"
)

// RouteEngine delivers a vehicle's load using a greedy nearest-neighbor rule.
//
// At each step it drives to the closest remaining destination. It does not
// attempt global route optimization; ties go to the parcel loaded first.
type RouteEngine struct {
	Store  *store.ParcelStore
	Oracle ports.DistanceOracle
	Index  ports.LocationIndex
	// ReturnToDepot adds the leg back to the depot after the last stop.
	ReturnToDepot bool
}

func NewRouteEngine(s *store.ParcelStore, oracle ports.DistanceOracle, index ports.LocationIndex) *RouteEngine {
	return &RouteEngine{Store: s, Oracle: oracle, Index: index}
}

type candidate struct {
	pos      int
	location int
	distance float64
}

// Run empties the vehicle's load, stamping each parcel as it is delivered.
//
// Every parcel on the load departs when the vehicle leaves the depot and is
// delivered when the vehicle reaches its destination. The start of the leg
// that reached each parcel is reported in Stop.DepartAt. If a destination
// cannot be resolved the run stops there: the parcels already delivered
// keep their stamps and the rest stay on the vehicle.
func (e *RouteEngine) Run(ctx context.Context, v *domain.Vehicle) domain.RunResult {
	v.ReturnToDepot()

	res := domain.RunResult{
		VehicleID: v.ID,
		StartAt:   v.Clock,
		Stops:     make([]domain.Stop, 0, len(v.Load)),
	}
	leftDepotAt := v.Clock

	for len(v.Load) > 0 {
		if err := ctx.Err(); err != nil {
			return e.abort(v, res, fmt.Errorf("route vehicle %d: %w", v.ID, err))
		}

		next, err := e.nearest(v)
		if err != nil {
			return e.abort(v, res, fmt.Errorf("route vehicle %d: %w", v.ID, err))
		}

		p := v.Unload(next.pos)
		legStart := v.Clock
		arrive := v.Drive(next.location, next.distance)

		stamp := func(rec *domain.Parcel) {
			rec.VehicleID = v.ID
			rec.DepartureTime = leftDepotAt.Ptr()
			rec.DeliveryTime = arrive.Ptr()
		}
		if !e.Store.Update(p.ID, stamp) {
			stamp(p)
			e.Store.Put(p)
		}

		res.Distance += next.distance
		res.Stops = append(res.Stops, domain.Stop{
			ParcelID: p.ID,
			Location: next.location,
			Distance: next.distance,
			DepartAt: legStart,
			ArriveAt: arrive,
		})
	}

	if e.ReturnToDepot && v.Location != domain.DepotLocation {
		back, err := e.Oracle.Distance(v.Location, domain.DepotLocation)
		if err != nil {
			return e.abort(v, res, fmt.Errorf("route vehicle %d: return leg from %d: %w", v.ID, v.Location, err))
		}
		v.Drive(domain.DepotLocation, back)
		res.Distance += back
	}

	res.EndAt = v.Clock
	res.Outcome = domain.OutcomeCompleted

	log.Printf(
		"op=route vehicle=%d outcome=%s stops=%d miles=%.1f start=%s end=%s",
		v.ID, res.Outcome, len(res.Stops), res.Distance, res.StartAt, res.EndAt,
	)
	return res
}

// nearest selects the next stop among the parcels still on the vehicle.
func (e *RouteEngine) nearest(v *domain.Vehicle) (candidate, error) {
	best := candidate{pos: -1, distance: math.Inf(1)}

	for i, p := range v.Load {
		dest := p.DestinationAt(v.Clock)
		loc, err := e.Index.Resolve(dest)
		if err != nil {
			return candidate{}, fmt.Errorf("parcel %d: %w", p.ID, err)
		}

		d, err := e.Oracle.Distance(v.Location, loc)
		if err != nil {
			return candidate{}, fmt.Errorf("parcel %d: distance %d -> %d: %w", p.ID, v.Location, loc, err)
		}

		// Strict comparison keeps the earliest-loaded parcel on ties.
		if d < best.distance {
			best = candidate{pos: i, location: loc, distance: d}
		}
	}

	if best.pos < 0 {
		return candidate{}, errors.New("failed to select next stop")
	}
	return best, nil
}

func (e *RouteEngine) abort(v *domain.Vehicle, res domain.RunResult, err error) domain.RunResult {
	res.EndAt = v.Clock
	res.Outcome = domain.OutcomeAborted
	res.Err = err
	res.Remaining = make([]int, 0, len(v.Load))
	for _, p := range v.Load {
		res.Remaining = append(res.Remaining, p.ID)
	}

	log.Printf(
		"op=route vehicle=%d outcome=%s stops=%d remaining=%v err=%v",
		v.ID, res.Outcome, len(res.Stops), res.Remaining, err,
	)
	return res
}
