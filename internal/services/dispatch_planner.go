package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/platform/obs"
	"parcel-delivery-sim/internal/store"
	"slices"
)

// Wave is one dispatch-and-route cycle. Wave 1 carries every parcel that
// is free to leave at the start of the day; later waves carry parcels
// released at ReleaseAt.
type Wave struct {
	Number    int
	ReleaseAt *domain.TimeOfDay
	Runs      []domain.RunResult
}

type DispatchResult struct {
	Waves []Wave
	// Aborted lists the runs that stopped on an unresolvable stop.
	Aborted []domain.RunResult
	// Undelivered lists parcel IDs left without a delivery time.
	Undelivered []int
}

// DispatchPlanner sequences route-engine runs so that no time-gated parcel
// is loaded before the carrying vehicle's clock reaches its release time.
type DispatchPlanner struct {
	Store  *store.ParcelStore
	Engine *RouteEngine
	Assign Assigner
	// GatedVehicleID picks the vehicle that carries held-back parcels.
	// Zero means whichever usable vehicle has the earliest clock.
	GatedVehicleID int
}

type releaseGroup struct {
	at      domain.TimeOfDay
	parcels []*domain.Parcel
}

// Dispatch runs every wave and reports what happened. It returns an error
// only for planning failures (bad assignment); a vehicle that aborts its
// route is reported in the result and left out of later waves.
func (d *DispatchPlanner) Dispatch(ctx context.Context, vehicles []*domain.Vehicle) (_ *DispatchResult, err error) {
	defer obs.Time(ctx, "dispatch")(&err)

	if len(vehicles) == 0 {
		return nil, errors.New("dispatch: vehicle list must not be empty")
	}
	if d.Assign == nil {
		return nil, errors.New("dispatch: no assignment policy configured")
	}

	immediate := make([]*domain.Parcel, 0, d.Store.Len())
	held := map[domain.TimeOfDay][]*domain.Parcel{}
	for _, id := range d.Store.IDs() {
		p, ok := d.Store.Ref(id)
		if !ok || p.Delivered() {
			continue
		}
		if at, gated := p.HoldUntil(); gated {
			held[at] = append(held[at], p)
			continue
		}
		immediate = append(immediate, p)
	}

	if err := d.Assign(ctx, vehicles, immediate); err != nil {
		return nil, fmt.Errorf("dispatch: assign wave 1: %w", err)
	}

	res := &DispatchResult{}
	aborted := map[int]bool{}

	first := Wave{Number: 1}
	for _, v := range vehicles {
		if len(v.Load) == 0 {
			continue
		}
		run := d.Engine.Run(ctx, v)
		first.Runs = append(first.Runs, run)
		if run.Aborted() {
			aborted[v.ID] = true
			res.Aborted = append(res.Aborted, run)
		}
	}
	res.Waves = append(res.Waves, first)

	groups := make([]releaseGroup, 0, len(held))
	for at, ps := range held {
		groups = append(groups, releaseGroup{at: at, parcels: ps})
	}
	slices.SortFunc(groups, func(a, b releaseGroup) int { return cmp.Compare(a.at, b.at) })

	for _, g := range groups {
		wave := Wave{Number: len(res.Waves) + 1, ReleaseAt: g.at.Ptr()}

		remaining := g.parcels
		for len(remaining) > 0 {
			v := d.gatedVehicle(vehicles, aborted)
			if v == nil {
				log.Printf("op=dispatch wave=%d release=%s err=no usable vehicle parcels=%d", wave.Number, g.at, len(remaining))
				break
			}

			// Held parcels must never ride before their release time.
			v.AdvanceTo(g.at)

			n := len(remaining)
			if v.Capacity > 0 {
				n = min(n, v.Capacity-len(v.Load))
			}
			if n <= 0 {
				return nil, fmt.Errorf("dispatch: wave %d: vehicle %d has no free capacity: %w", wave.Number, v.ID, domain.ErrCapacityExceeded)
			}
			if err := v.LoadMultiple(remaining[:n]); err != nil {
				return nil, fmt.Errorf("dispatch: wave %d: %w", wave.Number, err)
			}
			remaining = remaining[n:]

			run := d.Engine.Run(ctx, v)
			wave.Runs = append(wave.Runs, run)
			if run.Aborted() {
				aborted[v.ID] = true
				res.Aborted = append(res.Aborted, run)
			}
		}

		log.Printf("op=dispatch wave=%d release=%s runs=%d", wave.Number, g.at, len(wave.Runs))
		res.Waves = append(res.Waves, wave)
	}

	for _, p := range d.Store.All() {
		if !p.Delivered() {
			res.Undelivered = append(res.Undelivered, p.ID)
		}
	}

	return res, nil
}

func (d *DispatchPlanner) gatedVehicle(vehicles []*domain.Vehicle, aborted map[int]bool) *domain.Vehicle {
	if d.GatedVehicleID != 0 {
		for _, v := range vehicles {
			if v.ID == d.GatedVehicleID && !aborted[v.ID] {
				return v
			}
		}
	}

	var best *domain.Vehicle
	for _, v := range vehicles {
		if aborted[v.ID] {
			continue
		}
		if best == nil || v.Clock.Before(best.Clock) || (v.Clock == best.Clock && v.ID < best.ID) {
			best = v
		}
	}
	return best
}
