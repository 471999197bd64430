package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/ports"
	"slices"
	"strconv"
	"strings"
)

// Assigner distributes the first-wave parcels across the fleet.
type Assigner func(ctx context.Context, vehicles []*domain.Vehicle, parcels []*domain.Parcel) error

// IDRange is an inclusive span of parcel IDs.
type IDRange struct {
	From int
	To   int
}

func (r IDRange) Contains(id int) bool { return id >= r.From && id <= r.To }

// ParseRanges reads "1-16,17-32,33-40"; a bare number is a one-ID range.
func ParseRanges(s string) ([]IDRange, error) {
	var out []IDRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, found := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("parse ranges: %q: %w", part, err)
		}
		to := from
		if found {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("parse ranges: %q: %w", part, err)
			}
		}
		if to < from {
			return nil, fmt.Errorf("parse ranges: %q: end before start", part)
		}
		out = append(out, IDRange{From: from, To: to})
	}

	if len(out) == 0 {
		return nil, errors.New("parse ranges: no ranges given")
	}
	return out, nil
}

// AssignByRanges gives vehicle i every parcel whose ID falls in ranges[i].
// A parcel outside every range is a configuration error.
func AssignByRanges(ranges []IDRange) Assigner {
	return func(_ context.Context, vehicles []*domain.Vehicle, parcels []*domain.Parcel) error {
		if len(vehicles) == 0 {
			return errors.New("assign by ranges: vehicle list must not be empty")
		}
		if len(ranges) > len(vehicles) {
			return fmt.Errorf("assign by ranges: %d ranges for %d vehicles", len(ranges), len(vehicles))
		}

		for _, p := range parcels {
			i := slices.IndexFunc(ranges, func(r IDRange) bool { return r.Contains(p.ID) })
			if i < 0 {
				return fmt.Errorf("assign by ranges: parcel %d is not covered by any range", p.ID)
			}
			if err := vehicles[i].LoadParcel(p); err != nil {
				return fmt.Errorf("assign by ranges: %w", err)
			}
		}
		return nil
	}
}

// AssignByDepotDistance assigns parcels using a simple heuristic.
//
// Destinations are sorted by depot distance and chunked across vehicles to
// produce a deterministic, reasonably balanced distribution without solving
// a full VRP. Parcels sharing a destination always ride together. A
// destination that does not resolve sorts last; the route engine reports it.
func AssignByDepotDistance(oracle ports.DistanceOracle, index ports.LocationIndex) Assigner {
	return func(_ context.Context, vehicles []*domain.Vehicle, parcels []*domain.Parcel) error {
		if len(vehicles) == 0 {
			return errors.New("assign by depot distance: vehicle list must not be empty")
		}

		const unresolved = -1
		byLocation := make(map[int][]*domain.Parcel)
		depotDist := make(map[int]float64)
		for _, p := range parcels {
			loc, err := index.Resolve(p.DestinationAt(vehicles[0].Clock))
			if err != nil {
				loc = unresolved
			}
			if _, seen := depotDist[loc]; !seen {
				depotDist[loc] = math.Inf(1)
				if loc != unresolved {
					d, err := oracle.Distance(domain.DepotLocation, loc)
					if err != nil {
						return fmt.Errorf("assign by depot distance: depot -> %d: %w", loc, err)
					}
					depotDist[loc] = d
				}
			}
			byLocation[loc] = append(byLocation[loc], p)
		}

		locations := make([]int, 0, len(byLocation))
		for loc := range byLocation {
			locations = append(locations, loc)
		}

		// Sort by depot distance so each vehicle receives a contiguous band.
		slices.SortFunc(locations, func(a, b int) int {
			da, db := depotDist[a], depotDist[b]
			if da < db {
				return -1
			}
			if da > db {
				return 1
			}
			return a - b
		})

		nVehicles := len(vehicles)
		nLocs := len(locations)

		// Ceiling division: distribute destinations as evenly as possible.
		chunkSize := (nLocs + nVehicles - 1) / nVehicles

		for vi := 0; vi < nVehicles; vi++ {
			start := vi * chunkSize
			if start >= nLocs {
				break
			}
			end := min(start+chunkSize, nLocs)

			// If capacity is exceeded, assignment fails fast rather than rebalancing.
			for _, loc := range locations[start:end] {
				for _, p := range byLocation[loc] {
					if err := vehicles[vi].LoadParcel(p); err != nil {
						return fmt.Errorf("assign by depot distance: vehicle %d: %w", vehicles[vi].ID, err)
					}
				}
			}
		}

		return nil
	}
}
