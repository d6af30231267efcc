package dispatch

import (
	"cmp"
	"math"
	"slices"

	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/geo"
)

// rankCandidates orders eligible drivers nearest-first from the pickup point,
// breaking ties by driver id. Drivers in exclude and drivers whose distance
// cannot be computed are dropped.
func rankCandidates(o domain.Order, drivers []domain.Driver, exclude map[int64]struct{}) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(drivers))
	for _, d := range drivers {
		if !d.Eligible() {
			continue
		}
		if _, skip := exclude[d.ID]; skip {
			continue
		}
		dist := geo.DistanceKm(o.PickupLat, o.PickupLng, *d.Latitude, *d.Longitude)
		if math.IsNaN(dist) {
			continue
		}
		out = append(out, domain.Candidate{Driver: d, DistanceKm: dist})
	}

	slices.SortFunc(out, func(a, b domain.Candidate) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return cmp.Compare(a.Driver.ID, b.Driver.ID)
	})
	return out
}
