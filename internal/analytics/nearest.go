package analytics

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/ourvoice/mgnrega-api/internal/models"
)

// ErrNoDistricts is returned when the reference set is empty.
var ErrNoDistricts = errors.New("no districts available")

// NearestDistrict pairs a resolved district with its planar distance
// from the query point, in coordinate degrees.
type NearestDistrict struct {
	District models.District
	Distance float64
}

// Nearest resolves a GPS coordinate to the closest district by planar
// Euclidean distance over the reference set. Ties go to the first
// minimal match in reference-set order.
//
// Planar distance is a deliberate approximation: the reference set
// spans a single small state, where the error against geodesic distance
// is negligible. A multi-state deployment would need a haversine-based
// resolver.
func Nearest(districts []models.District, latitude, longitude float64) (NearestDistrict, error) {
	if len(districts) == 0 {
		return NearestDistrict{}, ErrNoDistricts
	}

	// orb points are (lon, lat) ordered.
	query := orb.Point{longitude, latitude}

	best := NearestDistrict{
		District: districts[0],
		Distance: planar.Distance(query, orb.Point{districts[0].Longitude, districts[0].Latitude}),
	}

	for _, d := range districts[1:] {
		dist := planar.Distance(query, orb.Point{d.Longitude, d.Latitude})
		if dist < best.Distance {
			best = NearestDistrict{District: d, Distance: dist}
		}
	}

	return best, nil
}
