package route

import (
	"math"

	"github.com/umahmood/haversine"
)

// KilometresPerNauticalMile converts great-circle kilometres to nautical miles.
const KilometresPerNauticalMile = 1.852

// Distance is the length of a route.
type Distance struct {
	NauticalMiles float64 `json:"distance_nm"`
	// Segments is the number of consecutive point pairs in the route.
	Segments int `json:"segments"`
	// SkippedSegments counts pairs left out because an endpoint had invalid coordinates.
	SkippedSegments int `json:"skipped_segments"`
}

// Complete reports whether every segment contributed to the distance.
func (d Distance) Complete() bool { return d.SkippedSegments == 0 }

// ComputeDistance sums the Haversine length of each consecutive pair of points
// (Earth radius 6371 km) and returns it in nautical miles rounded to two decimals.
// Segments with an out-of-range endpoint are skipped and counted.
func ComputeDistance(points []Point) Distance {
	if len(points) < 2 {
		return Distance{}
	}

	var (
		km float64
		d  = Distance{Segments: len(points) - 1}
	)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if !a.Valid() || !b.Valid() {
			d.SkippedSegments++
			continue
		}
		_, segmentKm := haversine.Distance(
			haversine.Coord{Lat: a.Lat, Lon: a.Lng},
			haversine.Coord{Lat: b.Lat, Lon: b.Lng},
		)
		km += segmentKm
	}

	d.NauticalMiles = Round2(km / KilometresPerNauticalMile)
	return d
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
