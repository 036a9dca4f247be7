package geo

import (
	"math"
)

// EarthRadiusM is the mean Earth radius used for great-circle math.
const EarthRadiusM = 6371000.0

// Point is an immutable geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Distance calculates the Haversine great-circle distance between two points in meters.
func Distance(a, b Point) float64 {
	lat1Rad := degreesToRadians(a.Lat)
	lon1Rad := degreesToRadians(a.Lng)
	lat2Rad := degreesToRadians(b.Lat)
	lon2Rad := degreesToRadians(b.Lng)

	deltaLat := lat2Rad - lat1Rad
	deltaLon := lon2Rad - lon1Rad

	h := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Pow(math.Sin(deltaLon/2), 2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusM * c
}

// NearestIndex returns the index of the candidate closest to p.
// Ties go to the first occurrence. Returns -1 for an empty candidate list.
func NearestIndex(p Point, candidates []Point) int {
	if len(candidates) == 0 {
		return -1
	}

	best := 0
	bestDist := Distance(p, candidates[0])
	for i := 1; i < len(candidates); i++ {
		if d := Distance(p, candidates[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Valid reports whether the point is a plausible WGS84 coordinate.
func Valid(p Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
