package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The shop sits in Kalasin province; most deliveries are within a 10 km radius.
var shop = Point{Lat: 16.43624, Lng: 103.5020}

func TestDistance_Identity(t *testing.T) {
	points := []Point{
		shop,
		{Lat: 0, Lng: 0},
		{Lat: -33.8688, Lng: 151.2093},
	}
	for _, p := range points {
		assert.Zero(t, Distance(p, p))
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := shop
	b := Point{Lat: 16.45, Lng: 103.51}
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistance_KnownPair(t *testing.T) {
	// One hundredth of a degree of latitude is ~1,113 m everywhere on the sphere.
	north := Point{Lat: shop.Lat + 0.01, Lng: shop.Lng}
	d := Distance(shop, north)
	assert.InDelta(t, 1113, d, 1113*0.05, "0.01 deg north should be ~1113m")
}

func TestNearestIndex_SingleCandidate(t *testing.T) {
	queries := []Point{shop, {Lat: 80, Lng: -170}, {Lat: -5, Lng: 30}}
	candidates := []Point{{Lat: 16.44, Lng: 103.50}}
	for _, q := range queries {
		assert.Equal(t, 0, NearestIndex(q, candidates))
	}
}

func TestNearestIndex_Empty(t *testing.T) {
	assert.Equal(t, -1, NearestIndex(shop, nil))
}

func TestNearestIndex_TieBreaksFirst(t *testing.T) {
	same := Point{Lat: 16.44, Lng: 103.50}
	candidates := []Point{same, same, {Lat: 17, Lng: 104}}
	assert.Equal(t, 0, NearestIndex(shop, candidates))
}

func TestNearestIndex_PicksMinimum(t *testing.T) {
	candidates := []Point{
		{Lat: 16.50, Lng: 103.55},
		{Lat: 16.4365, Lng: 103.5021}, // a few meters from the shop
		{Lat: 16.30, Lng: 103.40},
	}
	assert.Equal(t, 1, NearestIndex(shop, candidates))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(shop))
	assert.False(t, Valid(Point{Lat: 91, Lng: 0}))
	assert.False(t, Valid(Point{Lat: 0, Lng: 181}))
}

func BenchmarkDistance(b *testing.B) {
	p := Point{Lat: 16.45, Lng: 103.51}
	for b.Loop() {
		_ = Distance(shop, p)
	}
}
