package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

var base = geo.Point{Lat: 16.43624, Lng: 103.5020}

// north shifts a point due north by the given number of meters, so the
// Haversine distance back to p is the same number.
func north(p geo.Point, meters float64) geo.Point {
	return geo.Point{Lat: p.Lat + meters/111194.93, Lng: p.Lng}
}

func turnStep(loc geo.Point, mod types.ManeuverModifier) models.RouteStep {
	return models.RouteStep{Location: loc, Type: types.ManeuverTurn, Modifier: mod}
}

func TestBuildInstruction_NoRoute(t *testing.T) {
	assert.Nil(t, BuildInstruction(base, nil))
	assert.Nil(t, BuildInstruction(base, &models.Route{}))
}

func TestBuildInstruction_TargetsStepAfterNearest(t *testing.T) {
	route := &models.Route{
		Steps: []models.RouteStep{
			turnStep(base, types.ModifierStraight),
			turnStep(north(base, 200), types.ModifierLeft),
			turnStep(north(base, 400), types.ModifierRight),
		},
		Destination: north(base, 400),
	}

	// Standing exactly on the second maneuver: guidance must point at the
	// third, not re-announce the one just passed.
	instr := BuildInstruction(north(base, 200), route)
	require.NotNil(t, instr)
	assert.Equal(t, "Turn right", instr.Text)
	assert.Equal(t, 200, instr.DistanceMeters)
	assert.Equal(t, types.UrgencyNormal, instr.Urgency)
}

func TestBuildInstruction_Urgency(t *testing.T) {
	routeAt := func(d float64) *models.Route {
		return &models.Route{
			Steps: []models.RouteStep{
				turnStep(base, types.ModifierStraight),
				turnStep(north(base, d), types.ModifierLeft),
				turnStep(north(base, d+5000), types.ModifierRight),
			},
			Destination: north(base, d+5000),
		}
	}

	tests := []struct {
		name    string
		dist    float64
		urgency types.Urgency
		text    string
	}{
		{"critical at threshold", 40, types.UrgencyCritical, "Turn left now"},
		{"warning just past critical", 41, types.UrgencyWarning, "Prepare to turn left"},
		{"warning at threshold", 100, types.UrgencyWarning, "Prepare to turn left"},
		{"normal beyond warning", 101, types.UrgencyNormal, "Turn left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instr := BuildInstruction(base, routeAt(tt.dist))
			require.NotNil(t, instr)
			assert.Equal(t, tt.urgency, instr.Urgency)
			assert.Equal(t, tt.text, instr.Text)
		})
	}
}

func TestBuildInstruction_ApproachingDestination(t *testing.T) {
	dest := north(base, 300)
	route := &models.Route{
		Steps: []models.RouteStep{
			turnStep(base, types.ModifierStraight),
			{Location: dest, Type: types.ManeuverArrive},
		},
		Destination: dest,
	}

	instr := BuildInstruction(north(base, 280), route)
	require.NotNil(t, instr)
	assert.Equal(t, "Approaching destination", instr.Text)
	assert.Equal(t, 20, instr.DistanceMeters)
	assert.Equal(t, types.UrgencyCritical, instr.Urgency)

	instr = BuildInstruction(north(base, 200), route)
	require.NotNil(t, instr)
	assert.Equal(t, 100, instr.DistanceMeters)
	assert.Equal(t, types.UrgencyWarning, instr.Urgency)
}

func TestBuildInstruction_ModifierPhrases(t *testing.T) {
	far := 5000.0
	tests := []struct {
		mod  types.ManeuverModifier
		text string
	}{
		{types.ModifierLeft, "Turn left"},
		{types.ModifierRight, "Turn right"},
		{types.ModifierSlightLeft, "Keep slightly left"},
		{types.ModifierSlightRight, "Keep slightly right"},
		{types.ModifierUturn, "Make a U-turn"},
		{types.ModifierStraight, "Continue straight"},
		{"", "Continue straight"},
	}
	for _, tt := range tests {
		route := &models.Route{
			Steps: []models.RouteStep{
				turnStep(base, types.ModifierStraight),
				turnStep(north(base, far), tt.mod),
				turnStep(north(base, 2*far), types.ModifierLeft),
			},
			Destination: north(base, 2*far),
		}
		instr := BuildInstruction(base, route)
		require.NotNil(t, instr)
		assert.Equal(t, tt.text, instr.Text)
	}
}
