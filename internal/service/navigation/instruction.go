package navigation

import (
	"math"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

// Urgency tiers by distance to the targeted maneuver, in meters.
const (
	criticalDistanceMeters = 40
	warningDistanceMeters  = 100

	// A final approach closer than this is already critical.
	arrivalCriticalMeters = 50
)

// BuildInstruction derives the maneuver guidance for the current position
// against the current route. Returns nil for routes without steps (fallback
// and arrived routes): those get distance-only guidance, by the caller.
//
// The targeted step is the one *after* the nearest step: the nearest anchor
// is usually the maneuver just passed, so guidance always points forward.
func BuildInstruction(pos geo.Point, route *models.Route) *models.Instruction {
	if route == nil || len(route.Steps) == 0 {
		return nil
	}

	closest := geo.NearestIndex(pos, route.StepLocations())

	if closest == len(route.Steps)-1 {
		dist := int(math.Round(geo.Distance(pos, route.Destination)))
		urgency := types.UrgencyWarning
		if dist < arrivalCriticalMeters {
			urgency = types.UrgencyCritical
		}
		return &models.Instruction{
			Text:           "Approaching destination",
			DistanceMeters: dist,
			Urgency:        urgency,
		}
	}

	target := route.Steps[closest+1]
	dist := int(math.Round(geo.Distance(pos, target.Location)))

	phrase := phraseFor(target)
	urgency := types.UrgencyNormal
	switch {
	case dist <= criticalDistanceMeters:
		urgency = types.UrgencyCritical
		phrase = phrase + " now"
	case dist <= warningDistanceMeters:
		urgency = types.UrgencyWarning
		phrase = "Prepare to " + lowerFirst(phrase)
	}

	return &models.Instruction{
		Text:           phrase,
		DistanceMeters: dist,
		Urgency:        urgency,
	}
}

// phraseFor maps a step's maneuver to an instruction phrase. Anything
// without a matching modifier reads as "continue straight".
func phraseFor(step models.RouteStep) string {
	if step.Type == types.ManeuverArrive {
		return "Arrive at destination"
	}

	switch step.Modifier {
	case types.ModifierLeft:
		return "Turn left"
	case types.ModifierRight:
		return "Turn right"
	case types.ModifierSlightLeft:
		return "Keep slightly left"
	case types.ModifierSlightRight:
		return "Keep slightly right"
	case types.ModifierUturn:
		return "Make a U-turn"
	default:
		return "Continue straight"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	// Phrases are plain ASCII.
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
