package types

type ServiceMode string

// Storefront Service - Owns delivery pins, carts, orders and delivery history
// Navigator Service - Owns tracking sessions, route computation and turn-by-turn guidance
const (
	StorefrontService ServiceMode = "storefront-service"
	NavigatorService  ServiceMode = "navigator-service"
)

// AccuracyMode is the positioning mode requested from the device.
// High accuracy is GPS-grade and slower to acquire; low accuracy is
// network/cell-grade, faster and less precise.
type AccuracyMode string

const (
	AccuracyHigh AccuracyMode = "HIGH"
	AccuracyLow  AccuracyMode = "LOW"
)

// TrackingState is the lifecycle state of one tracking session.
type TrackingState string

const (
	TrackingIdle      TrackingState = "IDLE"
	TrackingAcquiring TrackingState = "ACQUIRING"
	TrackingActive    TrackingState = "TRACKING"
	TrackingDenied    TrackingState = "DENIED"
	TrackingStopped   TrackingState = "STOPPED"
)

// Urgency classifies how soon the next maneuver occurs.
type Urgency string

const (
	UrgencyNormal   Urgency = "NORMAL"
	UrgencyWarning  Urgency = "WARNING"
	UrgencyCritical Urgency = "CRITICAL"
)

// ManeuverType is the kind of maneuver anchored at a route step.
type ManeuverType string

const (
	ManeuverTurn       ManeuverType = "turn"
	ManeuverDepart     ManeuverType = "depart"
	ManeuverArrive     ManeuverType = "arrive"
	ManeuverContinue   ManeuverType = "continue"
	ManeuverMerge      ManeuverType = "merge"
	ManeuverRoundabout ManeuverType = "roundabout"
)

// ManeuverModifier refines the maneuver direction.
type ManeuverModifier string

const (
	ModifierLeft        ManeuverModifier = "left"
	ModifierRight       ManeuverModifier = "right"
	ModifierSlightLeft  ManeuverModifier = "slight left"
	ModifierSlightRight ManeuverModifier = "slight right"
	ModifierUturn       ManeuverModifier = "uturn"
	ModifierStraight    ManeuverModifier = "straight"
)

// ImportMode controls how an imported pin batch is applied.
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportAppend  ImportMode = "append"
)

// OrderStatus is the lifecycle state of a storefront order.
type OrderStatus string

const (
	OrderSubmitted OrderStatus = "SUBMITTED"
	OrderPrinted   OrderStatus = "PRINTED"
	OrderDelivered OrderStatus = "DELIVERED"
)
