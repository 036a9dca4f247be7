package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/twpayne/go-polyline"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	"github.com/Nhongkham198/pinCustomer/pkg/metrics"
)

const (
	// Requests closer than this report "arrived" without a network call.
	arrivalThresholdMeters = 50.0

	defaultBaseURL    = "https://router.project-osrm.org"
	defaultProfile    = "driving"
	defaultGeometries = "geojson"
	defaultAttempts   = 3
	defaultRetryDelay = time.Second
)

// Config holds the routing service settings.
type Config struct {
	BaseURL    string
	Profile    string
	Geometries string // "geojson" or "polyline"
	Timeout    time.Duration
	Service    string // metrics label
}

// Client calls a public OSRM routing instance. It never mutates shared
// state; the caller owns every route it returns.
type Client struct {
	baseURL    string
	profile    string
	geometries string
	service    string
	attempts   int
	retryDelay time.Duration
	httpClient *http.Client

	log logger.Logger
}

func New(cfg Config, log logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Profile == "" {
		cfg.Profile = defaultProfile
	}
	if cfg.Geometries == "" {
		cfg.Geometries = defaultGeometries
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		profile:    cfg.Profile,
		geometries: cfg.Geometries,
		service:    cfg.Service,
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// ComputeRoute requests a driving route with full geometry and per-step
// maneuvers. Transient failures are retried with a fixed delay; when all
// attempts are exhausted or the response is malformed, a straight-line
// fallback route is returned instead of an error. Turn-by-turn guidance
// degrades gracefully on fallback routes: they carry no steps.
func (c *Client) ComputeRoute(ctx context.Context, origin, destination geo.Point) (*models.Route, error) {
	const op = "osrm.ComputeRoute"

	if !geo.Valid(origin) || !geo.Valid(destination) {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, types.ErrInvalidCoord))
	}

	// Near-zero-distance requests would only produce routing noise.
	if d := geo.Distance(origin, destination); d < arrivalThresholdMeters {
		return &models.Route{
			Polyline:       []geo.Point{origin, destination},
			DistanceMeters: math.Round(d),
			Destination:    destination,
			Arrived:        true,
		}, nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		route, err := c.fetch(ctx, origin, destination)
		metrics.RecordRoutingRequest(c.service, err)
		if err == nil {
			return route, nil
		}
		lastErr = err

		if attempt < c.attempts {
			select {
			case <-ctx.Done():
				return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, ctx.Err()))
			case <-time.After(c.retryDelay):
			}
		}
	}

	ctx = wrap.WithAction(ctx, types.ActionRouteFallback)
	c.log.Warn(ctx, "routing attempts exhausted, degrading to straight-line route",
		"attempts", c.attempts,
		"err", lastErr.Error(),
	)
	metrics.RoutingFallbacksTotal.WithLabelValues(c.service).Inc()

	return c.fallbackRoute(origin, destination), nil
}

// fetch performs one request against the routing service.
func (c *Client) fetch(ctx context.Context, origin, destination geo.Point) (*models.Route, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=%s&steps=true",
		c.baseURL, c.profile,
		origin.Lng, origin.Lat,
		destination.Lng, destination.Lat,
		c.geometries,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request to routing service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status %d", resp.StatusCode)
	}

	var payload routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}

	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		return nil, fmt.Errorf("routing service returned code %q with %d routes", payload.Code, len(payload.Routes))
	}

	return c.toRoute(payload.Routes[0], destination)
}

func (c *Client) toRoute(r osrmRoute, destination geo.Point) (*models.Route, error) {
	line, err := c.decodeGeometry(r.Geometry)
	if err != nil {
		return nil, err
	}

	var steps []models.RouteStep
	if len(r.Legs) > 0 {
		steps = make([]models.RouteStep, 0, len(r.Legs[0].Steps))
		for _, s := range r.Legs[0].Steps {
			steps = append(steps, models.RouteStep{
				Location: geo.Point{Lat: s.Maneuver.Location[1], Lng: s.Maneuver.Location[0]},
				Type:     types.ManeuverType(s.Maneuver.Type),
				Modifier: types.ManeuverModifier(s.Maneuver.Modifier),
			})
		}
	}

	return &models.Route{
		Steps:           steps,
		Polyline:        line,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Destination:     destination,
	}, nil
}

// decodeGeometry handles both geometry encodings OSRM can be asked for:
// a GeoJSON LineString or an encoded polyline string.
func (c *Client) decodeGeometry(raw json.RawMessage) ([]geo.Point, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("routing response has no geometry")
	}

	if c.geometries == "polyline" {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("failed to decode polyline geometry: %w", err)
		}
		coords, _, err := polyline.DecodeCoords([]byte(encoded))
		if err != nil {
			return nil, fmt.Errorf("failed to decode polyline: %w", err)
		}
		line := make([]geo.Point, len(coords))
		for i, c := range coords {
			line[i] = geo.Point{Lat: c[0], Lng: c[1]}
		}
		return line, nil
	}

	var geometry struct {
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &geometry); err != nil {
		return nil, fmt.Errorf("failed to decode geojson geometry: %w", err)
	}

	line := make([]geo.Point, 0, len(geometry.Coordinates))
	for _, coord := range geometry.Coordinates {
		if len(coord) < 2 {
			return nil, fmt.Errorf("geojson coordinate has %d components", len(coord))
		}
		line = append(line, geo.Point{Lat: coord[1], Lng: coord[0]})
	}
	return line, nil
}

// fallbackRoute is a direct two-point segment between origin and destination.
func (c *Client) fallbackRoute(origin, destination geo.Point) *models.Route {
	return &models.Route{
		Polyline:       []geo.Point{origin, destination},
		DistanceMeters: geo.Distance(origin, destination),
		Destination:    destination,
		Fallback:       true,
	}
}

// Wire format of the OSRM /route/v1 response.
type routeResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Geometry json.RawMessage `json:"geometry"`
	Legs     []osrmLeg       `json:"legs"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmStep struct {
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmManeuver struct {
	Location [2]float64 `json:"location"` // lng, lat
	Type     string     `json:"type"`
	Modifier string     `json:"modifier,omitempty"`
}
