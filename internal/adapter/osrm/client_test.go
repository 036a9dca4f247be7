package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
)

var (
	testShop = geo.Point{Lat: 16.43624, Lng: 103.5020}
	testDest = geo.Point{Lat: 16.46, Lng: 103.52}
)

const okResponse = `{
	"code": "Ok",
	"routes": [{
		"distance": 3214.5,
		"duration": 412.2,
		"geometry": {"type": "LineString", "coordinates": [[103.5020, 16.43624], [103.51, 16.45], [103.52, 16.46]]},
		"legs": [{
			"steps": [
				{"maneuver": {"location": [103.5020, 16.43624], "type": "depart"}},
				{"maneuver": {"location": [103.51, 16.45], "type": "turn", "modifier": "left"}},
				{"maneuver": {"location": [103.52, 16.46], "type": "arrive"}}
			]
		}]
	}]
}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := New(Config{BaseURL: baseURL, Service: "test"}, logger.InitLogger("test", logger.LevelError))
	c.retryDelay = time.Millisecond
	return c
}

func TestComputeRoute_ParsesStepsAndGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/driving/")
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "true", r.URL.Query().Get("steps"))
		w.Write([]byte(okResponse))
	}))
	defer srv.Close()

	route, err := newTestClient(t, srv.URL).ComputeRoute(context.Background(), testShop, testDest)
	require.NoError(t, err)

	assert.False(t, route.Fallback)
	assert.InDelta(t, 3214.5, route.DistanceMeters, 0.01)
	assert.InDelta(t, 412.2, route.DurationSeconds, 0.01)
	assert.Len(t, route.Polyline, 3)
	require.Len(t, route.Steps, 3)
	assert.Equal(t, types.ManeuverTurn, route.Steps[1].Type)
	assert.Equal(t, types.ModifierLeft, route.Steps[1].Modifier)
	// maneuver location arrives as lng,lat and must be swapped
	assert.InDelta(t, 16.45, route.Steps[1].Location.Lat, 1e-9)
	assert.InDelta(t, 103.51, route.Steps[1].Location.Lng, 1e-9)
	assert.Equal(t, testDest, route.Destination)
}

func TestComputeRoute_PolylineGeometry(t *testing.T) {
	// Encoded form of [[38.5, -120.2], [40.7, -120.95], [43.252, -126.453]]
	const encoded = `"_p~iF~ps|U_ulLnnqC_mqNvxq`+"`"+`@"`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":10,"duration":1,"geometry":` + encoded + `,"legs":[]}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.geometries = "polyline"

	route, err := c.ComputeRoute(context.Background(), testShop, testDest)
	require.NoError(t, err)
	require.Len(t, route.Polyline, 3)
	assert.InDelta(t, 38.5, route.Polyline[0].Lat, 1e-9)
	assert.InDelta(t, -120.2, route.Polyline[0].Lng, 1e-9)
	assert.Empty(t, route.Steps)
}

func TestComputeRoute_RetriesThenFallsBack(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	route, err := newTestClient(t, srv.URL).ComputeRoute(context.Background(), testShop, testDest)
	require.NoError(t, err)

	assert.Equal(t, 3, attempts, "exactly 3 total attempts")
	assert.True(t, route.Fallback)
	assert.Empty(t, route.Steps)
	assert.Equal(t, []geo.Point{testShop, testDest}, route.Polyline, "fallback polyline is the straight two-point segment")
	assert.InDelta(t, geo.Distance(testShop, testDest), route.DistanceMeters, 0.01)
}

func TestComputeRoute_MalformedResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[{"geometry":`))
	}))
	defer srv.Close()

	route, err := newTestClient(t, srv.URL).ComputeRoute(context.Background(), testShop, testDest)
	require.NoError(t, err)
	assert.True(t, route.Fallback)
}

func TestComputeRoute_NonOkCodeFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	route, err := newTestClient(t, srv.URL).ComputeRoute(context.Background(), testShop, testDest)
	require.NoError(t, err)
	assert.True(t, route.Fallback)
}

func TestComputeRoute_ArrivedSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected for near-zero-distance requests")
	}))
	defer srv.Close()

	near := geo.Point{Lat: testShop.Lat + 0.0002, Lng: testShop.Lng} // ~22m north

	route, err := newTestClient(t, srv.URL).ComputeRoute(context.Background(), testShop, near)
	require.NoError(t, err)

	assert.True(t, route.Arrived)
	assert.Empty(t, route.Steps)
	assert.Equal(t, []geo.Point{testShop, near}, route.Polyline)
	assert.Equal(t, float64(int(route.DistanceMeters)), route.DistanceMeters, "distance is rounded to the nearest meter")
}

func TestComputeRoute_SamePointArrives(t *testing.T) {
	route, err := newTestClient(t, "http://127.0.0.1:0").ComputeRoute(context.Background(), testShop, testShop)
	require.NoError(t, err)
	assert.True(t, route.Arrived)
	assert.Zero(t, route.DistanceMeters)
}

func TestComputeRoute_InvalidCoordinates(t *testing.T) {
	_, err := newTestClient(t, "http://127.0.0.1:0").ComputeRoute(context.Background(), geo.Point{Lat: 200}, testDest)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidCoord)
}
