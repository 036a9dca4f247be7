package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
)

type fakePinService struct {
	pins    []models.Pin
	history []models.DeliveredPin

	deleteErr   error
	completeErr error
}

func (f *fakePinService) List(ctx context.Context) ([]models.Pin, error) { return f.pins, nil }

func (f *fakePinService) Create(ctx context.Context, pin *models.Pin) (*models.Pin, error) {
	if !geo.Valid(pin.Location) {
		return nil, types.ErrInvalidCoord
	}
	pin.ID = uuid.New()
	f.pins = append(f.pins, *pin)
	return pin, nil
}

func (f *fakePinService) Import(ctx context.Context, batch []models.Pin, mode types.ImportMode) ([]models.Pin, error) {
	if len(batch) == 0 {
		return nil, types.ErrEmptyImport
	}
	if mode == types.ImportReplace {
		f.pins = nil
	}
	f.pins = append(f.pins, batch...)
	return f.pins, nil
}

func (f *fakePinService) Delete(ctx context.Context, pinID uuid.UUID) error { return f.deleteErr }

func (f *fakePinService) Complete(ctx context.Context, pinID uuid.UUID) (*models.DeliveredPin, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return &models.DeliveredPin{ID: uuid.New(), PinID: pinID, Name: "shop"}, nil
}

func (f *fakePinService) History(ctx context.Context, limit int) ([]models.DeliveredPin, error) {
	return f.history, nil
}

func newPinMux(svc *fakePinService) *http.ServeMux {
	h := NewPin(svc, logger.InitLogger("storefront-test", logger.LevelError))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /pins", h.List)
	mux.HandleFunc("POST /pins", h.Create)
	mux.HandleFunc("POST /pins/import", h.Import)
	mux.HandleFunc("DELETE /pins/{pin_id}", h.Delete)
	mux.HandleFunc("POST /pins/{pin_id}/complete", h.Complete)
	mux.HandleFunc("GET /history", h.History)
	return mux
}

func TestPinList_EmptyBoardReturnsEmptyArray(t *testing.T) {
	mux := newPinMux(&fakePinService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pins", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pins []models.Pin `json:"pins"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Pins)
	assert.Empty(t, body.Pins)
}

func TestPinCreate(t *testing.T) {
	svc := &fakePinService{}
	mux := newPinMux(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pins",
		strings.NewReader(`{"name": "shop", "lat": 16.43624, "lng": 103.5020}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.pins, 1)
	assert.Equal(t, geo.Point{Lat: 16.43624, Lng: 103.5020}, svc.pins[0].Location)
}

func TestPinCreate_MalformedBody(t *testing.T) {
	mux := newPinMux(&fakePinService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pins", strings.NewReader(`{"name":`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPinCreate_InvalidCoordinates(t *testing.T) {
	mux := newPinMux(&fakePinService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pins",
		strings.NewReader(`{"name": "off the map", "lat": 95, "lng": 0}`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPinImport_InvalidMode(t *testing.T) {
	mux := newPinMux(&fakePinService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pins/import",
		strings.NewReader(`{"mode": "merge", "pins": [{"name": "a", "lat": 1, "lng": 1}]}`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPinImport_EmptyBatch(t *testing.T) {
	mux := newPinMux(&fakePinService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pins/import",
		strings.NewReader(`{"mode": "replace", "pins": []}`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPinImport_Replace(t *testing.T) {
	svc := &fakePinService{pins: []models.Pin{{Name: "old"}}}
	mux := newPinMux(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pins/import",
		strings.NewReader(`{"mode": "replace", "pins": [{"name": "new", "lat": 1, "lng": 1}]}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.pins, 1)
	assert.Equal(t, "new", svc.pins[0].Name)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestPinDelete_BadID(t *testing.T) {
	mux := newPinMux(&fakePinService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/pins/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPinDelete_NotFound(t *testing.T) {
	mux := newPinMux(&fakePinService{deleteErr: types.ErrPinNotFound})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/pins/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPinComplete(t *testing.T) {
	mux := newPinMux(&fakePinService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pins/"+uuid.NewString()+"/complete", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Delivered models.DeliveredPin `json:"delivered"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "shop", body.Delivered.Name)
}
