package pins

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
)

type fakePinRepo struct {
	pins map[uuid.UUID]models.Pin
	// failCreateAfter fails the n-th Create call when > 0.
	failCreateAfter int
	creates         int
}

func newFakePinRepo() *fakePinRepo {
	return &fakePinRepo{pins: make(map[uuid.UUID]models.Pin)}
}

func (r *fakePinRepo) Create(_ context.Context, pin *models.Pin) (*models.Pin, error) {
	r.creates++
	if r.failCreateAfter > 0 && r.creates >= r.failCreateAfter {
		return nil, errors.New("insert failed")
	}
	pin.ID = uuid.New()
	r.pins[pin.ID] = *pin
	return pin, nil
}

func (r *fakePinRepo) Get(_ context.Context, pinID uuid.UUID) (*models.Pin, error) {
	pin, ok := r.pins[pinID]
	if !ok {
		return nil, types.ErrPinNotFound
	}
	return &pin, nil
}

func (r *fakePinRepo) List(_ context.Context) ([]models.Pin, error) {
	out := make([]models.Pin, 0, len(r.pins))
	for _, pin := range r.pins {
		out = append(out, pin)
	}
	return out, nil
}

func (r *fakePinRepo) Delete(_ context.Context, pinID uuid.UUID) error {
	if _, ok := r.pins[pinID]; !ok {
		return types.ErrPinNotFound
	}
	delete(r.pins, pinID)
	return nil
}

func (r *fakePinRepo) DeleteAll(_ context.Context) error {
	r.pins = make(map[uuid.UUID]models.Pin)
	return nil
}

type fakeHistoryRepo struct {
	entries []models.DeliveredPin
}

func (r *fakeHistoryRepo) Create(_ context.Context, d *models.DeliveredPin) (*models.DeliveredPin, error) {
	d.ID = uuid.New()
	r.entries = append(r.entries, *d)
	return d, nil
}

func (r *fakeHistoryRepo) List(_ context.Context, limit int) ([]models.DeliveredPin, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

type fakePublisher struct {
	events []models.DeliveryCompletedEvent
	err    error
}

func (p *fakePublisher) PublishDeliveryCompleted(_ context.Context, msg models.DeliveryCompletedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, msg)
	return nil
}

// fakeTx runs the function without a real transaction but keeps the
// all-or-nothing contract observable through returned errors.
type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(pins *fakePinRepo, history *fakeHistoryRepo, pub *fakePublisher) *Service {
	return NewService(pins, history, pub, fakeTx{}, "storefront-test", logger.InitLogger("test", logger.LevelError))
}

var shop = geo.Point{Lat: 16.43624, Lng: 103.5020}

func somePin(name string) models.Pin {
	return models.Pin{Name: name, Location: shop, Note: "gate code 1234"}
}

func TestImport_EmptyBatchRejected(t *testing.T) {
	svc := newTestService(newFakePinRepo(), &fakeHistoryRepo{}, &fakePublisher{})

	_, err := svc.Import(context.Background(), nil, types.ImportAppend)
	assert.ErrorIs(t, err, types.ErrEmptyImport)
}

func TestImport_ReplaceClearsBoard(t *testing.T) {
	repo := newFakePinRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, &fakePublisher{})

	_, err := svc.Import(context.Background(), []models.Pin{somePin("old 1"), somePin("old 2")}, types.ImportAppend)
	require.NoError(t, err)

	imported, err := svc.Import(context.Background(), []models.Pin{somePin("new")}, types.ImportReplace)
	require.NoError(t, err)
	require.Len(t, imported, 1)

	board, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "new", board[0].Name)
}

func TestImport_AppendKeepsExisting(t *testing.T) {
	repo := newFakePinRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, &fakePublisher{})

	_, err := svc.Import(context.Background(), []models.Pin{somePin("first")}, types.ImportAppend)
	require.NoError(t, err)
	_, err = svc.Import(context.Background(), []models.Pin{somePin("second")}, types.ImportAppend)
	require.NoError(t, err)

	board, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, board, 2)
}

func TestImport_InvalidCoordinatesRejected(t *testing.T) {
	svc := newTestService(newFakePinRepo(), &fakeHistoryRepo{}, &fakePublisher{})

	bad := models.Pin{Name: "off the map", Location: geo.Point{Lat: 95, Lng: 0}}
	_, err := svc.Import(context.Background(), []models.Pin{bad}, types.ImportAppend)
	assert.ErrorIs(t, err, types.ErrInvalidCoord)
}

func TestComplete_MovesPinToHistory(t *testing.T) {
	repo := newFakePinRepo()
	history := &fakeHistoryRepo{}
	pub := &fakePublisher{}
	svc := newTestService(repo, history, pub)

	imported, err := svc.Import(context.Background(), []models.Pin{somePin("customer A")}, types.ImportAppend)
	require.NoError(t, err)

	delivered, err := svc.Complete(context.Background(), imported[0].ID)
	require.NoError(t, err)
	assert.Equal(t, imported[0].ID, delivered.PinID)
	assert.Equal(t, "customer A", delivered.Name)

	board, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, board)

	entries, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.Len(t, pub.events, 1)
	assert.Equal(t, imported[0].ID, pub.events[0].PinID)
}

func TestComplete_UnknownPin(t *testing.T) {
	svc := newTestService(newFakePinRepo(), &fakeHistoryRepo{}, &fakePublisher{})

	_, err := svc.Complete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, types.ErrPinNotFound)
}

func TestComplete_PublishFailureDoesNotUndoDelivery(t *testing.T) {
	repo := newFakePinRepo()
	history := &fakeHistoryRepo{}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newTestService(repo, history, pub)

	imported, err := svc.Import(context.Background(), []models.Pin{somePin("customer B")}, types.ImportAppend)
	require.NoError(t, err)

	delivered, err := svc.Complete(context.Background(), imported[0].ID)
	require.NoError(t, err)
	require.NotNil(t, delivered)

	entries, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDelete_RemovesPin(t *testing.T) {
	repo := newFakePinRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, &fakePublisher{})

	imported, err := svc.Import(context.Background(), []models.Pin{somePin("wrong address")}, types.ImportAppend)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), imported[0].ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), imported[0].ID), types.ErrPinNotFound)
}
