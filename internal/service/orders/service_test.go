package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]models.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	order.CreatedAt = time.Now().UTC()
	r.orders[order.ID] = *order
	return order, nil
}

func (r *fakeOrderRepo) Get(_ context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, types.ErrOrderNotFound
	}
	return &order, nil
}

func (r *fakeOrderRepo) List(_ context.Context, limit int) ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID uuid.UUID, status types.OrderStatus) error {
	order, ok := r.orders[orderID]
	if !ok {
		return types.ErrOrderNotFound
	}
	order.Status = status
	r.orders[orderID] = order
	return nil
}

type fakePublisher struct {
	events []models.OrderCreatedEvent
	err    error
}

func (p *fakePublisher) PublishOrderCreated(_ context.Context, msg models.OrderCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, msg)
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeOrderRepo, pub *fakePublisher) *Service {
	return NewService(repo, pub, fakeTx{}, "storefront-test", logger.InitLogger("test", logger.LevelError))
}

func cart() []models.CartLine {
	return []models.CartLine{
		{MenuItem: "pad krapow", Quantity: 2, UnitPrice: 55},
		{MenuItem: "iced tea", Quantity: 1, UnitPrice: 25},
	}
}

func TestSubmit_PersistsAndPublishes(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := newTestService(repo, pub)

	order := &models.Order{CustomerName: "Nok", Lines: cart(), Total: 1} // client total ignored
	created, err := svc.Submit(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, 135.0, created.Total)
	assert.Equal(t, types.OrderSubmitted, created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, created.ID, pub.events[0].OrderID)
	assert.Equal(t, 135.0, pub.events[0].Total)
}

func TestSubmit_EmptyCartRejected(t *testing.T) {
	svc := newTestService(newFakeOrderRepo(), &fakePublisher{})

	_, err := svc.Submit(context.Background(), &models.Order{CustomerName: "Nok"})
	assert.ErrorIs(t, err, types.ErrEmptyCart)
}

func TestSubmit_InvalidLineRejected(t *testing.T) {
	svc := newTestService(newFakeOrderRepo(), &fakePublisher{})

	order := &models.Order{Lines: []models.CartLine{{MenuItem: "pad krapow", Quantity: 0, UnitPrice: 55}}}
	_, err := svc.Submit(context.Background(), order)
	assert.ErrorIs(t, err, types.ErrEmptyCart)
}

func TestSubmit_PublishFailureKeepsOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakePublisher{err: errors.New("broker down")})

	created, err := svc.Submit(context.Background(), &models.Order{CustomerName: "Nok", Lines: cart()})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestMarkPrinted(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakePublisher{})

	created, err := svc.Submit(context.Background(), &models.Order{CustomerName: "Nok", Lines: cart()})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPrinted(context.Background(), created.ID))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.OrderPrinted, got.Status)

	assert.ErrorIs(t, svc.MarkPrinted(context.Background(), uuid.New()), types.ErrOrderNotFound)
}
