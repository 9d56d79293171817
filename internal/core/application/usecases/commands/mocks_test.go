package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Save(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, paymentID kernel.UUID) (*session.Session, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

// Update runs fn against the session registered with Return, mirroring a real store.
func (m *MockSessionStore) Update(
	ctx context.Context,
	paymentID kernel.UUID,
	fn func(s *session.Session) error,
) (*session.Session, error) {
	args := m.Called(ctx, paymentID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	s := args.Get(0).(*session.Session)
	if err := fn(s); err != nil {
		return nil, err
	}
	return s, args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, paymentID kernel.UUID) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *MockSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) EmitToUser(ctx context.Context, userID kernel.UUID, n ports.Notification) error {
	args := m.Called(ctx, userID, n)
	return args.Error(0)
}

func (m *MockNotifier) EmitToRestaurant(ctx context.Context, restaurantID kernel.UUID, n ports.Notification) error {
	args := m.Called(ctx, restaurantID, n)
	return args.Error(0)
}

func (m *MockNotifier) EmitToChannel(ctx context.Context, channel string, n ports.Notification) error {
	args := m.Called(ctx, channel, n)
	return args.Error(0)
}

// lockedOrderMocks wires a factory, unit of work and repository for one locked-order transaction.
type lockedOrderMocks struct {
	factory *MockOrderUoWFactory
	uow     *MockOrderUoW
	repo    *MockOrderRepository
}

// expectLockedOrder prepares Begin, GetForUpdate and Rollback. Update and Commit
// are added by expectPersisted or expectReadOnly.
func expectLockedOrder(o *order.Order, id kernel.UUID) lockedOrderMocks {
	m := lockedOrderMocks{
		factory: new(MockOrderUoWFactory),
		uow:     new(MockOrderUoW),
		repo:    new(MockOrderRepository),
	}

	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.uow.On("OrderRepository").Return(m.repo).Once()
	if o == nil {
		m.repo.On("GetForUpdate", mock.Anything, id).Return(nil, errNotFound(id)).Once()
	} else {
		m.repo.On("GetForUpdate", mock.Anything, id).Return(o, nil).Once()
	}
	m.uow.On("Rollback", mock.Anything).Return(nil).Once()
	return m
}

func (m lockedOrderMocks) expectPersisted() lockedOrderMocks {
	m.repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	m.uow.On("Commit", mock.Anything).Return(nil).Once()
	return m
}

func (m lockedOrderMocks) expectReadOnly() lockedOrderMocks {
	m.uow.On("Commit", mock.Anything).Return(nil).Once()
	return m
}

func (m lockedOrderMocks) assert(t *testing.T) {
	t.Helper()
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.repo.AssertExpectations(t)
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

// newPendingOrder places an order owned by owner with a restaurant attached.
func newPendingOrder(t *testing.T, owner kernel.Actor) *order.Order {
	t.Helper()
	restaurantID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-7001", owner.UserID, &restaurantID, fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func restoreOrder(t *testing.T, owner kernel.Actor, status order.Status, payment order.Payment) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), "ORD-7002", owner.UserID, nil, status, payment, nil)
	require.NoError(t, err)
	return o
}

func paidPayment(t *testing.T) order.Payment {
	t.Helper()
	paidAt := fixedNow.Add(-10 * time.Minute)
	p, err := order.RestorePayment(order.MethodUPI, order.PaymentPaid, "TXN1", "a@b", "gpay", &paidAt)
	require.NoError(t, err)
	return p
}

func errNotFound(id kernel.UUID) error {
	return errs.NewObjectNotFoundError("order", id.String())
}
