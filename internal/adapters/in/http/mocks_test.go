package http_test

import (
	"context"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"

	"github.com/stretchr/testify/mock"
)

type MockCreatePaymentHandler struct{ mock.Mock }

func (m *MockCreatePaymentHandler) Handle(ctx context.Context, cmd commands.CreatePaymentCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockPayWithUPIHandler struct{ mock.Mock }

func (m *MockPayWithUPIHandler) Handle(ctx context.Context, cmd commands.PayWithUPICommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockStartPaymentSessionHandler struct{ mock.Mock }

func (m *MockStartPaymentSessionHandler) Handle(
	ctx context.Context,
	cmd commands.StartPaymentSessionCommand,
) (commands.StartPaymentSessionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.StartPaymentSessionResult), args.Error(1)
}

type MockRequestUPICollectHandler struct{ mock.Mock }

func (m *MockRequestUPICollectHandler) Handle(ctx context.Context, cmd commands.RequestUPICollectCommand) (*session.Session, error) {
	args := m.Called(ctx, cmd)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

type MockConfirmPaymentHandler struct{ mock.Mock }

func (m *MockConfirmPaymentHandler) Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (commands.ConfirmPaymentResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ConfirmPaymentResult), args.Error(1)
}

type MockSimulatePaymentHandler struct{ mock.Mock }

func (m *MockSimulatePaymentHandler) Handle(ctx context.Context, cmd commands.SimulatePaymentCommand) (commands.SimulatePaymentResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SimulatePaymentResult), args.Error(1)
}

type MockUpdateOrderStatusHandler struct{ mock.Mock }

func (m *MockUpdateOrderStatusHandler) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCheckPaymentStatusHandler struct{ mock.Mock }

func (m *MockCheckPaymentStatusHandler) Handle(
	ctx context.Context,
	query queries.CheckPaymentStatusQuery,
) (queries.CheckPaymentStatusQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.CheckPaymentStatusQueryResponse), args.Error(1)
}
