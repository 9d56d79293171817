package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// CreatePaymentCommandHandler runs the method-dispatching payment entry point.
//
// For cash on delivery the order moves to confirmed and the payment stays pending;
// nothing is announced. For UPI the payment is recorded as paid, the order moves to
// paid, and payment-success goes to the customer, the restaurant and the delivery pool.
type CreatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	txnIDs     *services.TransactionIDGenerator
	events     orderEvents
	clock      Clock
}

// NewCreatePaymentCommandHandler creates the handler.
//
// Example:
//
//	txnIDs := services.NewTransactionIDGenerator("TXN", time.Now)
//	handler := NewCreatePaymentCommandHandler(uowFactory, txnIDs, hub, logger, time.Now)
//	cmd, err := NewCreatePaymentCommand(orderID, actor, 349.50, "upi", "diner@okbank", "gpay")
//	if err != nil {
//	    return fmt.Errorf("invalid payment: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("payment failed: %w", err)
//	}
//	fmt.Printf("Order %s is now %s", o.OrderNumber(), o.Status())
func NewCreatePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	txnIDs *services.TransactionIDGenerator,
	notifier ports.Notifier,
	logger *slog.Logger,
	clock Clock,
) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory: uowFactory,
		txnIDs:     txnIDs,
		events:     newOrderEvents(notifier, logger),
		clock:      clock,
	}
}

// Handle applies the payment and returns the updated order.
// Errors: errs.ObjectNotFoundError, errs.AccessDeniedError,
// order.PaymentCompletedError and order.StatusMismatchError.
func (h CreatePaymentCommandHandler) Handle(ctx context.Context, command CreatePaymentCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	actor := command.Actor()

	o, err := withLockedOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order) (bool, error) {
		if err := ensureOwner(o, actor); err != nil {
			return false, err
		}

		switch command.Method() {
		case order.MethodCOD:
			return true, o.ChooseCashOnDelivery(now, actor)
		default:
			if err := o.EnsureAwaitingPayment(); err != nil {
				return false, err
			}
			return true, o.PayWithUPI(command.UPIID(), command.UPIApp(), h.txnIDs.Next(), now, actor)
		}
	})
	if err != nil {
		return nil, err
	}

	if command.Method() == order.MethodUPI {
		h.events.paymentSucceeded(context.WithoutCancel(ctx), o, now)
	}

	return o, nil
}
