package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// PayWithUPICommandHandler records an instant UPI payment.
// A payment that is already paid or completed is refused with order.PaymentCompletedError.
type PayWithUPICommandHandler struct {
	uowFactory OrderUoWFactory
	txnIDs     *services.TransactionIDGenerator
	events     orderEvents
	clock      Clock
}

// NewPayWithUPICommandHandler creates the handler.
//
// Example:
//
//	handler := NewPayWithUPICommandHandler(uowFactory, txnIDs, hub, logger, time.Now)
//	cmd, _ := NewPayWithUPICommand(orderID, actor, 349.50, "diner@okbank", "phonepe")
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("upi payment failed: %w", err)
//	}
func NewPayWithUPICommandHandler(
	uowFactory OrderUoWFactory,
	txnIDs *services.TransactionIDGenerator,
	notifier ports.Notifier,
	logger *slog.Logger,
	clock Clock,
) PayWithUPICommandHandler {
	return PayWithUPICommandHandler{
		uowFactory: uowFactory,
		txnIDs:     txnIDs,
		events:     newOrderEvents(notifier, logger),
		clock:      clock,
	}
}

// Handle pays the order and announces payment-success after commit.
func (h PayWithUPICommandHandler) Handle(ctx context.Context, command PayWithUPICommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	actor := command.Actor()

	o, err := withLockedOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order) (bool, error) {
		if err := ensureOwner(o, actor); err != nil {
			return false, err
		}
		if err := o.EnsureAwaitingPayment(); err != nil {
			return false, err
		}
		return true, o.PayWithUPI(command.UPIID(), command.UPIApp(), h.txnIDs.Next(), now, actor)
	})
	if err != nil {
		return nil, err
	}

	h.events.paymentSucceeded(context.WithoutCancel(ctx), o, now)
	return o, nil
}
