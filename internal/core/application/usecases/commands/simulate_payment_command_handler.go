package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// SimulatePaymentResult is the order and session after a simulated payment.
type SimulatePaymentResult struct {
	Order   *order.Order
	Session *session.Session
}

// SimulatePaymentCommandHandler marks a session's order paid and confirmed without
// any payment guard and without a status history entry.
type SimulatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	sessions   ports.SessionStore
	simIDs     *services.TransactionIDGenerator
	logger     *slog.Logger
	clock      Clock
}

// NewSimulatePaymentCommandHandler creates the handler.
//
// Example:
//
//	simIDs := services.NewTransactionIDGenerator("SIM", time.Now)
//	handler := NewSimulatePaymentCommandHandler(uowFactory, sessions, simIDs, logger, time.Now)
//	cmd, _ := NewSimulatePaymentCommand(paymentID, actor)
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("simulation failed: %w", err)
//	}
func NewSimulatePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	sessions ports.SessionStore,
	simIDs *services.TransactionIDGenerator,
	logger *slog.Logger,
	clock Clock,
) SimulatePaymentCommandHandler {
	return SimulatePaymentCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		simIDs:     simIDs,
		logger:     logger,
		clock:      clock,
	}
}

// Handle simulates the payment. The session must exist and not be expired.
func (h SimulatePaymentCommandHandler) Handle(ctx context.Context, command SimulatePaymentCommand) (SimulatePaymentResult, error) {
	if err := command.Validate(); err != nil {
		return SimulatePaymentResult{}, err
	}

	s, err := h.sessions.Get(ctx, command.PaymentID())
	if err != nil {
		return SimulatePaymentResult{}, err
	}

	now := h.clock()
	o, err := withLockedOrder(ctx, h.uowFactory, s.OrderID(), func(o *order.Order) (bool, error) {
		if err := ensureOwner(o, command.Actor()); err != nil {
			return false, err
		}
		o.MarkPaidForDemo(h.simIDs.Next(), now)
		return true, nil
	})
	if err != nil {
		return SimulatePaymentResult{}, err
	}

	ctx = context.WithoutCancel(ctx)
	updated, err := h.sessions.Update(ctx, command.PaymentID(), func(s *session.Session) error {
		s.MarkPaid()
		return nil
	})
	if err != nil {
		h.logger.WarnContext(ctx, "payment session not marked paid after simulation",
			"paymentId", command.PaymentID().String(),
			"error", err,
		)
		return SimulatePaymentResult{Order: o, Session: s}, nil
	}

	return SimulatePaymentResult{Order: o, Session: updated}, nil
}
