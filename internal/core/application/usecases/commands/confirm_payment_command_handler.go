package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/ports"
)

// SessionGracePeriod keeps a confirmed session readable so a polling client
// still sees the final state before the session disappears.
const SessionGracePeriod = 10 * time.Second

// ConfirmPaymentResult carries the order after confirmation. AlreadyPaid is true
// when the payment had been collected before and nothing changed.
type ConfirmPaymentResult struct {
	Order       *order.Order
	AlreadyPaid bool
}

// ConfirmPaymentCommandHandler marks a payment as paid exactly once.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	sessions   ports.SessionStore
	logger     *slog.Logger
	clock      Clock
}

// NewConfirmPaymentCommandHandler creates the handler.
//
// Example:
//
//	handler := NewConfirmPaymentCommandHandler(uowFactory, sessions, logger, time.Now)
//	cmd, _ := NewConfirmPaymentCommand(orderID, actor, "TXN1718000000000ABC123", &paymentID)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("confirmation failed: %w", err)
//	}
//	if result.AlreadyPaid {
//	    // confirmed earlier, nothing changed
//	}
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	sessions ports.SessionStore,
	logger *slog.Logger,
	clock Clock,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		logger:     logger,
		clock:      clock,
	}
}

// Handle confirms the payment. An already collected payment is a success with the
// current order, never a conflict. When a session is named it is marked paid and
// kept for SessionGracePeriod; a session that is gone by then is ignored.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, command ConfirmPaymentCommand) (ConfirmPaymentResult, error) {
	if err := command.Validate(); err != nil {
		return ConfirmPaymentResult{}, err
	}

	now := h.clock()
	var alreadyPaid bool

	o, err := withLockedOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order) (bool, error) {
		if err := ensureOwner(o, command.Actor()); err != nil {
			return false, err
		}
		alreadyPaid = o.ConfirmPayment(command.TransactionID(), now, command.Actor())
		return !alreadyPaid, nil
	})
	if err != nil {
		return ConfirmPaymentResult{}, err
	}

	if !alreadyPaid && command.PaymentID() != nil {
		h.finishSession(context.WithoutCancel(ctx), o, command, now)
	}

	return ConfirmPaymentResult{Order: o, AlreadyPaid: alreadyPaid}, nil
}

func (h ConfirmPaymentCommandHandler) finishSession(ctx context.Context, o *order.Order, command ConfirmPaymentCommand, now time.Time) {
	paymentID := *command.PaymentID()

	_, err := h.sessions.Update(ctx, paymentID, func(s *session.Session) error {
		if !s.OrderID().IsEqual(o.ID()) {
			return fmt.Errorf("session %s belongs to order %s", paymentID, s.OrderID())
		}
		s.MarkPaid()
		s.ScheduleRemoval(now, SessionGracePeriod)
		return nil
	})
	if err != nil {
		h.logger.InfoContext(ctx, "payment session not updated after confirmation",
			"paymentId", paymentID.String(),
			"orderId", o.ID().String(),
			"error", err,
		)
	}
}
