package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// DefaultSessionTTL is how long a payment session stays pollable unless configured otherwise.
const DefaultSessionTTL = 5 * time.Minute

// StartPaymentSessionResult is the opened session together with the link the
// customer's UPI app should open.
type StartPaymentSessionResult struct {
	Session     *session.Session
	Order       *order.Order
	PaymentLink string
}

// StartPaymentSessionCommandHandler runs the full payment gate and then opens a session.
// The order itself is not changed.
type StartPaymentSessionCommandHandler struct {
	uowFactory OrderUoWFactory
	sessions   ports.SessionStore
	links      services.PaymentLinkBuilder
	ttl        time.Duration
	clock      Clock
}

// NewStartPaymentSessionCommandHandler creates the handler. A non-positive ttl
// falls back to DefaultSessionTTL.
//
// Example:
//
//	links := services.NewPaymentLinkBuilder("merchant@okbank", "Food Delivery")
//	handler := NewStartPaymentSessionCommandHandler(uowFactory, sessions, links, 10*time.Minute, time.Now)
//	cmd, _ := NewStartPaymentSessionCommand(orderID, actor, 349.50)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to open payment session: %w", err)
//	}
//	fmt.Printf("Open %s to pay for %s", result.PaymentLink, result.Order.OrderNumber())
func NewStartPaymentSessionCommandHandler(
	uowFactory OrderUoWFactory,
	sessions ports.SessionStore,
	links services.PaymentLinkBuilder,
	ttl time.Duration,
	clock Clock,
) StartPaymentSessionCommandHandler {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return StartPaymentSessionCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		links:      links,
		ttl:        ttl,
		clock:      clock,
	}
}

// Handle opens the session. A paid order yields order.PaymentCompletedError and an
// order outside pending_payment yields order.StatusMismatchError.
func (h StartPaymentSessionCommandHandler) Handle(
	ctx context.Context,
	command StartPaymentSessionCommand,
) (StartPaymentSessionResult, error) {
	if err := command.Validate(); err != nil {
		return StartPaymentSessionResult{}, err
	}

	o, err := withLockedOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order) (bool, error) {
		if err := ensureOwner(o, command.Actor()); err != nil {
			return false, err
		}
		return false, o.EnsureAwaitingPayment()
	})
	if err != nil {
		return StartPaymentSessionResult{}, err
	}

	s, err := session.NewSession(kernel.NewUUID(), o.ID(), command.Amount(), h.clock(), h.ttl)
	if err != nil {
		return StartPaymentSessionResult{}, err
	}

	if err = h.sessions.Save(ctx, s); err != nil {
		return StartPaymentSessionResult{}, err
	}

	return StartPaymentSessionResult{
		Session:     s,
		Order:       o,
		PaymentLink: h.links.Build(s.PaymentID(), o.OrderNumber(), s.Amount()),
	}, nil
}
