package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/ports"
)

// RequestUPICollectCommandHandler records a collect request on the session.
// Only the session changes; approval happens in the payer's UPI app and is
// reported later through confirmation.
type RequestUPICollectCommandHandler struct {
	uowFactory OrderUoWFactory
	sessions   ports.SessionStore
	clock      Clock
}

// NewRequestUPICollectCommandHandler creates the handler.
//
// Example:
//
//	handler := NewRequestUPICollectCommandHandler(uowFactory, sessions, time.Now)
//	cmd, err := NewRequestUPICollectCommand(paymentID, actor, "diner@okbank")
//	if err != nil {
//	    return fmt.Errorf("invalid collect request: %w", err)
//	}
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("collect request failed: %w", err)
//	}
func NewRequestUPICollectCommandHandler(
	uowFactory OrderUoWFactory,
	sessions ports.SessionStore,
	clock Clock,
) RequestUPICollectCommandHandler {
	return RequestUPICollectCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		clock:      clock,
	}
}

// Handle returns the updated session. Missing or expired sessions surface the
// store's errs.ObjectNotFoundError or errs.ObjectExpiredError.
func (h RequestUPICollectCommandHandler) Handle(
	ctx context.Context,
	command RequestUPICollectCommand,
) (*session.Session, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	s, err := h.sessions.Get(ctx, command.PaymentID())
	if err != nil {
		return nil, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, s.OrderID())
	if err != nil {
		return nil, err
	}
	if err = ensureOwner(o, command.Actor()); err != nil {
		return nil, err
	}

	requestedAt := h.clock()
	return h.sessions.Update(ctx, command.PaymentID(), func(s *session.Session) error {
		s.MarkCollectRequested(command.UPIID(), requestedAt)
		return nil
	})
}
