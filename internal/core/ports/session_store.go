package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/session"
)

// SessionStore keeps in-flight payment sessions. Entries are disposable: losing
// them never affects orders.
//
// Accessors enforce expiry themselves:
//   - a session past its DeleteAfter deadline reads as errs.ObjectNotFoundError
//   - a session past ExpiresAt is deleted and reported as errs.ObjectExpiredError
type SessionStore interface {
	// Save stores a session, replacing any session with the same payment id.
	Save(ctx context.Context, s *session.Session) error

	// Get returns the live session for paymentID.
	Get(ctx context.Context, paymentID kernel.UUID) (*session.Session, error)

	// Update applies fn to the live session atomically with respect to other
	// updates of the same payment id and stores the result. An error from fn
	// aborts the update and is returned unchanged.
	Update(ctx context.Context, paymentID kernel.UUID, fn func(s *session.Session) error) (*session.Session, error)

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, paymentID kernel.UUID) error

	// PurgeExpired removes every session that expired or passed its grace deadline
	// before now and returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}
