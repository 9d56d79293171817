package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// PurgeExpiredSessionsCommandHandler removes expired and graced sessions from the store.
// Store accessors already hide such sessions; purging only frees memory.
type PurgeExpiredSessionsCommandHandler struct {
	sessions ports.SessionStore
	clock    Clock
}

// NewPurgeExpiredSessionsCommandHandler creates the handler.
//
// Example:
//
//	handler := NewPurgeExpiredSessionsCommandHandler(sessions, time.Now)
//	removed, err := handler.Handle(ctx, NewPurgeExpiredSessionsCommand())
//	if err != nil {
//	    return fmt.Errorf("session purge failed: %w", err)
//	}
//	logger.Info("purged payment sessions", "count", removed)
func NewPurgeExpiredSessionsCommandHandler(sessions ports.SessionStore, clock Clock) PurgeExpiredSessionsCommandHandler {
	return PurgeExpiredSessionsCommandHandler{sessions: sessions, clock: clock}
}

// Handle returns the number of sessions removed.
func (h PurgeExpiredSessionsCommandHandler) Handle(ctx context.Context, command PurgeExpiredSessionsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	return h.sessions.PurgeExpired(ctx, h.clock())
}
