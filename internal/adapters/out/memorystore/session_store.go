// Package memorystore keeps payment sessions in process memory. The store lives as
// long as the process and is created once by the composition root.
package memorystore

import (
	"context"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/pkg/errs"
)

// SessionStore is a mutex-guarded map of sessions keyed by payment id.
// Sessions are copied on the way in and out, so callers never share state with the store.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[kernel.UUID]*session.Session
	clock    func() time.Time
}

// NewSessionStore creates an empty store. A nil clock falls back to time.Now.
func NewSessionStore(clock func() time.Time) *SessionStore {
	if clock == nil {
		clock = time.Now
	}
	return &SessionStore{
		sessions: make(map[kernel.UUID]*session.Session),
		clock:    clock,
	}
}

func (s *SessionStore) Save(_ context.Context, sess *session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.PaymentID()] = sess.Clone()
	return nil
}

func (s *SessionStore) Get(_ context.Context, paymentID kernel.UUID) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.live(paymentID)
	if err != nil {
		return nil, err
	}
	return live.Clone(), nil
}

// Update runs fn on a copy of the live session while holding the store lock and
// stores the copy only when fn succeeds.
func (s *SessionStore) Update(
	_ context.Context,
	paymentID kernel.UUID,
	fn func(sess *session.Session) error,
) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.live(paymentID)
	if err != nil {
		return nil, err
	}

	updated := live.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}

	s.sessions[paymentID] = updated
	return updated.Clone(), nil
}

func (s *SessionStore) Delete(_ context.Context, paymentID kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, paymentID)
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, sess := range s.sessions {
		if sess.IsPurgeable(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged, nil
}

// Len returns the number of stored sessions, including ones not yet purged.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// live returns the stored session if it can still be read, dropping it otherwise.
// The caller must hold s.mu.
func (s *SessionStore) live(paymentID kernel.UUID) (*session.Session, error) {
	sess, ok := s.sessions[paymentID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("payment session", paymentID.String())
	}

	if err := sess.CheckAvailable(s.clock()); err != nil {
		delete(s.sessions, paymentID)
		return nil, err
	}
	return sess, nil
}
