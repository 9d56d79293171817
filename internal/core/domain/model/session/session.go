// Package session models payment sessions: short-lived records that track an
// in-flight payment attempt for polling clients. A session refers to its order
// but never owns it; losing every session leaves orders intact.
package session

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

// Status is the progress of a payment attempt as seen by the polling client.
type Status string

const (
	StatusCreated          Status = "created"
	StatusCollectRequested Status = "collect_requested"
	StatusPaid             Status = "paid"
	StatusExpired          Status = "expired"
)

// Session is an ephemeral payment attempt. It expires at ExpiresAt; once paid it may
// additionally carry a DeleteAfter deadline after which stores treat it as gone.
type Session struct {
	paymentID kernel.UUID
	orderID   kernel.UUID
	status    Status
	amount    float64
	createdAt time.Time
	expiresAt time.Time

	upiID              string
	collectRequestSent bool
	collectRequestTime *time.Time
	deleteAfter        *time.Time

	isConstructed bool
}

// NewSession opens a session for orderID that expires ttl after createdAt.
func NewSession(paymentID, orderID kernel.UUID, amount float64, createdAt time.Time, ttl time.Duration) (*Session, error) {
	var ttlErr error
	if ttl <= 0 {
		ttlErr = errs.NewValueIsInvalidError("session ttl")
	}
	var amountErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsInvalidError("amount")
	}
	if err := errors.Join(paymentID.Validate(), orderID.Validate(), amountErr, ttlErr); err != nil {
		return nil, err
	}

	return &Session{
		paymentID:     paymentID,
		orderID:       orderID,
		status:        StatusCreated,
		amount:        amount,
		createdAt:     createdAt,
		expiresAt:     createdAt.Add(ttl),
		isConstructed: true,
	}, nil
}

// RestoreSession rebuilds a session read back from a store.
func RestoreSession(
	paymentID, orderID kernel.UUID,
	status Status,
	amount float64,
	createdAt, expiresAt time.Time,
	upiID string,
	collectRequestSent bool,
	collectRequestTime, deleteAfter *time.Time,
) (*Session, error) {
	if err := errors.Join(paymentID.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Session{
		paymentID:          paymentID,
		orderID:            orderID,
		status:             status,
		amount:             amount,
		createdAt:          createdAt,
		expiresAt:          expiresAt,
		upiID:              upiID,
		collectRequestSent: collectRequestSent,
		collectRequestTime: copyTime(collectRequestTime),
		deleteAfter:        copyTime(deleteAfter),
		isConstructed:      true,
	}, nil
}

// Validate checks the status is one of the known values.
func (s Status) Validate() error {
	switch s {
	case StatusCreated, StatusCollectRequested, StatusPaid, StatusExpired:
		return nil
	default:
		return errs.NewValueIsInvalidError("session status " + strings.TrimSpace(string(s)))
	}
}

// Validate ensures the session was built by one of its constructors.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) PaymentID() kernel.UUID { return s.paymentID }

func (s *Session) OrderID() kernel.UUID { return s.orderID }

func (s *Session) Status() Status { return s.status }

func (s *Session) Amount() float64 { return s.amount }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) UPIID() string { return s.upiID }

func (s *Session) CollectRequestSent() bool { return s.collectRequestSent }

func (s *Session) CollectRequestTime() *time.Time { return copyTime(s.collectRequestTime) }

func (s *Session) DeleteAfter() *time.Time { return copyTime(s.deleteAfter) }

// IsExpired reports whether now is past the session's expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.expiresAt)
}

// IsGone reports whether now is past the grace deadline set by ScheduleRemoval.
func (s *Session) IsGone(now time.Time) bool {
	return s.deleteAfter != nil && now.After(*s.deleteAfter)
}

// IsPurgeable reports whether a store may drop the session at now.
func (s *Session) IsPurgeable(now time.Time) bool {
	return s.IsGone(now) || s.IsExpired(now)
}

// CheckAvailable returns an ObjectNotFoundError once the grace deadline has passed
// and an ObjectExpiredError once the session expired. Grace is checked first.
func (s *Session) CheckAvailable(now time.Time) error {
	if s.IsGone(now) {
		return errs.NewObjectNotFoundError("payment session", s.paymentID.String())
	}
	if s.IsExpired(now) {
		return errs.NewObjectExpiredError("payment session", s.paymentID.String(), s.expiresAt)
	}
	return nil
}

// RetainUntil is the latest instant at which the session may still be read.
func (s *Session) RetainUntil() time.Time {
	if s.deleteAfter != nil && s.deleteAfter.After(s.expiresAt) {
		return *s.deleteAfter
	}
	return s.expiresAt
}

// MarkCollectRequested records that a collect request was sent to upiID.
// A paid session keeps its status; only the request details are recorded.
func (s *Session) MarkCollectRequested(upiID string, at time.Time) {
	requestedAt := at
	s.upiID = upiID
	s.collectRequestSent = true
	s.collectRequestTime = &requestedAt
	if s.status != StatusPaid {
		s.status = StatusCollectRequested
	}
}

// MarkPaid records that the payment behind the session succeeded.
func (s *Session) MarkPaid() {
	s.status = StatusPaid
}

// ScheduleRemoval keeps the session readable for grace after at, then lets stores drop it.
func (s *Session) ScheduleRemoval(at time.Time, grace time.Duration) {
	deadline := at.Add(grace)
	s.deleteAfter = &deadline
}

// Clone returns an independent copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.collectRequestTime = copyTime(s.collectRequestTime)
	c.deleteAfter = copyTime(s.deleteAfter)
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
