package queries

import (
	"context"
	"database/sql"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckPaymentStatusQueryHandler answers payment polling.
// The session decides whether the attempt is still alive; the order row is the
// source of truth for order and payment status.
type CheckPaymentStatusQueryHandler struct {
	db       *gorm.DB
	sessions ports.SessionStore
}

// NewCheckPaymentStatusQueryHandler creates a handler reading orders through db.
func NewCheckPaymentStatusQueryHandler(db *gorm.DB, sessions ports.SessionStore) CheckPaymentStatusQueryHandler {
	return CheckPaymentStatusQueryHandler{db: db, sessions: sessions}
}

// Handle returns errs.ObjectNotFoundError for unknown sessions, errs.ObjectExpiredError
// for timed-out ones (the store drops them) and errs.AccessDeniedError when the
// order belongs to another customer.
func (h CheckPaymentStatusQueryHandler) Handle(
	ctx context.Context,
	query CheckPaymentStatusQuery,
) (CheckPaymentStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckPaymentStatusQueryResponse{}, err
	}

	s, err := h.sessions.Get(ctx, query.PaymentID())
	if err != nil {
		return CheckPaymentStatusQueryResponse{}, err
	}

	var (
		ownerID       uuid.UUID
		orderNumber   string
		orderStatus   string
		paymentStatus string
		paymentMethod string
		transactionID string
		paidAt        sql.NullTime
	)

	err = h.db.WithContext(ctx).Raw(`
		SELECT
			owner_id,
			order_number,
			status,
			payment_status,
			payment_method,
			payment_transaction_id,
			payment_paid_at
		FROM orders
		WHERE id = ?
	`, s.OrderID().Bytes()).Row().Scan(
		&ownerID,
		&orderNumber,
		&orderStatus,
		&paymentStatus,
		&paymentMethod,
		&transactionID,
		&paidAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckPaymentStatusQueryResponse{}, errs.NewObjectNotFoundError("order", s.OrderID().String())
	}
	if err != nil {
		return CheckPaymentStatusQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return CheckPaymentStatusQueryResponse{}, err
	}
	if !owner.IsEqual(query.Actor().UserID) {
		return CheckPaymentStatusQueryResponse{}, errs.NewAccessDeniedError(query.Actor(), "order", s.OrderID())
	}

	status, err := order.ParseStatus(orderStatus)
	if err != nil {
		return CheckPaymentStatusQueryResponse{}, err
	}

	response := CheckPaymentStatusQueryResponse{
		PaymentID:          s.PaymentID(),
		OrderID:            s.OrderID(),
		OrderNumber:        orderNumber,
		OrderStatus:        status,
		PaymentStatus:      order.PaymentStatus(paymentStatus),
		PaymentMethod:      order.PaymentMethod(paymentMethod),
		TransactionID:      transactionID,
		SessionStatus:      s.Status(),
		ExpiresAt:          s.ExpiresAt(),
		CollectRequestSent: s.CollectRequestSent(),
	}
	if paidAt.Valid {
		t := paidAt.Time
		response.PaidAt = &t
	}

	return response, nil
}
