package http

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/pkg/errs"
)

type createPaymentRequest struct {
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	UPIID         string  `json:"upiId"`
	UPIApp        string  `json:"upiApp"`
}

type payWithUPIRequest struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
	UPIID   string  `json:"upiId"`
	UPIApp  string  `json:"upiApp"`
}

type startPaymentSessionRequest struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
}

type collectRequest struct {
	UPIID string `json:"upiId"`
}

type confirmPaymentRequest struct {
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
	PaymentID     string `json:"paymentId"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// envelope is the body of every response.
type envelope struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	Order       *orderResponse   `json:"order,omitempty"`
	Session     *sessionResponse `json:"session,omitempty"`
	PaymentLink string           `json:"paymentLink,omitempty"`

	// Failure details.
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CurrentStatus string     `json:"currentStatus,omitempty"`
	Error         string     `json:"error,omitempty"`
}

type orderResponse struct {
	OrderID       string     `json:"orderId"`
	OrderNumber   string     `json:"orderNumber"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

type sessionResponse struct {
	PaymentID          string     `json:"paymentId"`
	OrderID            string     `json:"orderId"`
	Status             string     `json:"status"`
	Amount             float64    `json:"amount,omitempty"`
	ExpiresAt          time.Time  `json:"expiresAt"`
	UPIID              string     `json:"upiId,omitempty"`
	CollectRequestSent bool       `json:"collectRequestSent"`
	CollectRequestTime *time.Time `json:"collectRequestTime,omitempty"`
}

func toOrderResponse(o *order.Order) *orderResponse {
	if o == nil {
		return nil
	}
	payment := o.Payment()
	return &orderResponse{
		OrderID:       o.ID().String(),
		OrderNumber:   o.OrderNumber(),
		Status:        o.Status().String(),
		PaymentStatus: string(payment.Status()),
		PaymentMethod: string(payment.Method()),
		TransactionID: payment.TransactionID(),
		PaidAt:        payment.PaidAt(),
	}
}

func toSessionResponse(s *session.Session) *sessionResponse {
	if s == nil {
		return nil
	}
	return &sessionResponse{
		PaymentID:          s.PaymentID().String(),
		OrderID:            s.OrderID().String(),
		Status:             string(s.Status()),
		Amount:             s.Amount(),
		ExpiresAt:          s.ExpiresAt(),
		UPIID:              s.UPIID(),
		CollectRequestSent: s.CollectRequestSent(),
		CollectRequestTime: s.CollectRequestTime(),
	}
}

// parseUUID leaves an empty value to the command constructors, which report it
// as a missing field.
func parseUUID(param, raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}
