package redisstore

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/session"
)

// sessionRecord is the JSON document stored under each session key.
type sessionRecord struct {
	PaymentID          string     `json:"paymentId"`
	OrderID            string     `json:"orderId"`
	Status             string     `json:"status"`
	Amount             float64    `json:"amount"`
	CreatedAt          time.Time  `json:"createdAt"`
	ExpiresAt          time.Time  `json:"expiresAt"`
	UPIID              string     `json:"upiId,omitempty"`
	CollectRequestSent bool       `json:"collectRequestSent"`
	CollectRequestTime *time.Time `json:"collectRequestTime,omitempty"`
	DeleteAfter        *time.Time `json:"deleteAfter,omitempty"`
}

func fromDomain(s *session.Session) sessionRecord {
	return sessionRecord{
		PaymentID:          s.PaymentID().String(),
		OrderID:            s.OrderID().String(),
		Status:             string(s.Status()),
		Amount:             s.Amount(),
		CreatedAt:          s.CreatedAt(),
		ExpiresAt:          s.ExpiresAt(),
		UPIID:              s.UPIID(),
		CollectRequestSent: s.CollectRequestSent(),
		CollectRequestTime: s.CollectRequestTime(),
		DeleteAfter:        s.DeleteAfter(),
	}
}

func toDomain(r sessionRecord) (*session.Session, error) {
	paymentID, err := kernel.UUIDFromString(r.PaymentID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(r.OrderID)
	if err != nil {
		return nil, err
	}

	return session.RestoreSession(
		paymentID,
		orderID,
		session.Status(r.Status),
		r.Amount,
		r.CreatedAt,
		r.ExpiresAt,
		r.UPIID,
		r.CollectRequestSent,
		r.CollectRequestTime,
		r.DeleteAfter,
	)
}
