// Package orderrepo persists order aggregates with GORM. An order is one row:
// the payment sub-record is embedded as payment_* columns and the status
// history is a JSON column, so a single UPDATE writes all three together.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderNumber   string            `gorm:"uniqueIndex;not null"`
	OwnerID       uuid.UUID         `gorm:"type:uuid;index;not null"`
	RestaurantID  *uuid.UUID        `gorm:"type:uuid;index"`
	Status        string            `gorm:"index;not null"`
	Payment       PaymentDTO        `gorm:"embedded;embeddedPrefix:payment_"`
	StatusHistory []StatusChangeDTO `gorm:"type:jsonb;serializer:json"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// PaymentDTO is the payment sub-record stored in payment_* columns of the order row.
type PaymentDTO struct {
	Method        string     `gorm:"column:method"`
	Status        string     `gorm:"column:status"`
	TransactionID string     `gorm:"column:transaction_id"`
	UPIID         string     `gorm:"column:upi_id"`
	App           string     `gorm:"column:app"`
	PaidAt        *time.Time `gorm:"column:paid_at"`
}

// StatusChangeDTO is one status history entry as stored in the JSON column.
type StatusChangeDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var restaurantID *uuid.UUID
	if id := aggregate.RestaurantID(); id != nil {
		raw := id.Bytes()
		restaurantID = &raw
	}

	payment := aggregate.Payment()
	history := aggregate.History()
	historyDTO := make([]StatusChangeDTO, 0, len(history))
	for _, change := range history {
		historyDTO = append(historyDTO, StatusChangeDTO{
			Status:    change.Status.String(),
			Timestamp: change.Timestamp,
			UpdatedBy: change.UpdatedBy,
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		OrderNumber:  aggregate.OrderNumber(),
		OwnerID:      aggregate.OwnerID().Bytes(),
		RestaurantID: restaurantID,
		Status:       aggregate.Status().String(),
		Payment: PaymentDTO{
			Method:        string(payment.Method()),
			Status:        string(payment.Status()),
			TransactionID: payment.TransactionID(),
			UPIID:         payment.UPIID(),
			App:           payment.App(),
			PaidAt:        payment.PaidAt(),
		},
		StatusHistory: historyDTO,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var restaurantID *kernel.UUID
	if dto.RestaurantID != nil {
		rID, restaurantErr := kernel.UUIDFromBytes((*dto.RestaurantID)[:])
		if restaurantErr != nil {
			return nil, restaurantErr
		}
		restaurantID = &rID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	payment, err := order.RestorePayment(
		order.PaymentMethod(dto.Payment.Method),
		order.PaymentStatus(dto.Payment.Status),
		dto.Payment.TransactionID,
		dto.Payment.UPIID,
		dto.Payment.App,
		dto.Payment.PaidAt,
	)
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusChange, 0, len(dto.StatusHistory))
	for _, change := range dto.StatusHistory {
		changeStatus, statusErr := order.ParseStatus(change.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, order.StatusChange{
			Status:    changeStatus,
			Timestamp: change.Timestamp,
			UpdatedBy: change.UpdatedBy,
		})
	}

	return order.RestoreOrder(id, dto.OrderNumber, ownerID, restaurantID, status, payment, history)
}
