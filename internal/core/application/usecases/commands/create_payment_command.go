package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

// CreatePaymentCommand starts a payment with the method the customer picked.
// Cash on delivery confirms the order without collecting money; UPI pays instantly.
//
// Example:
//
//	cmd, err := NewCreatePaymentCommand(orderID, actor, 349.50, "upi", "alice@okbank", "gpay")
//	if err != nil {
//	    return fmt.Errorf("invalid payment request: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	amount  float64
	method  order.PaymentMethod
	upiID   string
	upiApp  string

	guard guard.ConstructorGuard
}

// NewCreatePaymentCommand validates every field and the method-specific ones.
// The UPI identifier is only required, and only checked, for the upi method.
func NewCreatePaymentCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	amount float64,
	method string,
	upiID string,
	upiApp string,
) (CreatePaymentCommand, error) {
	cmd := CreatePaymentCommand{
		upiApp: strings.TrimSpace(upiApp),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setAmount(amount),
		cmd.setMethod(method, upiID),
	); err != nil {
		return CreatePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

func (c CreatePaymentCommand) OrderID() kernel.UUID { return c.orderID }

func (c CreatePaymentCommand) Actor() kernel.Actor { return c.actor }

func (c CreatePaymentCommand) Amount() float64 { return c.amount }

func (c CreatePaymentCommand) Method() order.PaymentMethod { return c.method }

func (c CreatePaymentCommand) UPIID() string { return c.upiID }

func (c CreatePaymentCommand) UPIApp() string { return c.upiApp }

func (c *CreatePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *CreatePaymentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreatePaymentCommand) setAmount(amount float64) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	c.amount = amount
	return nil
}

func (c *CreatePaymentCommand) setMethod(method, upiID string) error {
	if strings.TrimSpace(method) == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}

	m, err := order.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(method)))
	if err != nil {
		return err
	}

	if m == order.MethodUPI {
		upiID = strings.TrimSpace(upiID)
		if err = services.ValidateUPIID(upiID); err != nil {
			return err
		}
		c.upiID = upiID
	}

	c.method = m
	return nil
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", errors.New("amount must be greater than 0"))
	}
	return nil
}
