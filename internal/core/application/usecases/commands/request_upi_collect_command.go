package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/guard"
)

var ErrRequestUPICollectCommandIsNotConstructed = errors.New(
	"RequestUPICollectCommand must be created via NewRequestUPICollectCommand constructor",
)

// RequestUPICollectCommand asks the payer's UPI app to approve a collect request
// for an open payment session.
type RequestUPICollectCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	actor     kernel.Actor
	upiID     string

	guard guard.ConstructorGuard
}

// NewRequestUPICollectCommand checks the address against the collect-request format.
func NewRequestUPICollectCommand(paymentID kernel.UUID, actor kernel.Actor, upiID string) (RequestUPICollectCommand, error) {
	upiID = strings.TrimSpace(upiID)

	if err := errors.Join(
		paymentID.Validate(),
		actor.Validate(),
		services.ValidateCollectVPA(upiID),
	); err != nil {
		return RequestUPICollectCommand{}, err
	}

	return RequestUPICollectCommand{
		paymentID: paymentID,
		actor:     actor,
		upiID:     upiID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestUPICollectCommand) Validate() error {
	return c.guard.Validate(ErrRequestUPICollectCommandIsNotConstructed)
}

func (c RequestUPICollectCommand) PaymentID() kernel.UUID { return c.paymentID }

func (c RequestUPICollectCommand) Actor() kernel.Actor { return c.actor }

func (c RequestUPICollectCommand) UPIID() string { return c.upiID }
