// Package guard provides ConstructorGuard, a marker that lets value objects,
// commands and queries detect whether they were built through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not meaningful.
// Only NewConstructorGuard produces a guard that validates.
//
// Example usage:
//
//	var ErrAmountNotConstructed = errors.New("Amount must be created via NewAmount")
//
//	type Amount struct {
//	    paise int64
//	    guard guard.ConstructorGuard
//	}
//
//	func NewAmount(paise int64) (Amount, error) {
//	    if paise <= 0 {
//	        return Amount{}, errors.New("amount must be positive")
//	    }
//	    return Amount{paise: paise, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (a Amount) Validate() error {
//	    return a.guard.Validate(ErrAmountNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its owner as constructed.
//
// Example:
//
//	func NewSimulatePaymentCommand(paymentID kernel.UUID, actor kernel.Actor) (SimulatePaymentCommand, error) {
//	    if err := errors.Join(paymentID.Validate(), actor.Validate()); err != nil {
//	        return SimulatePaymentCommand{}, err
//	    }
//	    return SimulatePaymentCommand{paymentID: paymentID, actor: actor, guard: guard.NewConstructorGuard()}, nil
//	}
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
//
// Example:
//
//	var cmd SimulatePaymentCommand // not built through the constructor
//	err := cmd.guard.Validate(ErrSimulatePaymentCommandIsNotConstructed)
//	// err == ErrSimulatePaymentCommandIsNotConstructed
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
