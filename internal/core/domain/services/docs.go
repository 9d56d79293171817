// Package services provides stateless domain services of the payment service,
// rules that do not belong to a single aggregate.
//
// The package includes:
//   - TransitionPolicy: which role may move an order from one status to another
//   - UPI identifier checks used by the payment and collect-request flows
//   - TransactionIDGenerator: process-unique, time-ordered payment references
//   - PaymentLinkBuilder: upi://pay deep links for payment sessions
package services
