// Package order provides the Order aggregate of the payment service: an order with
// its embedded payment sub-record and its append-only status history.
//
// The package includes:
//   - Order: the aggregate root; all status changes go through it
//   - Status: the order lifecycle (pending_payment, paid, preparing, ready, picked_up,
//     delivered, cancelled, rejected) plus the auxiliary confirmed and legacy pending states
//   - Payment: method, payment status, transaction reference and payment time
//   - StatusChange: one entry of the status history
//
// Key business rules:
//   - A new payment is accepted only while the order is pending_payment and unpaid
//   - A status history entry is appended only when the status actually changes, and the
//     history never holds two consecutive entries with the same status
//   - Confirming an already paid order is a no-op that reports the existing payment
//
// Which role may request which lifecycle transition is decided outside the aggregate,
// by services.TransitionPolicy.
package order
