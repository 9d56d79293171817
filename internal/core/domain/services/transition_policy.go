package services

import (
	"slices"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// TransitionPolicy decides whether a role may move an order between two statuses.
//
// Admins may set any lifecycle status. Every other role is limited to this table:
//
//	customer:   pending_payment -> cancelled, paid -> cancelled
//	restaurant: paid -> preparing | rejected, preparing -> ready | cancelled
//	delivery:   ready -> picked_up, picked_up -> delivered
//
// A (role, current status) pair missing from the table denies the transition.
type TransitionPolicy struct {
	allowed map[kernel.Role]map[order.Status][]order.Status
}

// NewTransitionPolicy returns the policy with the fixed role table.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{
		allowed: map[kernel.Role]map[order.Status][]order.Status{
			kernel.RoleCustomer: {
				order.PendingPayment: {order.Cancelled},
				order.Paid:           {order.Cancelled},
			},
			kernel.RoleRestaurant: {
				order.Paid:      {order.Preparing, order.Rejected},
				order.Preparing: {order.Ready, order.Cancelled},
			},
			kernel.RoleDelivery: {
				order.Ready:    {order.PickedUp},
				order.PickedUp: {order.Delivered},
			},
		},
	}
}

// CanTransition reports whether role may move an order from current to requested.
// Denial is a normal answer, not a failure.
func (p TransitionPolicy) CanTransition(current, requested order.Status, role kernel.Role) bool {
	if role == kernel.RoleAdmin {
		return requested.IsLifecycle()
	}

	return slices.Contains(p.allowed[role][current], requested)
}
