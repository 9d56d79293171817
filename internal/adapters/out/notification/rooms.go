// Package notification holds what the notifier adapters share: room naming and
// a fan-out notifier that forwards every event to several transports.
package notification

import "fooddelivery/internal/core/domain/model/kernel"

// UserRoom is the room a customer's connections join.
func UserRoom(userID kernel.UUID) string {
	return "user:" + userID.String()
}

// RestaurantRoom is the room a restaurant's connections join.
func RestaurantRoom(restaurantID kernel.UUID) string {
	return "restaurant:" + restaurantID.String()
}
