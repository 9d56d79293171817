// Package kernel provides the shared domain primitives of the payment service.
//
// The package includes:
//   - UUID: a value object for identifiers of orders, users, restaurants and payment sessions
//   - Role: the acting party of a request (customer, restaurant, delivery, admin)
//   - Actor: a user identity paired with the role it acts in
//
// Zero values of these types are invalid; construct them through the provided
// constructors and parsers.
package kernel
