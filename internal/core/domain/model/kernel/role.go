package kernel

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Role is the party on whose behalf a request acts.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleDelivery   Role = "delivery"
	RoleAdmin      Role = "admin"
)

// ParseRole converts a case-insensitive role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate reports whether the role is one of the four known roles.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleDelivery, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor identifies who performs a request.
type Actor struct {
	UserID UUID
	Role   Role
}

// NewActor validates both parts of the identity.
func NewActor(userID UUID, role Role) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{UserID: userID, Role: role}, nil
}

// Validate reports whether the actor was built from a valid user and role.
func (a Actor) Validate() error {
	if err := a.UserID.Validate(); err != nil {
		return err
	}
	return a.Role.Validate()
}

// String renders the actor as recorded in status history, e.g. "customer:<uuid>".
func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.Role, a.UserID)
}
