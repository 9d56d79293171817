package http

import (
	"net/http"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	actorKey = "actor"
)

// ActorMiddleware reads the caller identity set by the upstream gateway. The user
// id is mandatory; a missing role means customer.
func ActorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rawID := c.Request().Header.Get(HeaderUserID)
		if rawID == "" {
			return c.JSON(http.StatusUnauthorized, envelope{Message: "Missing " + HeaderUserID + " header"})
		}
		userID, err := kernel.UUIDFromString(rawID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, envelope{Message: "Invalid " + HeaderUserID + " header"})
		}

		role := kernel.RoleCustomer
		if rawRole := c.Request().Header.Get(HeaderUserRole); rawRole != "" {
			role, err = kernel.ParseRole(rawRole)
			if err != nil {
				return c.JSON(http.StatusBadRequest, envelope{Message: err.Error()})
			}
		}

		c.Set(actorKey, kernel.Actor{UserID: userID, Role: role})
		return next(c)
	}
}

// actorFrom returns the identity stored by ActorMiddleware, or the zero Actor,
// which every command constructor rejects.
func actorFrom(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}
