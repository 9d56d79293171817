package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// fail maps a use case error to a status code and writes the failure envelope.
// Internal failures are logged; their detail only reaches the client in development.
func (s *Server) fail(c echo.Context, operation string, err error) error {
	code, body := s.describe(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"operation", operation,
			"error", err,
		)
	}
	return s.respond(c, operation, code, body)
}

func (s *Server) invalidBody(c echo.Context, operation string, err error) error {
	body := envelope{Message: "Invalid request body"}
	if s.development {
		body.Error = err.Error()
	}
	return s.respond(c, operation, http.StatusBadRequest, body)
}

func (s *Server) describe(err error) (int, envelope) {
	var (
		completed *order.PaymentCompletedError
		mismatch  *order.StatusMismatchError
	)

	switch {
	case errors.As(err, &completed):
		return http.StatusConflict, envelope{Message: "Payment already completed", PaidAt: completed.PaidAt}
	case errors.As(err, &mismatch):
		return http.StatusBadRequest, envelope{
			Message:       "Order is in " + mismatch.Current.String() + " status",
			CurrentStatus: mismatch.Current.String(),
		}
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest, envelope{Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, envelope{Message: err.Error()}
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden, envelope{Message: err.Error()}
	case errors.Is(err, errs.ErrObjectExpired):
		return http.StatusGone, envelope{Message: "Payment session expired"}
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, envelope{Message: err.Error()}
	}

	body := envelope{Message: internalErrorMessage}
	if s.development {
		body.Error = err.Error()
	}
	return http.StatusInternalServerError, body
}
