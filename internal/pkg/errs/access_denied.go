package errs

import (
	"errors"
	"fmt"
)

var ErrAccessDenied = errors.New("access denied")

// AccessDeniedError reports that Subject may not act on the object named by ParamName and ID.
type AccessDeniedError struct {
	Subject   any
	ParamName string
	ID        any
}

func NewAccessDeniedError(subject any, paramName string, id any) *AccessDeniedError {
	return &AccessDeniedError{
		Subject:   subject,
		ParamName: paramName,
		ID:        id,
	}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s may not access %s %s",
		ErrAccessDenied, sanitize(e.Subject), e.ParamName, sanitize(e.ID))
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
