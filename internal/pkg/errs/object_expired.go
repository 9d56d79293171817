package errs

import (
	"errors"
	"fmt"
	"time"
)

var ErrObjectExpired = errors.New("object expired")

// ObjectExpiredError reports an object read after its expiry deadline.
type ObjectExpiredError struct {
	ParamName string
	ID        any
	ExpiredAt time.Time
}

func NewObjectExpiredError(paramName string, id any, expiredAt time.Time) *ObjectExpiredError {
	return &ObjectExpiredError{
		ParamName: paramName,
		ID:        id,
		ExpiredAt: expiredAt,
	}
}

func (e *ObjectExpiredError) Error() string {
	return fmt.Sprintf("%s: %s %s expired at %s",
		ErrObjectExpired, e.ParamName, sanitize(e.ID), e.ExpiredAt.UTC().Format(time.RFC3339))
}

func (e *ObjectExpiredError) Unwrap() error {
	return ErrObjectExpired
}
