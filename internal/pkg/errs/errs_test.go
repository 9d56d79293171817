package errs_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("upiId")

		assert.Equal(t, "upiId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: upiId", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing @")
		err := errs.NewValueIsInvalidErrorWithCause("upiId", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: upiId (cause: missing @)", err.Error())
	})

	t.Run("sanitizes newlines in cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("upiId", errors.New("hello\nworld"))
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("orderId")

		assert.Equal(t, "orderId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: orderId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("empty body")
		err := errs.NewValueIsRequiredErrorWithCause("orderId", cause)

		assert.Equal(t, "value is required: orderId (cause: empty body)", err.Error())
	})
}

func TestAccessDeniedError(t *testing.T) {
	err := errs.NewAccessDeniedError("user-1", "order", "order-9")

	assert.Equal(t, "access denied: user-1 may not access order order-9", err.Error())
	require.ErrorIs(t, err, errs.ErrAccessDenied)
}

func TestObjectExpiredError(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := errs.NewObjectExpiredError("payment session", "abc", at)

	assert.Equal(t, at, err.ExpiredAt)
	assert.Equal(t, "object expired: payment session abc expired at 2026-01-02T03:04:05Z", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectExpired)
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("payment session")
		assert.Equal(t, "conflict: payment session", err.Error())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		err := errs.NewConflictErrorWithCause("payment session", errors.New("watch failed"))
		assert.Equal(t, "conflict: payment session (cause: watch failed)", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "access denied", errs.ErrAccessDenied.Error())
	assert.Equal(t, "object expired", errs.ErrObjectExpired.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("other"), errs.NewValueIsRequiredError("amount"))

	require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewObjectNotFoundError("order", "1"), errs.ErrObjectNotFound)

	var required *errs.ValueIsRequiredError
	require.ErrorAs(t, wrapped, &required)
	assert.Equal(t, "amount", required.ParamName)
}
