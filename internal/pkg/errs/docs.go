// Package errs provides standardized error types for the payment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is malformed or not allowed
//   - ObjectNotFoundError: For when an object cannot be found
//   - AccessDeniedError: For when the caller may not act on an object
//   - ObjectExpiredError: For when a time-bounded object is past its deadline
//   - ConflictError: For when the object is already in a state that forbids the request
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the failure
//
// The HTTP adapter relies on the sentinels to map failures onto outcome categories,
// so new error kinds must come with their own sentinel.
package errs
