// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the order lifecycle:
//   - ObjectNotFoundError: an order or item id is unknown
//   - InvalidTransitionError: a status change is not an edge of the transition graph
//   - ValueIsInvalidError: a supplied value failed validation
//   - ValueIsRequiredError: a required value is missing
//   - RemoteUnavailableError: a call to the remote order service failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
package errs
