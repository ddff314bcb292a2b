// Package errs provides standardized error types for the dispatch engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The error taxonomy covers the outcomes the engine distinguishes:
//   - ObjectNotFoundError: an order or driver could not be located
//   - ConflictError: an assignment race was lost (expected, routine)
//   - InvalidStateError: an operation was requested in a state that forbids it
//   - UpstreamUnavailableError: a geocoder or notification sender failed
//   - ValueIsRequired/ValueIsInvalid/ValueIsOutOfRange: input validation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
