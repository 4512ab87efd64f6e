// Package errs provides standardized error types for the kitchen coordinator.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of error types:
//   - Validation errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError and ObjectNotFoundError
//   - Coordinator errors: IllegalTransitionError, TransientFetchError,
//     MutationError and NotificationDispatchError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is matches the family
//
// Coordinator errors classify what the caller should do next: an illegal
// transition is rejected before any local change, a transient fetch skips the
// reconciliation cycle, a mutation error means the local view was rolled back,
// and a notification dispatch error is only ever logged.
package errs
