// Package services provides domain services that work on the order aggregate
// without owning any state of their own.
//
// The package includes:
//   - TransitionEngine: validates and computes order and item status changes
//     on a copy of the order, so callers can apply or discard the result
//   - Severity helpers: elapsed time references, the severity scale shown on
//     the display and the timer format used on cards
package services
