// Package kernel provides shared domain primitives for the kitchen coordinator.
//
// The package currently holds UUID, the identifier value object used for
// orders and items. It wraps github.com/google/uuid so that zero values are
// detectable and identifiers serialize as canonical strings in JSON and logs.
package kernel
