// Package order provides the Order aggregate tracked by the kitchen display,
// its Item entities and the closed status enums that drive them.
//
// The package includes:
//   - Order: the aggregate root holding identity, display data and items
//   - Item: one line of an order, prepared at a station
//   - Status and ItemStatus: closed enums with explicit transition tables
//   - Transition: the description of what an Advance call changed
//
// Key business rules:
//   - Order status follows Confirmed -> Preparing -> Ready -> Delivered
//   - Item status follows Pending -> Preparing -> Ready and never regresses
//   - Starting an order starts every pending item; finishing an order
//     finishes every unfinished item
//   - When the last item of an order is finished the order becomes Ready
//   - PreparingAt and ReadyAt timestamps are stamped once and never moved
//   - Requesting the current status again is a no-op, not an error
package order
