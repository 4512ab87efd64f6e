// Package kitchen holds the Coordinator, the object that owns a terminal's
// local view of active orders.
//
// Every consumer gets the same *Coordinator. It reconciles the view against
// the order store on two triggers (a timer and the change feed) and applies
// user transitions optimistically through an optimistic.Executor keyed by
// order id. It also decides when to ring the new order alert, keeps the
// display preferences and maps positional keys to transitions.
//
// The view is guarded by a single mutex. Blocking work (snapshot fetch,
// durable writes, notifications) always runs outside of it.
package kitchen
