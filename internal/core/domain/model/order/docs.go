// Package order provides domain entities and business logic for restaurant
// order management. It implements the Order aggregate root with its owned
// Items and the two status state machines that drive the order lifecycle.
//
// The package includes:
//   - Order: The aggregate root that manages identity, items, and lifecycle
//   - Item: An entity owned exclusively by its Order, never referenced outside it
//   - Status: The order state machine (TO_CONFIRM through PAGADO/CANCELED)
//   - ItemStatus: The kitchen-facing item state machine (TO_PREPARE through PREPARED/CANCELED)
//
// Key business rules:
//   - Orders are assembled as TO_CONFIRM drafts and confirmed with at least one item
//   - Status transitions follow fixed directed graphs with no self-loops
//   - PAGADO and CANCELED are terminal: no further mutation is permitted
//   - When every item is PREPARED or CANCELED with at least one PREPARED,
//     a CONFIRMED order auto-advances to PREPARED
//   - Lifecycle timestamps are stamped exactly once, never rewritten
//   - Totals are derived by summing item prices at read time, never stored
//
// State changes record domain events on the aggregate; the application layer
// drains them after a successful commit and hands them to the notification
// channel.
package order
