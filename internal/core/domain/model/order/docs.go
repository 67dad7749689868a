// Package order provides domain entities and business logic for the order
// lifecycle engine. It implements the Order aggregate root with event-producing
// state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Item: A line item value object
//
// Key business rules:
//   - Orders must have a valid unique identifier, a user, and at least one line item
//   - Order status follows the fixed transition table:
//     Pending -> {Paid, Cancelled, Failed}; Paid -> {Processing, Cancelled};
//     Processing -> {Shipped}; Shipped -> {Delivered};
//     Delivered, Cancelled and Failed are terminal
//   - Every accepted transition increments the order version by exactly one and
//     produces exactly one domain event with the matching sequence number
//   - An order's state is fully determined by replaying its event history
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
