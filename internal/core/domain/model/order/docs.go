// Package order provides domain entities and business logic for order
// management and driver dispatch. It implements the Order aggregate root with
// lifecycle management and the driver-search session state machine.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, route waypoints,
//     the delivery lifecycle, and the driver-search session
//   - Status: A state machine that enforces valid delivery status transitions
//   - SearchStatus: A state machine for the search phases (searching,
//     expanded, stopped) with monotonic, restart-capable transitions
//   - Waypoint: A value object for a route stop with an address, optional
//     resolved coordinates, and a fulfillment flag
//   - Type: The order category, which determines the search-origin policy
//
// Key business rules:
//   - A driver is bound to an order exactly when the status is Accepted or later
//   - The search session only advances forward and never skips the expanded
//     phase on the way to stopped
//   - Package orders search from the pickup waypoint; multi-stop orders from
//     the first unfulfilled waypoint; the delivery address is never an origin
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
