package order

import (
	"fmt"

	"comanda/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a fixed directed transition graph:
//
//	TO_CONFIRM ──> CONFIRMED ──> PREPARED ──> PAGADO
//	     │          │  ▲  │
//	     │          │  │  └────> MODIFIED
//	     │          │  └────────────┘
//	     └──────────┴──────────────────────> CANCELED
//
// PAGADO and CANCELED are terminal. There are no self-loops: requesting the
// already-current status is not a valid transition.
//
// MODIFIED is a reserved state: its edges are part of the graph but no code
// path currently produces it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// ToConfirm is the draft phase: the order is being assembled and has no
	// durable identity yet.
	ToConfirm

	// Confirmed means the order has been submitted and the kitchen may act
	// on its items.
	Confirmed

	// Prepared means every item has been prepared (or canceled, with at
	// least one prepared). Entered explicitly or by auto-advance.
	Prepared

	// Paid is the terminal success state, written as PAGADO on the wire.
	Paid

	// Modified is reserved for order amendment flows. Reachable in the
	// graph, produced by no current caller.
	Modified

	// Canceled is the terminal failure state. Cancellation never deletes
	// the order row.
	Canceled
)

// getStatusStrings returns the wire representation of every status,
// including Unknown for display purposes.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		ToConfirm: "TO_CONFIRM",
		Confirmed: "CONFIRMED",
		Prepared:  "PREPARED",
		Paid:      "PAGADO",
		Modified:  "MODIFIED",
		Canceled:  "CANCELED",
	}
}

// getStatusTransitions returns the edge set of the order status graph.
// Terminal statuses map to an empty slice.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		ToConfirm: {Confirmed, Canceled},
		Confirmed: {Prepared, Modified, Canceled},
		Prepared:  {Paid},
		Modified:  {Confirmed, Canceled},
		Paid:      {},
		Canceled:  {},
	}
}

// ParseStatus converts a wire string such as "CONFIRMED" into a Status.
// Returns an error for strings outside the vocabulary.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid order status", s),
	)
}

// Validate checks if the Status value is part of the vocabulary.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid order status", s),
		)
	}
	return nil
}

// String returns the wire name of the status, e.g. "PAGADO".
// Implements fmt.Stringer; safe on any value including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether to is an edge of the graph from s.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range getStatusTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transitions returns the legal next states from s. Used to drive UI
// affordances (which next-states to offer). Terminal and invalid statuses
// return an empty slice.
func (s Status) Transitions() []Status {
	edges := getStatusTransitions()[s]
	out := make([]Status, len(edges))
	copy(out, edges)
	return out
}

// TransitionTo validates the edge from s to to and returns the new status.
// Any transition not present in the edge set fails with an
// InvalidTransitionError; the caller's state must remain unchanged.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), to.String())
	}
	return to, nil
}

// IsTerminal reports whether s permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Canceled
}
