package order

import (
	"fmt"

	"comanda/internal/pkg/errs"
)

// ItemStatus represents the kitchen-facing state of a single order item:
//
//	TO_PREPARE ──> PREPARING ──> PREPARED
//	     │             │
//	     └─────────────┴───────> CANCELED
//
// PREPARED and CANCELED are terminal. The PREPARING edge is part of the
// vocabulary even though the kitchen flow may jump straight from TO_PREPARE
// to terminal states.
type ItemStatus int

const (
	// ItemUnknown represents an invalid or undefined item status.
	ItemUnknown ItemStatus = iota

	// ItemToPrepare is the initial state of every item on a confirmed order.
	ItemToPrepare

	// ItemPreparing means the kitchen has started working on the item.
	ItemPreparing

	// ItemPrepared is the terminal success state.
	ItemPrepared

	// ItemCanceled is the terminal failure state.
	ItemCanceled
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemUnknown:   "UNKNOWN",
		ItemToPrepare: "TO_PREPARE",
		ItemPreparing: "PREPARING",
		ItemPrepared:  "PREPARED",
		ItemCanceled:  "CANCELED",
	}
}

func getItemStatusTransitions() map[ItemStatus][]ItemStatus {
	return map[ItemStatus][]ItemStatus{
		ItemToPrepare: {ItemPreparing, ItemCanceled},
		ItemPreparing: {ItemPrepared, ItemCanceled},
		ItemPrepared:  {},
		ItemCanceled:  {},
	}
}

// ParseItemStatus converts a wire string such as "PREPARED" into an
// ItemStatus. Returns an error for strings outside the vocabulary.
func ParseItemStatus(s string) (ItemStatus, error) {
	for status, str := range getItemStatusStrings() {
		if str == s && status != ItemUnknown {
			return status, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause(
		"itemStatus",
		fmt.Errorf("%q is not a valid item status", s),
	)
}

// Validate checks if the ItemStatus value is part of the vocabulary.
func (s ItemStatus) Validate() error {
	if _, ok := getItemStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"itemStatus",
			fmt.Errorf("%d is not a valid item status", s),
		)
	}
	return nil
}

// String returns the wire name of the item status, e.g. "TO_PREPARE".
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether to is an edge of the graph from s.
func (s ItemStatus) CanTransitionTo(to ItemStatus) bool {
	for _, next := range getItemStatusTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transitions returns the legal next states from s.
func (s ItemStatus) Transitions() []ItemStatus {
	edges := getItemStatusTransitions()[s]
	out := make([]ItemStatus, len(edges))
	copy(out, edges)
	return out
}

// TransitionTo validates the edge from s to to and returns the new status.
func (s ItemStatus) TransitionTo(to ItemStatus) (ItemStatus, error) {
	if err := to.Validate(); err != nil {
		return ItemUnknown, err
	}
	if !s.CanTransitionTo(to) {
		return ItemUnknown, errs.NewInvalidTransitionError("item", s.String(), to.String())
	}
	return to, nil
}

// IsTerminal reports whether s permits no further transitions.
func (s ItemStatus) IsTerminal() bool {
	return s == ItemPrepared || s == ItemCanceled
}
