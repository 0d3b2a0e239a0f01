// Package lifecycle models document status graphs as plain data. Each
// entity declares its allowed transitions in an adjacency table; anything
// not listed is rejected.
package lifecycle

import "fmt"

// Table maps a status to the set of statuses it may move to.
type Table[S ~string] map[S][]S

// Can reports whether from -> to is an allowed transition.
func (t Table[S]) Can(from, to S) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (t Table[S]) Terminal(s S) bool {
	return len(t[s]) == 0
}

// Check validates a requested transition and returns an
// InvalidTransitionError naming both states when it is not allowed.
func (t Table[S]) Check(entity string, from, to S) error {
	if !t.Can(from, to) {
		return &InvalidTransitionError{
			Entity: entity,
			From:   string(from),
			To:     string(to),
		}
	}
	return nil
}

// InvalidTransitionError is returned when a status change is not present
// in the entity's transition table.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: invalid transition %s -> %s", e.Entity, e.From, e.To)
}

// ImmutableStateError is returned when an entity is mutated or deleted in
// a status that forbids it.
type ImmutableStateError struct {
	Entity string
	Status string
	Action string
}

func (e *ImmutableStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s while %s", e.Entity, e.Action, e.Status)
}
