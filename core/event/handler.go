package event

import "github.com/jangala-dev/logy/core/circuit"

// ElementMatch is a predicate over an event's source or target. A nil
// ElementMatch places no restriction. Build one with Is/OneOf/Any.
type ElementMatch func(circuit.Element) bool

// Any matches every element, including a nil one.
func Any(circuit.Element) bool { return true }

// Is matches only the exact element given (identity match).
func Is(el circuit.Element) ElementMatch {
	return func(e circuit.Element) bool { return e == el }
}

// OneOf matches any of the given elements (identity match).
func OneOf(els ...circuit.Element) ElementMatch {
	return func(e circuit.Element) bool {
		for _, want := range els {
			if e == want {
				return true
			}
		}
		return false
	}
}

// Handler is a predicate+action pair: Matches(e) decides whether
// Handle(e) should run. Handlers are attached to the scheduler in a
// fixed order and are expected to be re-entrant only in the sense that
// Handle may itself schedule new events.
type Handler struct {
	types   []Type
	source  ElementMatch
	target  ElementMatch
	matcher func(Event) bool
	action  func(Event) error
}

// Simple builds a Handler whose Matches is a four-part conjunction:
// event type, source, target, and an optional extra predicate. action
// may return a DomainError/TopologyError-flavoured error; the
// scheduler aborts just that handler's invocation and logs it.
func Simple(types []Type, source, target ElementMatch, matcher func(Event) bool, action func(Event) error) *Handler {
	if source == nil {
		source = Any
	}
	if target == nil {
		target = Any
	}
	return &Handler{types: types, source: source, target: target, matcher: matcher, action: action}
}

// Matches reports whether this handler should fire for e.
func (h *Handler) Matches(e Event) bool {
	typeOK := len(h.types) == 0
	for _, t := range h.types {
		if t == e.Type() {
			typeOK = true
			break
		}
	}
	if !typeOK {
		return false
	}
	if !h.source(e.Source()) || !h.target(e.Target()) {
		return false
	}
	if h.matcher != nil && !h.matcher(e) {
		return false
	}
	return true
}

// Handle runs this handler's action. Callers are expected to check
// Matches first; Handle does not re-check.
func (h *Handler) Handle(e Event) error { return h.action(e) }
