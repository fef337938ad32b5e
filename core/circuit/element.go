// Package circuit implements the core element model shared by pins,
// wires and components: stable identity, declared state slots with a
// snapshot-before/update-after mutation contract, and the endpoint and
// mapping primitives components are built from.
package circuit

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/exp/slices"
)

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const randomNameLen = 5

// randomName generates a 5-character identity tag from crypto/rand
// over a fixed alphabet rather than a PRNG, so names stay usable as
// map keys without a global counter.
func randomName() string {
	buf := make([]byte, randomNameLen)
	_, _ = rand.Read(buf)
	out := make([]byte, randomNameLen)
	for i, b := range buf {
		out[i] = nameAlphabet[int(b)%len(nameAlphabet)]
	}
	return string(out)
}

// ChainClassifier composes a parent classifier and a type's own
// contribution: each non-empty segment is joined by '_', an empty
// contribution leaves the parent unchanged. See DESIGN.md for the
// choice of '_' as the join character.
func ChainClassifier(parent, own string) string {
	switch {
	case parent == "":
		return own
	case own == "":
		return parent
	default:
		return parent + "_" + own
	}
}

// Direction is a pin endpoint's role on a wire or component boundary.
type Direction uint8

const (
	// In marks a pin that writes into the owning wire/component.
	In Direction = iota
	// Out marks a pin that the owning wire/component drives.
	Out
)

func (d Direction) String() string {
	if d == In {
		return "IN"
	}
	return "OUT"
}

// Element is the identity and state-snapshot contract every pin, wire
// and component satisfies.
type Element interface {
	// ID is a process-stable identifier: name + "__" + an
	// instance-unique suffix handed out by a Registry on Add.
	ID() string
	Name() string
	FullName() string
	Classifier() string
	// Snapshot returns alias -> current value for every declared
	// state slot.
	Snapshot() map[string]any
	// Restore assigns every aliased value back (used by tests and by
	// Update's prev-snapshot argument).
	Restore(snapshot map[string]any)
}

// UpdateHook is implemented by the concrete Pin/Wire/Component so Base
// can invoke the post-mutation hook after a state slot is written. Go
// has no attribute-interception mechanism, so this is an explicit
// method the embedder must implement and register via Init.
type UpdateHook interface {
	OnUpdate(prev map[string]any)
}

// Base is embedded by Pin, Wire and Component. It stores the element's
// identity and its declared state slots, and implements the
// snapshot-before/assign/update-after mutation contract every state
// write must go through.
type Base struct {
	name       string
	classifier string
	id         string
	hook       UpdateHook
	slotOrder  []string
	slots      map[string]any
}

// Init must be called exactly once by the embedding constructor,
// before any state slot is touched. hook is normally the embedding
// value itself (e.g. (*Pin) implementing OnUpdate).
func (b *Base) Init(hook UpdateHook, classifier, name string, slotAliases ...string) {
	if name == "" {
		name = randomName()
	}
	b.hook = hook
	b.classifier = classifier
	b.name = name
	b.slotOrder = append([]string(nil), slotAliases...)
	b.slots = make(map[string]any, len(slotAliases))
	for _, alias := range slotAliases {
		b.slots[alias] = nil
	}
}

// BindID is called by Registry.Add to fix this element's identity.
func (b *Base) BindID(id string) { b.id = id }

func (b *Base) ID() string   { return b.id }
func (b *Base) Name() string { return b.name }

func (b *Base) FullName() string {
	if b.classifier == "" {
		return b.name
	}
	return b.classifier + "_" + b.name
}

func (b *Base) Classifier() string { return b.classifier }

// Snapshot returns a shallow copy of every declared state slot.
func (b *Base) Snapshot() map[string]any {
	out := make(map[string]any, len(b.slots))
	for alias, v := range b.slots {
		out[alias] = v
	}
	return out
}

// Restore assigns every aliased value back without firing the update
// hook (used to replay a previous snapshot, e.g. in tests).
func (b *Base) Restore(snapshot map[string]any) {
	for alias, v := range snapshot {
		if _, declared := b.slots[alias]; declared {
			b.slots[alias] = v
		}
	}
}

// Get reads the current value of a declared state slot.
func (b *Base) Get(alias string) any { return b.slots[alias] }

// Has reports whether alias names a declared state slot.
func (b *Base) Has(alias string) bool {
	_, ok := b.slots[alias]
	return ok
}

// SetState is the sole mutation path for a declared state slot: it
// snapshots the element's state, installs the new value, then invokes
// hook.OnUpdate(prev). It returns an error for an undeclared alias
// rather than silently creating one; the set of state slots an element
// carries is fixed at construction.
func (b *Base) SetState(alias string, value any) error {
	if _, ok := b.slots[alias]; !ok {
		return fmt.Errorf("circuit: %s has no declared state slot %q", b.FullName(), alias)
	}
	prev := b.Snapshot()
	b.slots[alias] = value
	b.hook.OnUpdate(prev)
	return nil
}

func (b *Base) String() string {
	return fmt.Sprintf("<<%s>>(%v)", b.FullName(), b.Snapshot())
}

// SortedAliases returns the keys of a snapshot/state map in sorted
// order. Go map iteration order is randomized, but the cascades built
// on top of a state update (which dependent aliases refresh first,
// which OUT pins get driven first) need a reproducible order for trace
// output to be stable across runs; sorting the alias set is the
// cheapest way to get that without threading an explicit order through
// every caller.
func SortedAliases(state map[string]any) []string {
	out := make([]string, 0, len(state))
	for alias := range state {
		out = append(out, alias)
	}
	slices.Sort(out)
	return out
}
