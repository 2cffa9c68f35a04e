// Package pairs implements the Pairs capability: keyed read/write of
// internal/value.Value, with an explicit Clone so try-lock isolation
// (spec.md §4.5, §9) never aliases a caller's store through Go's default
// reference semantics for maps.
package pairs

import "github.com/ArkLabsHQ/comrade/internal/value"

// Pairs is the minimal capability contract any concrete key-value store
// must satisfy to back a Context's current or proposed store (spec.md
// §3, §4.1).
type Pairs interface {
	// Get looks up key, reporting ok=false on a miss.
	Get(key string) (v value.Value, ok bool)
	// Put stores value under key, returning the value it displaced, if
	// any.
	Put(key string, v value.Value) (previous value.Value, had bool)
	// Clone returns a deep, independent copy of the store.
	Clone() Pairs
}

// Map is the in-memory Pairs implementation: a map from text keys to
// Values with unique keys. Insertion order is not observable, matching
// spec.md §3.
type Map struct {
	m map[string]value.Value
}

// NewMap returns an empty Map, ready to use.
func NewMap() *Map {
	return &Map{m: make(map[string]value.Value)}
}

// Get implements Pairs.
func (m *Map) Get(key string) (value.Value, bool) {
	v, ok := m.m[key]
	return v, ok
}

// Put implements Pairs.
func (m *Map) Put(key string, v value.Value) (value.Value, bool) {
	previous, had := m.m[key]
	m.m[key] = v
	return previous, had
}

// Clone implements Pairs.
func (m *Map) Clone() Pairs {
	cp := make(map[string]value.Value, len(m.m))
	for k, v := range m.m {
		cp[k] = v
	}
	return &Map{m: cp}
}

// Len reports the number of keys currently stored. Exposed for tests and
// diagnostics, not part of the Pairs contract.
func (m *Map) Len() int { return len(m.m) }
