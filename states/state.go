package states

import (
	"iter"
	"maps"
	"slices"
)

// LastResult is the reserved name holding the most recent prompt response.
const LastResult = "_"

// State is an immutable mapping from variable name to value.
// Every operation returning a State leaves the receiver untouched.
type State struct {
	values map[string]any
}

func New(values map[string]any) State {
	return State{
		values: maps.Clone(values),
	}
}

func (s State) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

func (s State) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

func (s State) Len() int {
	return len(s.values)
}

// Names returns the variable names in sorted order.
func (s State) Names() []string {
	return slices.Sorted(maps.Keys(s.values))
}

func (s State) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range s.Names() {
			if !yield(name, s.values[name]) {
				return
			}
		}
	}
}

// Map returns a shallow copy of the underlying values.
func (s State) Map() map[string]any {
	ret := maps.Clone(s.values)
	if ret == nil {
		ret = make(map[string]any)
	}
	return ret
}

func (s State) With(name string, value any) State {
	values := s.Map()
	values[name] = value
	return State{
		values: values,
	}
}

func (s State) Merge(updates map[string]any) State {
	if len(updates) == 0 {
		return s
	}
	values := s.Map()
	maps.Copy(values, updates)
	return State{
		values: values,
	}
}

func (s State) Without(names ...string) State {
	values := s.Map()
	for _, name := range names {
		delete(values, name)
	}
	return State{
		values: values,
	}
}

// NameSet returns the names as a set, for dependency analysis.
func (s State) NameSet() map[string]bool {
	ret := make(map[string]bool, len(s.values))
	for name := range s.values {
		ret[name] = true
	}
	return ret
}
