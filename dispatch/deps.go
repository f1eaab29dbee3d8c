package dispatch

import "reflect"

// DepMap is a type-indexed map of dependencies carried through one update's
// walk of the handler DAG. Handlers declare their parameters by type;
// Insert/Get key on reflect.Type so any concrete type can be stored without
// the caller naming a string key.
type DepMap struct {
	values map[reflect.Type]any
}

// NewDepMap builds an empty DepMap.
func NewDepMap() *DepMap {
	return &DepMap{values: make(map[reflect.Type]any)}
}

// Insert stores v, keyed by its own concrete type. A later Insert of the
// same type overwrites the earlier value — this is how filter_map injects a
// freshly computed dependency for nodes further down the chain.
func (d *DepMap) Insert(v any) {
	d.values[reflect.TypeOf(v)] = v
}

// clone returns a shallow copy, so branching into sibling nodes doesn't let
// one branch's filter_map insertions leak into another.
func (d *DepMap) clone() *DepMap {
	c := make(map[reflect.Type]any, len(d.values))
	for k, v := range d.values {
		c[k] = v
	}
	return &DepMap{values: c}
}

// Get retrieves the value of type T previously Insert-ed, or panics if
// none is present — matching spec.md §4.7's "missing dependency at endpoint
// invocation is a programmer error and must panic" contract.
func Get[T any](d *DepMap) T {
	var zero T
	t := reflect.TypeOf(zero)
	v, ok := d.values[t]
	if !ok {
		panic("dispatch: missing dependency of type " + t.String())
	}
	return v.(T)
}

// TryGet is the non-panicking form of Get.
func TryGet[T any](d *DepMap) (T, bool) {
	var zero T
	t := reflect.TypeOf(zero)
	v, ok := d.values[t]
	if !ok {
		return zero, false
	}
	return v.(T), true
}
