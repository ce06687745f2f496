package ir

import "fmt"

// Object is implemented by every payload kind the ID table can hold:
// *SPIRType, *SPIRVariable, *SPIRConstant, *SPIRFunction, *SPIRBlock
// and *SPIRUndef.
type Object interface {
	object()
	self() ID
	setSelf(id ID)
	kindName() string
}

// variant is one slot of the ID table: at most one bound payload.
type variant struct {
	obj Object
}

// Set binds obj to id and stamps its Self. Binding an ID at or beyond
// the module bound fails with OutOfRangeID rather than growing the
// table silently. Rebinding an ID replaces the previous payload.
func Set[T Object](m *Module, id ID, obj T) (T, error) {
	if uint32(id) >= uint32(len(m.ids)) {
		var zero T
		return zero, NewIDError(ErrOutOfRangeID, id, "cannot bind ID beyond module bound")
	}
	obj.setSelf(id)
	m.ids[id].obj = obj
	return obj, nil
}

// Get returns the payload bound to id. It fails with OutOfRangeID for
// IDs beyond the bound and TypeMismatch when the slot is absent or
// bound to a different kind; use MaybeGet for speculative lookups.
func Get[T Object](m *Module, id ID) (T, error) {
	var zero T
	if uint32(id) >= uint32(len(m.ids)) {
		return zero, NewIDError(ErrOutOfRangeID, id, "ID beyond module bound")
	}
	obj := m.ids[id].obj
	if obj == nil {
		return zero, NewIDError(ErrTypeMismatch, id, "ID has no bound payload")
	}
	t, ok := obj.(T)
	if !ok {
		return zero, NewIDError(ErrTypeMismatch, id,
			fmt.Sprintf("ID is bound to a %s", obj.kindName()))
	}
	return t, nil
}

// MaybeGet returns the payload bound to id, or false when the ID is
// out of range, unbound, or bound to a different kind. It never fails.
func MaybeGet[T Object](m *Module, id ID) (T, bool) {
	var zero T
	if uint32(id) >= uint32(len(m.ids)) {
		return zero, false
	}
	obj := m.ids[id].obj
	if obj == nil {
		return zero, false
	}
	t, ok := obj.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Has reports whether id is bound to any payload kind.
func (m *Module) Has(id ID) bool {
	return uint32(id) < uint32(len(m.ids)) && m.ids[id].obj != nil
}
