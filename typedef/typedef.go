// Package typedef tracks, per memory identifier, the type that
// identifier was first concretely assigned, enforcing strong typing
// after first assignment and recording enough source position to
// render a helpful E003 diagnostic.
package typedef

import (
	"github.com/qexat/vism-go/storage"
	"github.com/qexat/vism-go/value"
)

// TypeDef binds an identifier to a type. It is a tagged variant:
// Positional is true when the type was recorded at a concrete source
// assignment (Line/StartCol/EndCol are then meaningful); it is false for
// "free" typedefs: the inferred type of registers, or the implicit
// Unset type of a memory slot never yet assigned.
type TypeDef struct {
	Type       value.Tag
	Positional bool
	Line       int
	StartCol   int
	EndCol     int
}

// Free builds a non-positional typedef of the given type.
func Free(t value.Tag) TypeDef {
	return TypeDef{Type: t}
}

// Positional builds a source-positioned typedef.
func Positional(t value.Tag, line, startCol, endCol int) TypeDef {
	return TypeDef{Type: t, Positional: true, Line: line, StartCol: startCol, EndCol: endCol}
}

// Tracker records the first-assignment typedef of every memory
// identifier seen so far. The zero value is ready to use.
type Tracker struct {
	byIdentifier map[string]TypeDef
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{byIdentifier: make(map[string]TypeDef)}
}

// GetFromIdentifier returns id's typedef, or a free Unset typedef if id
// has never been assigned.
func (t *Tracker) GetFromIdentifier(id string) TypeDef {
	if td, ok := t.byIdentifier[id]; ok {
		return td
	}
	return Free(value.Unset)
}

// GetFromTarget returns the typedef governing assignment into target:
// registers always carry the identifier type at compile time, and
// streams carry no constraint at all.
func (t *Tracker) GetFromTarget(target storage.DataStorage) TypeDef {
	switch target.Kind {
	case storage.Memory:
		return t.GetFromIdentifier(target.Identifier())
	case storage.Register:
		return Free(value.String)
	default:
		return Free(value.Unset)
	}
}

// Set records identifier's typedef at the given source position.
//
// This is a no-op if newType is Unset (Unset carries no information),
// or if the identifier's current typedef already holds newType; in
// the latter case the existing position (if any) must be kept, since
// overwriting it would lose the identifier's true first-assignment
// site. Strong typing is enforced by the caller performing a type
// check before calling Set, not by Set itself.
func (t *Tracker) Set(identifier string, newType value.Tag, line, startCol, endCol int) {
	if newType == value.Unset {
		return
	}
	if current, ok := t.byIdentifier[identifier]; ok && current.Type == newType {
		return
	}
	if t.byIdentifier == nil {
		t.byIdentifier = make(map[string]TypeDef)
	}
	t.byIdentifier[identifier] = Positional(newType, line, startCol, endCol)
}

// IsDefined reports whether identifier carries a positional typedef,
// i.e., whether it has been concretely assigned at least once. A
// register naming an identifier that only has a free (inferred) typedef
// is not "defined" for the purposes of E011.
func (t *Tracker) IsDefined(identifier string) bool {
	td, ok := t.byIdentifier[identifier]
	return ok && td.Positional
}
