// Package value defines Vism's memory value domain: the closed set of
// types a memory slot may hold, expressed as a tagged union so dispatch
// tables can key off a small enum instead of runtime type assertions
// scattered through the compiler and VM.
package value

import "fmt"

// Tag identifies the dynamic type of a memory value.
type Tag int

// Any is a wildcard sentinel used only in overload-table signatures
// (it stands in for an unconstrained memory value), never the Tag of
// an actual value. Dispatch treats both Any and Unset as wildcards;
// see ir.PseudoMnemonic.GetOverload.
const Any Tag = -1

const (
	// Unset is the sentinel type of a memory slot that has never been
	// assigned. It is assignment-compatible with every other Tag.
	Unset Tag = iota
	Int
	Float
	Complex
	Bool
	String
	Bytes
	Seq
	Tuple
	Set
	Dict
)

func (t Tag) String() string {
	switch t {
	case Any:
		return "any"
	case Unset:
		return "unset"
	case Int:
		return "int"
	case Float:
		return "float"
	case Complex:
		return "complex"
	case Bool:
		return "bool"
	case String:
		return "str"
	case Bytes:
		return "bytes"
	case Seq:
		return "seq"
	case Tuple:
		return "tuple"
	case Set:
		return "set"
	case Dict:
		return "map"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// SeqValue is Vism's ordered, mutable sequence (a Python list analogue).
type SeqValue []any

// TupleValue is Vism's ordered, fixed-arity sequence.
type TupleValue []any

// SetValue is Vism's unordered unique-element collection. Elements must be
// comparable, matching the host language's hashability requirement.
type SetValue map[any]struct{}

// DictValue is Vism's key/value mapping. Keys must be comparable.
type DictValue map[any]any

// NewSet builds a SetValue from a slice of elements, deduplicating.
func NewSet(elems ...any) SetValue {
	s := make(SetValue, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Elements returns the set's members in indeterminate order.
func (s SetValue) Elements() []any {
	out := make([]any, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	return out
}

// TagOf returns the Tag of a Go value as it would be observed by Vism's
// static type tracker. A nil any is reported as Unset.
func TagOf(v any) Tag {
	switch v.(type) {
	case nil:
		return Unset
	case int:
		return Int
	case float64:
		return Float
	case complex128:
		return Complex
	case bool:
		return Bool
	case string:
		return String
	case []byte:
		return Bytes
	case SeqValue:
		return Seq
	case TupleValue:
		return Tuple
	case SetValue:
		return Set
	case DictValue:
		return Dict
	default:
		return Unset
	}
}

// Assignable reports whether a value of the given Tag may be assigned
// to a memory slot whose typedef currently holds targetTag: Unset is
// assignment-compatible with any type, and a concretely typed slot
// only accepts values of its own exact Tag.
func Assignable(targetTag, valueTag Tag) bool {
	return targetTag == Unset || targetTag == valueTag
}
