// Package storage implements Vism's tagged data-storage handles: the
// three addressable targets a parsed statement may select: a named
// Memory slot, a compile-time-only Register, or a numbered output
// Stream.
package storage

import "fmt"

// Kind identifies which of the three addressable targets a DataStorage
// refers to.
type Kind int

const (
	Memory Kind = iota
	Register
	Stream
)

// Symbol is the source character that switches the parser into Select
// mode for this Kind.
func (k Kind) Symbol() rune {
	switch k {
	case Memory:
		return '&'
	case Register:
		return '$'
	case Stream:
		return ':'
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case Memory:
		return "Memory"
	case Register:
		return "Register"
	case Stream:
		return "Stream"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf returns the Kind switched to by a Select-mode symbol, and
// whether the symbol names one at all.
func KindOf(symbol rune) (Kind, bool) {
	switch symbol {
	case '&':
		return Memory, true
	case '$':
		return Register, true
	case ':':
		return Stream, true
	default:
		return 0, false
	}
}

// streamNames aliases the well-known stream file descriptors to their
// mnemonic names for diagnostic and debug rendering, in fd order
// (null=-1, stdout=0, stderr=1).
var streamNames = map[int]string{
	-1: "null",
	0:  "stdout",
	1:  "stderr",
}

// NullFD is the distinguished write-discarding stream descriptor.
const NullFD = -1

// DataStorage is a tagged handle naming one addressable target. ID holds
// a string for Memory (the identifier), or an int for Register (the
// hex address) and Stream (the file descriptor).
type DataStorage struct {
	Kind Kind
	ID   any
}

// Default returns the parser's distinguished default target: the null
// stream.
func Default() DataStorage {
	return DataStorage{Kind: Stream, ID: NullFD}
}

// NewMemory builds a Memory-kind target naming identifier id.
func NewMemory(id string) DataStorage { return DataStorage{Kind: Memory, ID: id} }

// NewRegister builds a Register-kind target at hex address id.
func NewRegister(id int) DataStorage { return DataStorage{Kind: Register, ID: id} }

// NewStream builds a Stream-kind target at file descriptor id.
func NewStream(id int) DataStorage { return DataStorage{Kind: Stream, ID: id} }

// Identifier returns ID as a memory identifier. Panics if Kind is not
// Memory; callers must check Kind first.
func (d DataStorage) Identifier() string { return d.ID.(string) }

// Address returns ID as an int (register address or stream fd). Panics
// if Kind is Memory; callers must check Kind first.
func (d DataStorage) Address() int { return d.ID.(int) }

// WithID returns a copy of d with its ID replaced, keeping Kind fixed.
func (d DataStorage) WithID(id any) DataStorage {
	return DataStorage{Kind: d.Kind, ID: id}
}

// String renders the canonical `Kind[id]` form. Register addresses
// render in hex, stream descriptors alias to their mnemonic name when
// one exists, and memory identifiers render as-is.
func (d DataStorage) String() string {
	switch d.Kind {
	case Register:
		return fmt.Sprintf("%s[0x%02x]", d.Kind, d.Address())
	case Stream:
		if name, ok := streamNames[d.Address()]; ok {
			return name
		}
		return fmt.Sprintf("%s[%d]", d.Kind, d.Address())
	default:
		return fmt.Sprintf("%s[%s]", d.Kind, d.Identifier())
	}
}
