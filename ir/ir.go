// Package ir defines Vism's symbolic intermediate representation: the
// IR mnemonics emitted by the compiler, the pseudo-mnemonics (source
// operator symbols) that resolve to them via static overload tables,
// and the dispatch rule used to pick a concrete mnemonic from a tuple
// of operand value types.
package ir

import (
	"fmt"
	"strings"

	"github.com/qexat/vism-go/value"
)

// ArgKind identifies how an IR instruction's dest or argument position
// is sourced at compile time.
type ArgKind int

const (
	// IdentifierLike positions are sourced from the compiler's register
	// file: the Nth register in declared order names a memory slot.
	IdentifierLike ArgKind = iota
	// StreamIDLike positions are sourced from the current Select target
	// rather than a register: either a literal stream file descriptor,
	// or (for unary no-target operators like `p`) the current target's
	// id, whatever its kind.
	StreamIDLike
)

// Mnemonic is a named IR opcode. The destination and argument kinds
// used to source its operands live on the PseudoMnemonic that resolves
// to it, not on the Mnemonic. Reserved mnemonics (the branch placeholders)
// carry no runtime semantics and must be rejected by the back-end.
type Mnemonic struct {
	Name     string
	Reserved bool
}

func (m Mnemonic) String() string { return m.Name }

// Instruction is one emitted IR
// operation: its mnemonic, destination, and positional arguments, each
// tagged with the concrete value type observed at compile time. The
// back-end reads DestType to pick instruction specializations.
type Instruction struct {
	Mnemonic Mnemonic
	Dest     any
	DestType value.Tag
	Args     []any
	ArgTypes []value.Tag
}

func (i Instruction) String() string {
	var b strings.Builder
	b.WriteString(i.Mnemonic.Name)
	b.WriteByte(' ')
	parts := make([]string, 0, len(i.Args)+1)
	if i.Dest != nil {
		parts = append(parts, fmt.Sprint(i.Dest))
	}
	for _, a := range i.Args {
		parts = append(parts, fmt.Sprint(a))
	}
	b.WriteString(strings.Join(parts, ", "))
	return b.String()
}

// Assignment and stream-write mnemonics, emitted directly by the
// compiler's assignment-flush logic rather than through pseudo-mnemonic
// dispatch.
var (
	MEMCH  = Mnemonic{Name: "MEMCH"}
	SWRITE = Mnemonic{Name: "SWRITE"}
)

// Arithmetic, container, and I/O mnemonics, reached through the
// pseudo-mnemonic overload tables of overload.go.
var (
	ADD      = Mnemonic{Name: "ADD"}
	SUB      = Mnemonic{Name: "SUB"}
	MUL      = Mnemonic{Name: "MUL"}
	INTDIV   = Mnemonic{Name: "INTDIV"}
	MODULO   = Mnemonic{Name: "MODULO"}
	DIVMOD   = Mnemonic{Name: "DIVMOD"}
	UNION    = Mnemonic{Name: "UNION"}
	DIFF     = Mnemonic{Name: "DIFF"}
	REPLIC   = Mnemonic{Name: "REPLIC"}
	PATHJOIN = Mnemonic{Name: "PATHJOIN"}
	PRINTV   = Mnemonic{Name: "PRINTV"}
	SFLUSH   = Mnemonic{Name: "SFLUSH"}
)

// Reserved branch/jump mnemonics. The IR is straight-line only; these
// exist so a future back-end has names to grow into, but this back-end
// rejects them outright (see backend.Lower).
var (
	BEQ  = Mnemonic{Name: "BEQ", Reserved: true}
	BEQ0 = Mnemonic{Name: "BEQ0", Reserved: true}
	BEQ1 = Mnemonic{Name: "BEQ1", Reserved: true}
	BNE  = Mnemonic{Name: "BNE", Reserved: true}
	BGE  = Mnemonic{Name: "BGE", Reserved: true}
	BGT  = Mnemonic{Name: "BGT", Reserved: true}
	BLE  = Mnemonic{Name: "BLE", Reserved: true}
	BLT  = Mnemonic{Name: "BLT", Reserved: true}
	JUMP = Mnemonic{Name: "JUMP", Reserved: true}
)
