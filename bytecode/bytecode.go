// Package bytecode defines the flat instruction set the vm package
// executes. A composite operation (the write-then-flush chain behind
// `print`) is expressed here as a single dedicated op that performs
// both steps in plain sequence; there is no general instruction
// combinator type to hold nested closures together.
package bytecode

import (
	"fmt"
	"strings"
)

// Op identifies a VM instruction.
type Op int

const (
	// Mov stores a value into a named memory slot.
	Mov Op = iota
	// Add performs numeric addition or string/bytes/seq/tuple/dict
	// concatenation, depending on the runtime operand types.
	Add
	// Sub performs numeric subtraction or set difference.
	Sub
	// Mul performs numeric multiplication or container replication.
	Mul
	// IntDiv performs floor division on ints.
	IntDiv
	// Modulo performs the floor modulo on ints.
	Modulo
	// DivMod yields the (quotient, remainder) pair as a tuple.
	DivMod
	// Union performs a set union.
	Union
	// StrDiff removes every occurrence of one string from another.
	StrDiff
	// SeqDiff filters a bytes/seq/tuple/dict value down to the elements
	// absent from another container of the same kind.
	SeqDiff
	// PathJoin joins two strings with a `/` separator.
	PathJoin
	// Write appends a string to a numbered output stream's buffer.
	Write
	// Flush drains a stream's buffer to its bound endpoint.
	Flush
	// Print formats a memory slot's value and writes+flushes it to
	// stdout in one step; a nil/never-assigned slot prints nothing.
	Print
)

func (o Op) String() string {
	switch o {
	case Mov:
		return "mov"
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case IntDiv:
		return "intdiv"
	case Modulo:
		return "modulo"
	case DivMod:
		return "divmod"
	case Union:
		return "union"
	case StrDiff:
		return "strdiff"
	case SeqDiff:
		return "seqdiff"
	case PathJoin:
		return "pathjoin"
	case Write:
		return "write"
	case Flush:
		return "flush"
	case Print:
		return "print"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Instruction is one VM operation: an opcode and its positional
// operands (memory identifiers, stream fds, or already-compiled
// literal values, depending on Op).
type Instruction struct {
	Op       Op
	Operands []any
}

func (i Instruction) String() string {
	parts := make([]string, len(i.Operands))
	for idx, op := range i.Operands {
		parts[idx] = fmt.Sprint(op)
	}
	return i.Op.String() + " " + strings.Join(parts, ", ")
}
