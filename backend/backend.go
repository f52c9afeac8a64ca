// Package backend lowers straight-line IR into the flat bytecode
// instruction sequence the vm package executes. Each IR mnemonic maps
// to exactly one bytecode op, except UNION and DIFF, whose destination
// type picks between a handful of concrete strategies.
package backend

import (
	"fmt"

	"github.com/qexat/vism-go/bytecode"
	"github.com/qexat/vism-go/ir"
	"github.com/qexat/vism-go/value"
)

// Lower translates a straight-line IR program into bytecode. Any
// Reserved mnemonic (a branch/jump placeholder; see ir.BEQ and
// friends) is rejected, since this back end targets a straight-line
// VM with no control flow.
func Lower(instrs []ir.Instruction) ([]bytecode.Instruction, error) {
	out := make([]bytecode.Instruction, 0, len(instrs))
	for _, iri := range instrs {
		if iri.Mnemonic.Reserved {
			return nil, fmt.Errorf("backend: %s is not a supported instruction", iri.Mnemonic)
		}
		bc, err := lowerOne(iri)
		if err != nil {
			return nil, err
		}
		out = append(out, bc)
	}
	return out, nil
}

func lowerOne(iri ir.Instruction) (bytecode.Instruction, error) {
	switch iri.Mnemonic {
	case ir.MEMCH:
		dest, ok := iri.Dest.(string)
		if !ok {
			return bytecode.Instruction{}, fmt.Errorf("backend: MEMCH dest is not a memory identifier")
		}
		return bytecode.Instruction{Op: bytecode.Mov, Operands: []any{dest, iri.Args[0]}}, nil

	case ir.ADD:
		return ternary(bytecode.Add, iri), nil

	case ir.UNION:
		if iri.DestType == value.Set {
			return ternary(bytecode.Union, iri), nil
		}
		// Every other container type in the overload table (str, bytes,
		// seq, tuple, dict) implements `+` as concatenation/merge, so it
		// reuses the same bytecode op as ADD.
		return ternary(bytecode.Add, iri), nil

	case ir.SUB:
		return ternary(bytecode.Sub, iri), nil

	case ir.DIFF:
		switch iri.DestType {
		case value.String:
			return ternary(bytecode.StrDiff, iri), nil
		case value.Set:
			// Set difference is plain `-`, same op as numeric SUB.
			return ternary(bytecode.Sub, iri), nil
		default:
			return ternary(bytecode.SeqDiff, iri), nil
		}

	case ir.MUL, ir.REPLIC:
		return ternary(bytecode.Mul, iri), nil

	case ir.INTDIV:
		return ternary(bytecode.IntDiv, iri), nil

	case ir.MODULO:
		return ternary(bytecode.Modulo, iri), nil

	case ir.DIVMOD:
		return ternary(bytecode.DivMod, iri), nil

	case ir.PATHJOIN:
		return ternary(bytecode.PathJoin, iri), nil

	case ir.PRINTV:
		// The dest slot is the current target, substituted for the
		// operator's absent real destination. It plays no part in what
		// gets printed, only the register-sourced identifier does.
		return bytecode.Instruction{Op: bytecode.Print, Operands: []any{iri.Args[0]}}, nil

	case ir.SWRITE:
		fd, ok := iri.Dest.(int)
		if !ok {
			return bytecode.Instruction{}, fmt.Errorf("backend: SWRITE dest is not a stream descriptor")
		}
		return bytecode.Instruction{Op: bytecode.Write, Operands: []any{fd, iri.Args[0]}}, nil

	case ir.SFLUSH:
		fd, ok := iri.Dest.(int)
		if !ok {
			return bytecode.Instruction{}, fmt.Errorf("backend: SFLUSH dest is not a stream descriptor")
		}
		return bytecode.Instruction{Op: bytecode.Flush, Operands: []any{fd}}, nil

	default:
		return bytecode.Instruction{}, fmt.Errorf("backend: %s is not a supported instruction", iri.Mnemonic)
	}
}

// ternary lowers a (dest, arg0, arg1) IR instruction into a
// three-operand bytecode instruction under op.
func ternary(op bytecode.Op, iri ir.Instruction) bytecode.Instruction {
	return bytecode.Instruction{Op: op, Operands: []any{iri.Dest, iri.Args[0], iri.Args[1]}}
}
