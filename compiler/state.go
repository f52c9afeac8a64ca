package compiler

import (
	"github.com/qexat/vism-go/diag"
	"github.com/qexat/vism-go/ir"
	"github.com/qexat/vism-go/parser"
	"github.com/qexat/vism-go/storage"
	"github.com/qexat/vism-go/typedef"
	"github.com/qexat/vism-go/value"
)

// RegisterCount is the number of register slots available to a
// compilation unit (`$0`..`$F`).
const RegisterCount = 0x10

// State extends the parser's bare FSM state with everything the
// compiler needs to type-check and emit IR: a typedef tracker, the
// register file (each slot names the memory identifier a `$N`
// assignment bound it to, or is unset), the instructions emitted so
// far, and any diagnostics raised along the way.
type State struct {
	*parser.State

	Typedefs  *typedef.Tracker
	Registers [RegisterCount]*string

	IR     []ir.Instruction
	Errors diag.Errors
}

// NewState returns a fresh compiler State: Normal mode, no typedefs, no
// registers bound, no instructions, no errors.
func NewState() *State {
	return &State{
		State:    parser.NewState(),
		Typedefs: typedef.NewTracker(),
	}
}

// GetTargetTypedef returns the typedef currently bound to the Select
// target.
func (s *State) GetTargetTypedef() typedef.TypeDef {
	return s.Typedefs.GetFromTarget(s.Target)
}

// SetTargetTypedef records newType against the Select target's
// identifier at the given position. A no-op unless the target is a
// Memory slot: registers and streams do not carry persistent typedefs.
func (s *State) SetTargetTypedef(newType value.Tag, line, startCol, endCol int) {
	if s.Target.Kind != storage.Memory {
		return
	}
	s.Typedefs.Set(s.Target.Identifier(), newType, line, startCol, endCol)
}

// GetOperandType resolves the static value type of a pseudo-mnemonic
// operand: an IdentifierLike operand is a register-sourced memory
// identifier, resolved through the typedef tracker; a StreamIDLike
// operand is always a plain int (a stream fd, or, for `p`'s dest slot,
// the current target's id, whose exact type is irrelevant since that
// position's only overload is a wildcard).
func (s *State) GetOperandType(kind ir.ArgKind, operand any) value.Tag {
	if kind != ir.IdentifierLike {
		return value.Int
	}
	id, _ := operand.(string)
	return s.Typedefs.GetFromIdentifier(id).Type
}

// GetOperandsTypes maps GetOperandType over a parallel kinds/operands
// pair.
func (s *State) GetOperandsTypes(kinds []ir.ArgKind, operands []any) []value.Tag {
	types := make([]value.Tag, len(operands))
	for i, operand := range operands {
		types[i] = s.GetOperandType(kinds[i], operand)
	}
	return types
}

// GetOperands sources one operand per kind: an IdentifierLike kind
// consumes the next register in declared order (nil if that register
// was never bound); a StreamIDLike kind always yields the current
// target's id.
func (s *State) GetOperands(kinds []ir.ArgKind) []any {
	operands := make([]any, len(kinds))
	argN := 0
	for i, kind := range kinds {
		if kind == ir.IdentifierLike {
			if reg := s.Registers[argN]; reg != nil {
				operands[i] = *reg
			}
			argN++
		} else {
			operands[i] = s.Target.ID
		}
	}
	return operands
}

// hasAllOperands reports whether every IdentifierLike-sourced slot in
// operands was actually bound (no nil left by an unset register).
func hasAllOperands(kinds []ir.ArgKind, operands []any) bool {
	for i, kind := range kinds {
		if kind == ir.IdentifierLike && operands[i] == nil {
			return false
		}
	}
	return true
}

