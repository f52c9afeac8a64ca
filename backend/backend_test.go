package backend_test

import (
	"testing"

	"github.com/qexat/vism-go/backend"
	"github.com/qexat/vism-go/bytecode"
	"github.com/qexat/vism-go/ir"
	"github.com/qexat/vism-go/value"
)

func TestLowerMEMCH(t *testing.T) {
	instrs := []ir.Instruction{
		{Mnemonic: ir.MEMCH, Dest: "x", DestType: value.Int, Args: []any{42}, ArgTypes: []value.Tag{value.Int}},
	}
	out, err := backend.Lower(instrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Op != bytecode.Mov {
		t.Fatalf("got %v, want a single mov", out)
	}
	if out[0].Operands[0] != "x" || out[0].Operands[1] != 42 {
		t.Errorf("operands = %v, want [x 42]", out[0].Operands)
	}
}

func TestLowerUnionDestSetUsesUnion(t *testing.T) {
	instrs := []ir.Instruction{
		{Mnemonic: ir.UNION, Dest: "s", DestType: value.Set, Args: []any{"t", "u"}},
	}
	out, err := backend.Lower(instrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Op != bytecode.Union {
		t.Errorf("Op = %v, want Union", out[0].Op)
	}
}

func TestLowerUnionDestNonSetFallsBackToAdd(t *testing.T) {
	for _, tag := range []value.Tag{value.String, value.Bytes, value.Seq, value.Tuple, value.Dict} {
		instrs := []ir.Instruction{
			{Mnemonic: ir.UNION, Dest: "s", DestType: tag, Args: []any{"t", "u"}},
		}
		out, err := backend.Lower(instrs)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tag, err)
		}
		if out[0].Op != bytecode.Add {
			t.Errorf("tag %s: Op = %v, want Add", tag, out[0].Op)
		}
	}
}

func TestLowerDiffPicksStrategyByDestType(t *testing.T) {
	tests := []struct {
		destType value.Tag
		wantOp   bytecode.Op
	}{
		{value.String, bytecode.StrDiff},
		{value.Set, bytecode.Sub},
		{value.Seq, bytecode.SeqDiff},
		{value.Bytes, bytecode.SeqDiff},
		{value.Tuple, bytecode.SeqDiff},
		{value.Dict, bytecode.SeqDiff},
	}
	for _, tt := range tests {
		instrs := []ir.Instruction{
			{Mnemonic: ir.DIFF, Dest: "d", DestType: tt.destType, Args: []any{"l", "r"}},
		}
		out, err := backend.Lower(instrs)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.destType, err)
		}
		if out[0].Op != tt.wantOp {
			t.Errorf("dest type %s: Op = %v, want %v", tt.destType, out[0].Op, tt.wantOp)
		}
	}
}

func TestLowerSameNamedOps(t *testing.T) {
	tests := []struct {
		mnemonic ir.Mnemonic
		wantOp   bytecode.Op
	}{
		{ir.ADD, bytecode.Add},
		{ir.SUB, bytecode.Sub},
		{ir.MUL, bytecode.Mul},
		{ir.REPLIC, bytecode.Mul},
		{ir.INTDIV, bytecode.IntDiv},
		{ir.MODULO, bytecode.Modulo},
		{ir.DIVMOD, bytecode.DivMod},
		{ir.PATHJOIN, bytecode.PathJoin},
	}
	for _, tt := range tests {
		instrs := []ir.Instruction{
			{Mnemonic: tt.mnemonic, Dest: "d", Args: []any{"l", "r"}},
		}
		out, err := backend.Lower(instrs)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.mnemonic, err)
		}
		if out[0].Op != tt.wantOp {
			t.Errorf("%s: Op = %v, want %v", tt.mnemonic, out[0].Op, tt.wantOp)
		}
	}
}

func TestLowerSWRITEAndSFLUSH(t *testing.T) {
	instrs := []ir.Instruction{
		{Mnemonic: ir.SWRITE, Dest: 0, Args: []any{"hi"}},
		{Mnemonic: ir.SFLUSH, Dest: 0},
	}
	out, err := backend.Lower(instrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Op != bytecode.Write || out[1].Op != bytecode.Flush {
		t.Fatalf("got %v, want [write flush]", out)
	}
}

func TestLowerPRINTVUsesArgNotDest(t *testing.T) {
	instrs := []ir.Instruction{
		{Mnemonic: ir.PRINTV, Dest: "irrelevant", Args: []any{"x"}},
	}
	out, err := backend.Lower(instrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Op != bytecode.Print || out[0].Operands[0] != "x" {
		t.Errorf("got %v, want print x", out[0])
	}
}

func TestLowerRejectsReservedMnemonics(t *testing.T) {
	for _, m := range []ir.Mnemonic{ir.BEQ, ir.BEQ0, ir.BEQ1, ir.BNE, ir.BGE, ir.BGT, ir.BLE, ir.BLT, ir.JUMP} {
		_, err := backend.Lower([]ir.Instruction{{Mnemonic: m}})
		if err == nil {
			t.Errorf("%s: expected lowering to be rejected", m)
		}
	}
}
