package ir_test

import (
	"testing"

	"github.com/qexat/vism-go/ir"
	"github.com/qexat/vism-go/value"
)

func TestGetKnownSymbol(t *testing.T) {
	pm, ok := ir.Get("+")
	if !ok {
		t.Fatal("expected + to be a known pseudo-mnemonic")
	}
	if pm.Symbol != "+" {
		t.Errorf("Symbol = %q, want +", pm.Symbol)
	}
}

func TestGetUnknownSymbol(t *testing.T) {
	if _, ok := ir.Get("!"); ok {
		t.Error("expected ! to be unknown")
	}
}

func TestDispatchAdd(t *testing.T) {
	tests := []struct {
		name  string
		types []value.Tag
		want  ir.Mnemonic
		ok    bool
	}{
		{"int+int", []value.Tag{value.Int, value.Int, value.Int}, ir.ADD, true},
		{"int+bool widens to int", []value.Tag{value.Int, value.Int, value.Bool}, ir.ADD, true},
		{"string+string unions", []value.Tag{value.String, value.String, value.String}, ir.UNION, true},
		{"set+set unions", []value.Tag{value.Set, value.Set, value.Set}, ir.UNION, true},
		{"incompatible types", []value.Tag{value.Int, value.String, value.Int}, ir.Mnemonic{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ir.Dispatch("+", tt.types...)
			if ok != tt.ok {
				t.Fatalf("Dispatch ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Dispatch = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDispatchMulParityWithAddSub(t *testing.T) {
	// The complex/int/bool numeric overloads of `×` must match `+`/`-`'s.
	types := []value.Tag{value.Complex, value.Complex, value.Bool}
	got, ok := ir.Dispatch("×", types...)
	if !ok {
		t.Fatal("expected a MUL overload for (complex, complex, bool)")
	}
	if got != ir.MUL {
		t.Errorf("got %v, want MUL", got)
	}
}

func TestDispatchReplication(t *testing.T) {
	got, ok := ir.Dispatch("×", value.String, value.String, value.Int)
	if !ok || got != ir.REPLIC {
		t.Errorf("Dispatch(×, string, string, int) = (%v, %v), want (REPLIC, true)", got, ok)
	}
}

func TestIdentifierArgCount(t *testing.T) {
	pm, _ := ir.Get("+")
	if n := pm.IdentifierArgCount(); n != 3 {
		t.Errorf("IdentifierArgCount() = %d, want 3", n)
	}

	pm, _ = ir.Get("f")
	if n := pm.IdentifierArgCount(); n != 0 {
		t.Errorf("IdentifierArgCount() for `f` = %d, want 0", n)
	}
}

func TestPrettyTypes(t *testing.T) {
	tests := []struct {
		name  string
		types []value.Tag
		want  string
	}{
		{"single", []value.Tag{value.Int}, "`int`"},
		{"pair", []value.Tag{value.Int, value.String}, "`int` and `str`"},
		{"triple", []value.Tag{value.Int, value.String, value.Bool}, "`int`, `str` and `bool`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ir.PrettyTypes(tt.types); got != tt.want {
				t.Errorf("PrettyTypes(%v) = %q, want %q", tt.types, got, tt.want)
			}
		})
	}
}

func TestInstructionString(t *testing.T) {
	instr := ir.Instruction{
		Mnemonic: ir.ADD,
		Dest:     "x",
		Args:     []any{"y", "z"},
	}
	want := "ADD x, y, z"
	if got := instr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
