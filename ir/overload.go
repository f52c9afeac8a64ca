package ir

import (
	"strings"

	"github.com/qexat/vism-go/value"
)

// Overload pairs a concrete operand-type signature (dest type followed
// by argument types, in declared order) with the IR mnemonic it
// resolves to.
type Overload struct {
	Signature []value.Tag
	Mnemonic  Mnemonic
}

// PseudoMnemonic is a source-level operator symbol together with the
// kind signature the compiler uses to source its operands, and the
// ordered overload table used to resolve a concrete IR mnemonic from
// the operands' static (compile-time typedef) value types.
type PseudoMnemonic struct {
	Symbol    string
	Kinds     []ArgKind // dest kind first, then argument kinds
	Overloads []Overload
}

// IdentifierArgCount returns how many of the pseudo-mnemonic's kind
// positions are register-sourced identifiers, used to build the E009
// "expected N arguments" message.
func (p PseudoMnemonic) IdentifierArgCount() int {
	n := 0
	for _, k := range p.Kinds {
		if k == IdentifierLike {
			n++
		}
	}
	return n
}

// GetOverload scans the overload table in declared order and returns
// the first mnemonic whose signature matches received: per position,
// a signature entry matches if it is value.Any or value.Unset
// (wildcards) or identical to the received type, with no subtyping. An
// entry whose arity differs from received is skipped, not an immediate
// failure, since a symbol's overloads are not required to share arity
// with each other in general.
func (p PseudoMnemonic) GetOverload(received []value.Tag) (Mnemonic, bool) {
	for _, overload := range p.Overloads {
		if len(overload.Signature) != len(received) {
			continue
		}
		matched := true
		for i, want := range overload.Signature {
			if want == value.Any || want == value.Unset {
				continue
			}
			if want != received[i] {
				matched = false
				break
			}
		}
		if matched {
			return overload.Mnemonic, true
		}
	}
	return Mnemonic{}, false
}

func sig(tags ...value.Tag) []value.Tag { return tags }

// pseudoMnemonics enumerates the source operator set.
var pseudoMnemonics = []PseudoMnemonic{
	{
		Symbol: "+",
		Kinds:  []ArgKind{IdentifierLike, IdentifierLike, IdentifierLike},
		Overloads: []Overload{
			{sig(value.Int, value.Int, value.Int), ADD},
			{sig(value.Int, value.Int, value.Bool), ADD},
			{sig(value.Int, value.Bool, value.Int), ADD},
			{sig(value.Int, value.Bool, value.Bool), ADD},
			{sig(value.Float, value.Int, value.Float), ADD},
			{sig(value.Float, value.Float, value.Int), ADD},
			{sig(value.Float, value.Float, value.Float), ADD},
			{sig(value.Float, value.Float, value.Bool), ADD},
			{sig(value.Float, value.Bool, value.Float), ADD},
			{sig(value.Complex, value.Int, value.Complex), ADD},
			{sig(value.Complex, value.Float, value.Complex), ADD},
			{sig(value.Complex, value.Complex, value.Int), ADD},
			{sig(value.Complex, value.Complex, value.Float), ADD},
			{sig(value.Complex, value.Complex, value.Complex), ADD},
			{sig(value.Complex, value.Complex, value.Bool), ADD},
			{sig(value.Complex, value.Bool, value.Complex), ADD},
			{sig(value.String, value.String, value.String), UNION},
			{sig(value.Bytes, value.Bytes, value.Bytes), UNION},
			{sig(value.Seq, value.Seq, value.Seq), UNION},
			{sig(value.Tuple, value.Tuple, value.Tuple), UNION},
			{sig(value.Set, value.Set, value.Set), UNION},
			{sig(value.Dict, value.Dict, value.Dict), UNION},
		},
	},
	{
		Symbol: "-",
		Kinds:  []ArgKind{IdentifierLike, IdentifierLike, IdentifierLike},
		Overloads: []Overload{
			{sig(value.Int, value.Int, value.Int), SUB},
			{sig(value.Int, value.Int, value.Bool), SUB},
			{sig(value.Int, value.Bool, value.Int), SUB},
			{sig(value.Int, value.Bool, value.Bool), SUB},
			{sig(value.Float, value.Int, value.Float), SUB},
			{sig(value.Float, value.Float, value.Int), SUB},
			{sig(value.Float, value.Float, value.Float), SUB},
			{sig(value.Float, value.Float, value.Bool), SUB},
			{sig(value.Float, value.Bool, value.Float), SUB},
			{sig(value.Complex, value.Int, value.Complex), SUB},
			{sig(value.Complex, value.Float, value.Complex), SUB},
			{sig(value.Complex, value.Complex, value.Int), SUB},
			{sig(value.Complex, value.Complex, value.Float), SUB},
			{sig(value.Complex, value.Complex, value.Complex), SUB},
			{sig(value.Complex, value.Complex, value.Bool), SUB},
			{sig(value.Complex, value.Bool, value.Complex), SUB},
			{sig(value.String, value.String, value.String), DIFF},
			{sig(value.Bytes, value.Bytes, value.Bytes), DIFF},
			{sig(value.Seq, value.Seq, value.Seq), DIFF},
			{sig(value.Tuple, value.Tuple, value.Tuple), DIFF},
			{sig(value.Set, value.Set, value.Set), DIFF},
			{sig(value.Dict, value.Dict, value.Dict), DIFF},
		},
	},
	{
		// `×` carries the same numeric (complex, int, bool) parity
		// overloads as `+`/`-`.
		Symbol: "×",
		Kinds:  []ArgKind{IdentifierLike, IdentifierLike, IdentifierLike},
		Overloads: []Overload{
			{sig(value.Int, value.Int, value.Int), MUL},
			{sig(value.Int, value.Int, value.Bool), MUL},
			{sig(value.Int, value.Bool, value.Int), MUL},
			{sig(value.Int, value.Bool, value.Bool), MUL},
			{sig(value.Float, value.Int, value.Float), MUL},
			{sig(value.Float, value.Float, value.Int), MUL},
			{sig(value.Float, value.Float, value.Float), MUL},
			{sig(value.Float, value.Float, value.Bool), MUL},
			{sig(value.Float, value.Bool, value.Float), MUL},
			{sig(value.Complex, value.Int, value.Complex), MUL},
			{sig(value.Complex, value.Float, value.Complex), MUL},
			{sig(value.Complex, value.Complex, value.Int), MUL},
			{sig(value.Complex, value.Complex, value.Float), MUL},
			{sig(value.Complex, value.Complex, value.Complex), MUL},
			{sig(value.Complex, value.Complex, value.Bool), MUL},
			{sig(value.Complex, value.Bool, value.Complex), MUL},
			{sig(value.String, value.Int, value.String), REPLIC},
			{sig(value.String, value.Bool, value.String), REPLIC},
			{sig(value.String, value.String, value.Int), REPLIC},
			{sig(value.String, value.String, value.Bool), REPLIC},
			{sig(value.Bytes, value.Int, value.Bytes), REPLIC},
			{sig(value.Bytes, value.Bool, value.Bytes), REPLIC},
			{sig(value.Bytes, value.Bytes, value.Int), REPLIC},
			{sig(value.Bytes, value.Bytes, value.Bool), REPLIC},
			{sig(value.Seq, value.Int, value.Seq), REPLIC},
			{sig(value.Seq, value.Bool, value.Seq), REPLIC},
			{sig(value.Seq, value.Seq, value.Int), REPLIC},
			{sig(value.Seq, value.Seq, value.Bool), REPLIC},
			{sig(value.Tuple, value.Int, value.Tuple), REPLIC},
			{sig(value.Tuple, value.Bool, value.Tuple), REPLIC},
			{sig(value.Tuple, value.Tuple, value.Int), REPLIC},
			{sig(value.Tuple, value.Tuple, value.Bool), REPLIC},
		},
	},
	{
		Symbol: "/",
		Kinds:  []ArgKind{IdentifierLike, IdentifierLike, IdentifierLike},
		Overloads: []Overload{
			{sig(value.Int, value.Int, value.Int), INTDIV},
			{sig(value.Int, value.Int, value.Bool), INTDIV},
			{sig(value.Int, value.Bool, value.Int), INTDIV},
			{sig(value.Int, value.Bool, value.Bool), INTDIV},
			{sig(value.String, value.String, value.String), PATHJOIN},
		},
	},
	{
		Symbol: "%",
		Kinds:  []ArgKind{IdentifierLike, IdentifierLike, IdentifierLike},
		Overloads: []Overload{
			{sig(value.Int, value.Int, value.Int), MODULO},
			{sig(value.Int, value.Int, value.Bool), MODULO},
			{sig(value.Int, value.Bool, value.Int), MODULO},
			{sig(value.Int, value.Bool, value.Bool), MODULO},
		},
	},
	{
		// DIVMOD's dest is a pair of ints; there is no dedicated Tuple2
		// tag, so the dest signature position is Tuple (the pair is
		// represented at runtime as a value.TupleValue of two ints).
		Symbol: "÷",
		Kinds:  []ArgKind{IdentifierLike, IdentifierLike, IdentifierLike},
		Overloads: []Overload{
			{sig(value.Tuple, value.Int, value.Int), DIVMOD},
			{sig(value.Tuple, value.Int, value.Bool), DIVMOD},
			{sig(value.Tuple, value.Bool, value.Int), DIVMOD},
			{sig(value.Tuple, value.Bool, value.Bool), DIVMOD},
		},
	},
	{
		// Unary, no register-sourced dest: the dest slot is filled with
		// the current Select target (see compiler.GetOperands), and any
		// value type may be printed.
		Symbol: "p",
		Kinds:  []ArgKind{StreamIDLike, IdentifierLike},
		Overloads: []Overload{
			{sig(value.Unset, value.Any), PRINTV},
		},
	},
	{
		// Unary over a stream: the dest slot is the current target's
		// stream fd, the single register-sourced argument is the string
		// to write.
		Symbol: "w",
		Kinds:  []ArgKind{StreamIDLike, IdentifierLike},
		Overloads: []Overload{
			{sig(value.Int, value.String), SWRITE},
		},
	},
	{
		// Nullary over a stream: only the dest slot (current target's
		// stream fd) participates.
		Symbol: "f",
		Kinds:  []ArgKind{StreamIDLike},
		Overloads: []Overload{
			{sig(value.Int), SFLUSH},
		},
	},
}

// symbolTable indexes pseudoMnemonics by their source symbol.
var symbolTable = func() map[string]PseudoMnemonic {
	m := make(map[string]PseudoMnemonic, len(pseudoMnemonics))
	for _, pm := range pseudoMnemonics {
		m[pm.Symbol] = pm
	}
	return m
}()

// Get returns the pseudo-mnemonic bound to symbol, if any.
func Get(symbol string) (PseudoMnemonic, bool) {
	pm, ok := symbolTable[symbol]
	return pm, ok
}

// Symbols returns every known operator symbol, for diagnostics.
func Symbols() []string {
	out := make([]string, 0, len(symbolTable))
	for s := range symbolTable {
		out = append(out, s)
	}
	return out
}

// Dispatch resolves symbol and a received operand-type tuple
// (dest type, then argument types, in order) to a concrete IR mnemonic.
func Dispatch(symbol string, types ...value.Tag) (Mnemonic, bool) {
	pm, ok := symbolTable[symbol]
	if !ok {
		return Mnemonic{}, false
	}
	return pm.GetOverload(types)
}

// PrettyTypes renders a type tuple the way E010 wants it: each type
// backtick-quoted, joined by commas and a trailing "and".
func PrettyTypes(types []value.Tag) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = "`" + t.String() + "`"
	}
	if len(names) <= 1 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
