// Package compiler implements the two-stage front end that turns a
// Vism source cursor into IR instructions: it drives the parser FSM
// character by character, static-type-checks each assignment and
// operator use, and emits ir.Instruction values the backend package
// later lowers to bytecode. Compile-time diagnostics are reported as a
// diag.Errors value rather than panicking.
package compiler

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/qexat/vism-go/config"
	"github.com/qexat/vism-go/diag"
	"github.com/qexat/vism-go/ir"
	"github.com/qexat/vism-go/parser"
	"github.com/qexat/vism-go/source"
	"github.com/qexat/vism-go/storage"
	"github.com/qexat/vism-go/value"
)

// Compiler compiles a single Vism source cursor into IR, using Config
// for its escape/confusable/macro tables and Debug as the sink for the
// `?d` macro's output.
type Compiler struct {
	Cursor *source.Cursor
	State  *State
	Config *config.Config
	Debug  io.Writer
}

// NewCompiler builds a Compiler over cursor. A nil cfg falls back to
// config.DefaultConfig.
func NewCompiler(cursor *source.Cursor, cfg *config.Config) *Compiler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Compiler{
		Cursor: cursor,
		State:  NewState(),
		Config: cfg,
		Debug:  os.Stdout,
	}
}

// CompileFile reads path and compiles it in one step.
func CompileFile(path string, cfg *config.Config) ([]ir.Instruction, error) {
	cursor, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewCompiler(cursor, cfg).Compile()
}

// ChangeFile swaps in a new source cursor while preserving accumulated
// typedefs: a name's type, once concretely assigned, stays known across
// files compiled in the same session. Everything else (mode, target,
// buffers, registers, emitted IR, diagnostics) resets.
func (c *Compiler) ChangeFile(cursor *source.Cursor) {
	typedefs := c.State.Typedefs
	c.Cursor = cursor
	c.State = NewState()
	c.State.Typedefs = typedefs
}

func (c *Compiler) pushError(err *diag.Error) {
	c.attachContext(err)
	c.State.Errors = append(c.State.Errors, err)
}

// attachContext prepends up to Display.SourceContext source lines
// before the primary error line as plain, un-underlined context.
func (c *Compiler) attachContext(e *diag.Error) {
	shown := map[int]bool{e.Primary.Number: true}
	for _, l := range e.Info {
		shown[l.Number] = true
	}
	for delta := 1; delta <= c.Config.Display.SourceContext; delta++ {
		num := e.Primary.Number - delta
		if num < 1 || shown[num] {
			continue
		}
		e.Info = append(e.Info, diag.Line{Content: c.Cursor.GetLine(num - 1), Number: num})
	}
}

// Compile walks the cursor to completion, returning the emitted IR, or
// the diagnostics raised at the first character that failed to
// compile (compilation stops at the first error).
func (c *Compiler) Compile() ([]ir.Instruction, error) {
	for !c.Cursor.IsEOF() {
		for !c.Cursor.IsEOL() {
			char := c.Cursor.CurrentChar()

			switch {
			case parser.IsProgramModeRequest(char, c.State.CharEscaping):
				c.processBuffered()
				c.Cursor.Pos++
				c.changeMode()
			case parser.IsMacroModeRequest(char, c.State.CharEscaping):
				c.processBuffered()
				c.Cursor.Pos++
				c.runMacro()
			case !parser.IsDiscardedChar(c.State.Mode, char):
				if c.State.Mode == parser.Normal {
					c.processChar()
				} else {
					c.bufferChar()
				}
			}

			if len(c.State.Errors) > 0 {
				return nil, c.State.Errors
			}

			c.Cursor.Pos++
		}

		c.processBuffered()
		if len(c.State.Errors) > 0 {
			return nil, c.State.Errors
		}
		c.Cursor.MoveNextLine()
	}

	return c.State.IR, nil
}

// processBuffered flushes the current mode's buffer: in Select mode it
// parses the buffer as the target's new id; in Assign mode it
// evaluates the buffer, type-checks it against the target, and emits
// the corresponding MEMCH/SWRITE instruction or register binding.
// Normal mode has nothing to flush.
func (c *Compiler) processBuffered() {
	buf := c.State.ReadBuffer()

	switch c.State.Mode {
	case parser.Select:
		if !c.State.UpdateTargetID(buf) ||
			(c.State.Target.Kind == storage.Register && c.State.Target.Address() >= RegisterCount) {
			c.pushError(c.errE001())
			return
		}

	case parser.Assign:
		var val any
		switch c.State.ModeType {
		case parser.String:
			val = buf
		case parser.Literal:
			v, err := evaluateLiteral(buf)
			if err != nil {
				c.pushError(c.errE002())
				return
			}
			val = v
		}

		valueType := value.TagOf(val)
		targetTypedef := c.State.GetTargetTypedef()

		if !staticTypeCheck(targetTypedef.Type, valueType) {
			c.pushError(c.errE003(valueType, targetTypedef))
			return
		}

		target := c.State.Target

		switch target.Kind {
		case storage.Memory:
			c.State.SetTargetTypedef(valueType, c.Cursor.LineNumber(), c.State.ModeStartCol, c.Cursor.Pos)
			c.State.IR = append(c.State.IR, ir.Instruction{
				Mnemonic: ir.MEMCH,
				Dest:     target.Identifier(),
				DestType: valueType,
				Args:     []any{val},
				ArgTypes: []value.Tag{valueType},
			})

		case storage.Register:
			identifier := val.(string)
			if !c.State.Typedefs.IsDefined(identifier) {
				c.pushError(c.errE011(identifier))
				return
			}
			c.State.Registers[target.Address()] = &identifier

		case storage.Stream:
			str := fmt.Sprint(val)
			c.State.IR = append(c.State.IR, ir.Instruction{
				Mnemonic: ir.SWRITE,
				Dest:     target.Address(),
				DestType: value.String,
				Args:     []any{str},
				ArgTypes: []value.Tag{value.String},
			})
		}
	}

	c.State.ClearBuffer()
}

// changeMode reads the mode specifier after a `^` and transitions into
// it.
func (c *Compiler) changeMode() {
	if c.Cursor.IsEOL() {
		c.pushError(c.errE004("mode character"))
		return
	}

	char := c.Cursor.CurrentChar()
	mode, ok := parser.CaretModes[char]
	if !ok {
		c.pushError(c.errE005())
		return
	}

	c.State.UpdateMode(mode, c.Cursor.Pos+1)
	c.State.UpdateModeType(char)
}

// runMacro reads the macro id after a `?` and invokes it.
func (c *Compiler) runMacro() {
	if c.Cursor.IsEOL() {
		c.pushError(c.errE004("macro character"))
		return
	}

	id := string(c.Cursor.CurrentChar())
	m, ok := macros[id]
	if !ok || !c.macroEnabled(id) {
		c.pushError(c.errE006(c.availableMacros()))
		return
	}

	m(c, c.Debug)
}

// processChar dispatches a Normal-mode character: a selector symbol
// enters Select mode, otherwise the character is resolved as an
// operator symbol and its operands sourced, arity-checked, and
// overload-dispatched into an IR instruction.
func (c *Compiler) processChar() {
	char := c.Cursor.CurrentChar()

	if _, ok := storage.KindOf(char); ok {
		// Entering Select must re-anchor ModeStartCol here, or E001's
		// range would keep whatever column an earlier Assign left
		// behind instead of marking where this Select buffer begins.
		c.State.UpdateMode(parser.Select, c.Cursor.Pos+1)
		c.State.UpdateTargetKind(char)
		return
	}

	symbol := string(char)
	pm, ok := ir.Get(symbol)
	if !ok {
		c.pushError(c.errE008(c.Config.Confusables))
		return
	}

	operands := c.State.GetOperands(pm.Kinds)
	if !hasAllOperands(pm.Kinds, operands) {
		expected := pm.IdentifierArgCount()
		c.pushError(c.errE009(symbol, expected, countBound(c.State.Registers[:expected])))
		return
	}

	types := c.State.GetOperandsTypes(pm.Kinds, operands)
	mnemonic, ok := pm.GetOverload(types)
	if !ok {
		c.pushError(c.errE010(symbol, types))
		return
	}

	c.State.IR = append(c.State.IR, ir.Instruction{
		Mnemonic: mnemonic,
		Dest:     operands[0],
		DestType: types[0],
		Args:     operands[1:],
		ArgTypes: types[1:],
	})
}

// bufferChar appends the current character to the current mode's
// buffer, resolving any pending backslash escape first.
func (c *Compiler) bufferChar() {
	char := c.Cursor.CurrentChar()

	if c.State.ShouldEscape(char) {
		c.State.CharEscaping = true
		return
	}

	final := char
	if c.State.CharEscaping {
		mapped, ok := c.resolveEscape(char)
		if !ok {
			c.pushError(c.errE007())
			return
		}
		final = mapped
		c.State.CharEscaping = false
	}

	c.State.WriteBuffer(final)
}

// resolveEscape looks up char in the config's escape overrides before
// falling back to the built-in table, letting a host application add
// or rebind escape letters without touching compiler code.
func (c *Compiler) resolveEscape(char rune) (rune, bool) {
	if override, ok := c.Config.Compiler.Escapes[string(char)]; ok && override != "" {
		r, _ := utf8.DecodeRuneInString(override)
		return r, true
	}
	mapped, ok := parser.EscapeTable[char]
	return mapped, ok
}

func countBound(regs []*string) int {
	n := 0
	for _, r := range regs {
		if r != nil {
			n++
		}
	}
	return n
}
