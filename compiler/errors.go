package compiler

import (
	"fmt"

	"github.com/qexat/vism-go/diag"
	"github.com/qexat/vism-go/ir"
	"github.com/qexat/vism-go/parser"
	"github.com/qexat/vism-go/typedef"
	"github.com/qexat/vism-go/value"
)

// The E001-E011 builders below each construct one catalogue entry from
// the compiler's current cursor and state, taking any already-computed
// values straight from the caller.

func (c *Compiler) errLine(message string, startCol int) diag.Line {
	content, lineNumber, start, end := c.Cursor.FreezePosition(startCol)
	return diag.Line{Content: content, Number: lineNumber, Start: start, End: end, Message: message}
}

// E001: invalid selector type, e.g. `&0` (0 is not an identifier).
func (c *Compiler) errE001() *diag.Error {
	selType := parser.TargetSelectorType(c.State.Target.Kind)
	received := c.State.ReadBuffer()
	message := fmt.Sprintf("invalid %s", selType.Name)
	return &diag.Error{
		Code:       "E001",
		Summary:    fmt.Sprintf("%s %q", message, received),
		SourcePath: c.Cursor.Name(),
		Primary:    c.errLine(message, c.State.ModeStartCol),
	}
}

// E002: invalid literal, e.g. an unterminated string.
func (c *Compiler) errE002() *diag.Error {
	received := c.State.ReadBuffer()
	message := "invalid literal"
	return &diag.Error{
		Code:       "E002",
		Summary:    fmt.Sprintf("%s %q", message, received),
		SourcePath: c.Cursor.Name(),
		Primary:    c.errLine(message, c.State.ModeStartCol),
	}
}

// E003: mismatched types, e.g. assigning a string to an int-typed slot.
// Built from the already-evaluated value's type and the target's
// current typedef.
func (c *Compiler) errE003(foundType value.Tag, target typedef.TypeDef) *diag.Error {
	message := fmt.Sprintf("expected `%s`, found %s", target.Type.String(), foundType.String())
	e := &diag.Error{
		Code:       "E003",
		Summary:    "mismatched types",
		SourcePath: c.Cursor.Name(),
		Primary:    c.errLine(message, c.State.ModeStartCol),
	}
	// The typedef may have been recorded in a previous file of the same
	// session (via ChangeFile); only point at its definition site when
	// that line still exists in the cursor being compiled.
	if target.Positional && target.Line <= c.Cursor.FileEnd() {
		line := c.Cursor.GetLine(target.Line - 1)
		e.Info = []diag.Line{{
			Content: line,
			Number:  target.Line,
			Start:   target.StartCol,
			End:     target.EndCol,
			Message: fmt.Sprintf("was defined here as %s", target.Type.String()),
		}}
	}
	return e
}

// E004: unexpected end of line, reached while expecting a mode or macro
// character.
func (c *Compiler) errE004(expected string) *diag.Error {
	message := "here"
	if expected != "" {
		message = fmt.Sprintf("expected %s here", expected)
	}
	content, lineNumber, _, _ := c.Cursor.FreezePosition(c.Cursor.Pos)
	return &diag.Error{
		Code:       "E004",
		Summary:    "unexpected end of line",
		SourcePath: c.Cursor.Name(),
		Primary:    diag.Line{Content: content, Number: lineNumber, Start: c.Cursor.Pos, End: c.Cursor.Pos + 1, Message: message},
	}
}

// E005: `^X` with X not a recognized mode.
func (c *Compiler) errE005() *diag.Error {
	symbol := c.Cursor.CurrentChar()
	message := "invalid mode"
	content, lineNumber, _, _ := c.Cursor.FreezePosition(c.Cursor.Pos)
	candidates := make([]string, 0, len(parser.CaretModes))
	for ch := range parser.CaretModes {
		candidates = append(candidates, fmt.Sprintf("`^%c`", ch))
	}
	return &diag.Error{
		Code:       "E005",
		Summary:    fmt.Sprintf("%s %q", message, string(symbol)),
		SourcePath: c.Cursor.Name(),
		Primary:    diag.Line{Content: content, Number: lineNumber, Start: c.Cursor.Pos, End: c.Cursor.Pos + 1, Message: message},
		Hint:       "try using one of the following candidates:",
		Candidates: candidates,
	}
}

// E006: `?X` with X not a defined macro.
func (c *Compiler) errE006(known []string) *diag.Error {
	symbol := c.Cursor.CurrentChar()
	message := "this macro is undefined"
	content, lineNumber, _, _ := c.Cursor.FreezePosition(c.Cursor.Pos)
	candidates := make([]string, 0, len(known))
	for _, m := range known {
		candidates = append(candidates, fmt.Sprintf("`?%s`", m))
	}
	return &diag.Error{
		Code:       "E006",
		Summary:    fmt.Sprintf("macro `?%c` is undefined", symbol),
		SourcePath: c.Cursor.Name(),
		Primary:    diag.Line{Content: content, Number: lineNumber, Start: c.Cursor.Pos, End: c.Cursor.Pos + 1, Message: message},
		Hint:       "try using one of the following candidates:",
		Candidates: candidates,
	}
}

// E007: invalid escape sequence in Assign mode.
func (c *Compiler) errE007() *diag.Error {
	symbol := c.Cursor.CurrentChar()
	message := "invalid escape sequence"
	content, lineNumber, _, _ := c.Cursor.FreezePosition(c.Cursor.Pos - 1)
	return &diag.Error{
		Code:       "E007",
		Summary:    fmt.Sprintf("invalid escape sequence '\\%c'", symbol),
		SourcePath: c.Cursor.Name(),
		Primary:    diag.Line{Content: content, Number: lineNumber, Start: c.Cursor.Pos - 1, End: c.Cursor.Pos + 1, Message: message},
	}
}

// E008: unknown operator symbol.
func (c *Compiler) errE008(confusables map[string]string) *diag.Error {
	symbol := c.Cursor.CurrentChar()
	message := "unknown symbol"
	content, lineNumber, _, _ := c.Cursor.FreezePosition(c.Cursor.Pos)
	e := &diag.Error{
		Code:       "E008",
		Summary:    fmt.Sprintf("%s %q", message, string(symbol)),
		SourcePath: c.Cursor.Name(),
		Primary:    diag.Line{Content: content, Number: lineNumber, Start: c.Cursor.Pos, End: c.Cursor.Pos + 1, Message: message},
	}
	if suggestion, ok := confusables[string(symbol)]; ok {
		e.Hint = fmt.Sprintf("did you mean `%s`?", suggestion)
	}
	return e
}

// E009: the number of bound registers does not match the operator's
// arity.
func (c *Compiler) errE009(symbol string, expected, received int) *diag.Error {
	message := "unmatching number of parameters"
	content, lineNumber, _, _ := c.Cursor.FreezePosition(c.Cursor.Pos)
	return &diag.Error{
		Code:       "E009",
		Summary:    fmt.Sprintf("%s for %q: expected %d but got %d", message, symbol, expected, received),
		SourcePath: c.Cursor.Name(),
		Primary:    diag.Line{Content: content, Number: lineNumber, Start: c.Cursor.Pos, End: c.Cursor.Pos + 1, Message: message},
	}
}

// E010: the operands' types have no matching overload.
func (c *Compiler) errE010(symbol string, types []value.Tag) *diag.Error {
	pretty := ir.PrettyTypes(types)
	message := fmt.Sprintf("no overload for %s", pretty)
	content, lineNumber, _, _ := c.Cursor.FreezePosition(c.Cursor.Pos)
	return &diag.Error{
		Code:       "E010",
		Summary:    fmt.Sprintf("no overload for %q with %s", symbol, pretty),
		SourcePath: c.Cursor.Name(),
		Primary:    diag.Line{Content: content, Number: lineNumber, Start: c.Cursor.Pos, End: c.Cursor.Pos + 1, Message: message},
	}
}

// E011: a register was bound to an identifier with no positional
// (concrete) typedef.
func (c *Compiler) errE011(identifier string) *diag.Error {
	message := "undefined identifier"
	return &diag.Error{
		Code:       "E011",
		Summary:    fmt.Sprintf("undefined identifier `%s`", identifier),
		SourcePath: c.Cursor.Name(),
		Primary:    c.errLine(message, c.State.ModeStartCol),
	}
}
