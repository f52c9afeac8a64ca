// Package source provides the line/column cursor the parser FSM walks
// while consuming a Vism program, plus a small file-reading entry point.
// It carries no parsing logic of its own, only position bookkeeping.
package source

import (
	"fmt"
	"os"
	"strings"
)

// Position names a single point in a named source file, for diagnostic
// rendering.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Cursor walks a named block of source text one character and one line
// at a time. It has no notion of modes or tokens (that is the parser
// package's job), only "where am I" and "what's the current character".
//
// Positions are Unicode code points, not bytes: Vism's pseudo-mnemonic
// symbols (`×`, `÷`) are multi-byte in UTF-8, and a byte-indexed cursor
// would split them into bogus one-byte characters. Each line is decoded
// once into runes at construction time so stepping is per code point.
type Cursor struct {
	name      string
	lines     []string
	runeLines [][]rune

	// LineIndex is the current 0-based line. Pos is the current 0-based
	// column (in runes, not bytes) within that line.
	LineIndex int
	Pos       int
}

// NewCursor builds a Cursor over text, splitting it into lines the way
// Python's str.splitlines does for the common line-ending forms.
func NewCursor(name, text string) *Cursor {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(normalized, "\n") {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	runeLines := make([][]rune, len(lines))
	for i, line := range lines {
		runeLines[i] = []rune(line)
	}
	return &Cursor{name: name, lines: lines, runeLines: runeLines}
}

// ReadFile reads path and returns a Cursor over its contents, named by
// path exactly as given.
func ReadFile(path string) (*Cursor, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- caller-provided Vism source path
	if err != nil {
		return nil, err
	}
	return NewCursor(path, string(content)), nil
}

// Name returns the cursor's source name (a file path, or "<stdin>" for
// REPL-fed buffers).
func (c *Cursor) Name() string { return c.name }

// Lines returns every line of the source text.
func (c *Cursor) Lines() []string { return c.lines }

// FileEnd is the number of lines in the source.
func (c *Cursor) FileEnd() int { return len(c.lines) }

// LineEnd is the length of the current line, in runes.
func (c *Cursor) LineEnd() int { return len(c.runeLines[c.LineIndex]) }

// IsEOF reports whether the cursor has consumed every line.
func (c *Cursor) IsEOF() bool { return c.LineIndex >= c.FileEnd() }

// IsEOL reports whether the cursor has consumed the current line.
func (c *Cursor) IsEOL() bool { return c.Pos >= c.LineEnd() }

// LineNumber is the 1-based line number, for user-facing diagnostics.
func (c *Cursor) LineNumber() int { return c.LineIndex + 1 }

// CurrentLine returns the line the cursor currently sits on.
func (c *Cursor) CurrentLine() string { return c.lines[c.LineIndex] }

// CurrentChar returns the character at the cursor's current position.
// Callers must not call this when IsEOL is true.
func (c *Cursor) CurrentChar() rune { return c.runeLines[c.LineIndex][c.Pos] }

// GetLine returns the line at the given 0-based index.
func (c *Cursor) GetLine(index int) string { return c.lines[index] }

// MoveNextLine advances to the start of the next line.
func (c *Cursor) MoveNextLine() {
	c.LineIndex++
	c.Pos = 0
}

// FreezePosition captures a snapshot suitable for building a diagnostic
// range: the current line's text, its 1-based number, the given start
// column, and the cursor's current column.
func (c *Cursor) FreezePosition(startCol int) (line string, lineNumber, start, end int) {
	return c.CurrentLine(), c.LineNumber(), startCol, c.Pos
}
