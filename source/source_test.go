package source_test

import (
	"testing"

	"github.com/qexat/vism-go/source"
)

func TestNewCursorSplitsLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"unix newlines", "a\nb\nc", []string{"a", "b", "c"}},
		{"windows newlines", "a\r\nb\r\nc", []string{"a", "b", "c"}},
		{"mac newlines", "a\rb\rc", []string{"a", "b", "c"}},
		{"trailing newline dropped", "a\nb\n", []string{"a", "b"}},
		{"empty input", "", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := source.NewCursor("test", tt.input)
			if len(c.Lines()) != len(tt.want) {
				t.Fatalf("Lines() = %v, want %v", c.Lines(), tt.want)
			}
			for i, line := range c.Lines() {
				if line != tt.want[i] {
					t.Errorf("Lines()[%d] = %q, want %q", i, line, tt.want[i])
				}
			}
		})
	}
}

func TestCursorWalk(t *testing.T) {
	c := source.NewCursor("test", "ab\ncd")

	if c.IsEOF() {
		t.Fatal("fresh cursor should not be EOF")
	}
	if c.CurrentChar() != 'a' {
		t.Errorf("CurrentChar() = %q, want 'a'", c.CurrentChar())
	}

	c.Pos = 2
	if !c.IsEOL() {
		t.Error("expected IsEOL after consuming the line")
	}

	c.MoveNextLine()
	if c.LineNumber() != 2 {
		t.Errorf("LineNumber() = %d, want 2", c.LineNumber())
	}
	if c.CurrentChar() != 'c' {
		t.Errorf("CurrentChar() = %q, want 'c'", c.CurrentChar())
	}

	c.MoveNextLine()
	if !c.IsEOF() {
		t.Error("expected IsEOF after consuming every line")
	}
}

// TestCursorWalkMultiByteRunes covers a line containing multi-byte
// UTF-8 characters: Pos must step one code point at a time, not one
// byte, so a two-byte symbol like `×` is a single CurrentChar, not two.
func TestCursorWalkMultiByteRunes(t *testing.T) {
	c := source.NewCursor("test", "a×b÷c")

	want := []rune{'a', '×', 'b', '÷', 'c'}
	for i, r := range want {
		if c.CurrentChar() != r {
			t.Fatalf("Pos=%d: CurrentChar() = %q, want %q", i, c.CurrentChar(), r)
		}
		c.Pos++
	}
	if !c.IsEOL() {
		t.Error("expected IsEOL after consuming every rune in the line")
	}
	if got := c.LineEnd(); got != len(want) {
		t.Errorf("LineEnd() = %d, want %d (rune count, not byte count)", got, len(want))
	}
}

func TestFreezePosition(t *testing.T) {
	c := source.NewCursor("test", "abcdef")
	c.Pos = 4

	content, lineNumber, start, end := c.FreezePosition(1)
	if content != "abcdef" || lineNumber != 1 || start != 1 || end != 4 {
		t.Errorf("FreezePosition(1) = (%q, %d, %d, %d), want (abcdef, 1, 1, 4)", content, lineNumber, start, end)
	}
}
