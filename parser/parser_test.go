package parser_test

import (
	"testing"

	"github.com/qexat/vism-go/parser"
	"github.com/qexat/vism-go/storage"
)

func TestNewStateDefaults(t *testing.T) {
	s := parser.NewState()
	if s.Mode != parser.Normal {
		t.Errorf("Mode = %v, want Normal", s.Mode)
	}
	if s.Target.Kind != storage.Stream || s.Target.Address() != storage.NullFD {
		t.Errorf("Target = %v, want the null stream", s.Target)
	}
}

func TestUpdateModeType(t *testing.T) {
	s := parser.NewState()
	s.UpdateModeType('l')
	if s.ModeType != parser.Literal {
		t.Errorf("ModeType = %v, want Literal", s.ModeType)
	}
	s.UpdateModeType('x') // not a ModeType specifier: no-op
	if s.ModeType != parser.Literal {
		t.Errorf("ModeType changed on unrelated char: %v", s.ModeType)
	}
}

func TestUpdateTargetKindPreservesID(t *testing.T) {
	s := parser.NewState()
	s.Target = s.Target.WithID(42)
	s.UpdateTargetKind('&')
	if s.Target.Kind != storage.Memory {
		t.Errorf("Kind = %v, want Memory", s.Target.Kind)
	}
	if s.Target.ID != 42 {
		t.Errorf("ID = %v, want preserved 42", s.Target.ID)
	}
}

func TestUpdateTargetIDMemory(t *testing.T) {
	s := parser.NewState()
	s.UpdateTargetKind('&')
	if !s.UpdateTargetID("foo") {
		t.Fatal("expected a valid identifier to parse")
	}
	if s.Target.Identifier() != "foo" {
		t.Errorf("Identifier() = %q, want foo", s.Target.Identifier())
	}
}

func TestUpdateTargetIDTrimsTrailingWhitespace(t *testing.T) {
	s := parser.NewState()
	s.UpdateTargetKind('&')
	if !s.UpdateTargetID("foo \t") {
		t.Fatal("expected trailing whitespace to be trimmed before parsing")
	}
	if s.Target.Identifier() != "foo" {
		t.Errorf("Identifier() = %q, want foo", s.Target.Identifier())
	}
}

func TestUpdateTargetIDRejectsInvalid(t *testing.T) {
	s := parser.NewState()
	s.UpdateTargetKind('&')
	if s.UpdateTargetID("0bad") {
		t.Fatal("expected an identifier starting with a digit to be rejected")
	}
}

func TestBufferLifecycle(t *testing.T) {
	s := parser.NewState()
	s.WriteBuffer('a')
	s.WriteBuffer('b')
	if got := s.ReadBuffer(); got != "ab" {
		t.Errorf("ReadBuffer() = %q, want ab", got)
	}
	s.ClearBuffer()
	if got := s.ReadBuffer(); got != "" {
		t.Errorf("ReadBuffer() after clear = %q, want empty", got)
	}
}

// TestBufferLifecycleMultiByte covers WriteBuffer with a multi-byte
// rune: it must append the whole code point, not truncate it to a byte.
func TestBufferLifecycleMultiByte(t *testing.T) {
	s := parser.NewState()
	s.WriteBuffer('×')
	s.WriteBuffer('÷')
	if got := s.ReadBuffer(); got != "×÷" {
		t.Errorf("ReadBuffer() = %q, want ×÷", got)
	}
}

func TestShouldEscape(t *testing.T) {
	s := parser.NewState()
	s.Mode = parser.Assign
	if !s.ShouldEscape('\\') {
		t.Error("expected an unescaped backslash in Assign mode to start an escape")
	}
	s.CharEscaping = true
	if s.ShouldEscape('\\') {
		t.Error("expected ShouldEscape to be false while already mid-escape")
	}
	s.CharEscaping = false
	s.Mode = parser.Normal
	if s.ShouldEscape('\\') {
		t.Error("expected ShouldEscape to be false outside Assign mode")
	}
}

func TestIsProgramAndMacroModeRequest(t *testing.T) {
	if !parser.IsProgramModeRequest('^', false) {
		t.Error("expected unescaped ^ to be a program mode request")
	}
	if parser.IsProgramModeRequest('^', true) {
		t.Error("expected escaped ^ to not be a program mode request")
	}
	if !parser.IsMacroModeRequest('?', false) {
		t.Error("expected unescaped ? to be a macro mode request")
	}
}

func TestIsDiscardedChar(t *testing.T) {
	if !parser.IsDiscardedChar(parser.Normal, ' ') {
		t.Error("expected whitespace to be discarded in Normal mode")
	}
	if parser.IsDiscardedChar(parser.Assign, ' ') {
		t.Error("expected whitespace to be kept in Assign mode")
	}
}

func TestTargetSelectorType(t *testing.T) {
	tests := []struct {
		kind storage.Kind
		want string
	}{
		{storage.Register, "address"},
		{storage.Stream, "integer"},
		{storage.Memory, "identifier"},
	}
	for _, tt := range tests {
		if got := parser.TargetSelectorType(tt.kind).Name; got != tt.want {
			t.Errorf("TargetSelectorType(%v).Name = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
