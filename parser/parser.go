// Package parser implements Vism's character-driven mode-switched
// lexer: a small finite state machine that walks a source.Cursor one
// character at a time, classifying it into one of three modes (Normal,
// Select, Assign) and accumulating per-mode scratch buffers. It carries
// no compile-time semantics (type checking, IR emission) of its own;
// that belongs to the compiler package, which embeds State and drives
// the Cursor.
package parser

import (
	"strings"

	"github.com/qexat/vism-go/selector"
	"github.com/qexat/vism-go/storage"
)

// Mode is the parser's current lexing mode.
type Mode int

const (
	// Normal is the mode a program starts and returns to via `^n`: each
	// character is dispatched as either a Select-entering target symbol
	// or an operator.
	Normal Mode = iota
	// Select accumulates the target's id (entered via `&`, `$`, or `:`)
	// until the next `^` or `?` flushes it.
	Select
	// Assign accumulates a literal or string payload (entered via `^s`
	// or `^l`) until the next `^` or `?` flushes it.
	Assign
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Select:
		return "Select"
	case Assign:
		return "Assign"
	default:
		return "Mode(?)"
	}
}

// ModeType distinguishes the two Assign payload dialects.
type ModeType int

const (
	// String mode takes the buffer verbatim as the assigned value.
	String ModeType = iota
	// Literal mode evaluates the already escape-resolved buffer as a
	// safe literal (int, float, complex, bool, string, bytes, or a
	// bracketed collection).
	Literal
)

func (t ModeType) String() string {
	switch t {
	case String:
		return "String"
	case Literal:
		return "Literal"
	default:
		return "ModeType(?)"
	}
}

// Mode-switch and macro-switch symbols, and the whitespace set skipped
// outside Assign mode.
const (
	ProgramModeChar = '^'
	MacroModeChar   = '?'
	DiscardedChars  = " \t\n\r\v\f"
)

// CaretModes maps a `^X` mode specifier character to the Mode it
// requests. `^s`/`^l` both request Assign; the ModeType is recovered
// separately via ModeTypeOf.
var CaretModes = map[rune]Mode{
	'n': Normal,
	's': Assign,
	'l': Assign,
}

// ModeTypeOf reports the ModeType a `^X` specifier character selects,
// when X is a ModeType specifier ('s' or 'l').
func ModeTypeOf(char rune) (ModeType, bool) {
	switch char {
	case 's':
		return String, true
	case 'l':
		return Literal, true
	default:
		return 0, false
	}
}

// EscapeTable maps an Assign-mode escape character (the letter after a
// backslash) to the literal character it produces. `\\`, `\^`, and `\?`
// map to themselves so mode- and macro-switch characters can be written
// literally inside a buffer.
var EscapeTable = map[rune]rune{
	'\\':            '\\',
	'n':             '\n',
	't':             '\t',
	'b':             '\b',
	'f':             '\f',
	'r':             '\r',
	'e':             '\x1b',
	ProgramModeChar: ProgramModeChar,
	MacroModeChar:   MacroModeChar,
}

// State is the FSM's mutable state: the current mode, the current
// Select/Assign target, and the per-mode scratch buffers. The compiler
// package embeds State inside its own compiler.State, which adds type
// tracking, registers, and diagnostics on top.
type State struct {
	Mode     Mode
	ModeType ModeType

	// Target is the current Select/Assign destination. It defaults to
	// the null stream, matching storage.Default.
	Target storage.DataStorage

	buffers map[Mode]*strings.Builder

	// ModeStartCol is the column (0-based) the current mode began at,
	// used to anchor diagnostic ranges.
	ModeStartCol int

	// CharEscaping is true immediately after an unescaped backslash in
	// Assign mode, until the following character resolves the escape.
	CharEscaping bool
}

// NewState returns a freshly initialized State: Normal mode, default
// target, empty buffers.
func NewState() *State {
	s := &State{Target: storage.Default()}
	s.buffers = map[Mode]*strings.Builder{
		Normal: {},
		Select: {},
		Assign: {},
	}
	return s
}

// Reset restores s to its initial Normal-mode, default-target state,
// clearing every buffer.
func (s *State) Reset() {
	*s = *NewState()
}

// UpdateModeType sets ModeType if char names one; otherwise it is a
// no-op, preserving whatever ModeType was last set.
func (s *State) UpdateModeType(char rune) {
	if mt, ok := ModeTypeOf(char); ok {
		s.ModeType = mt
	}
}

// UpdateMode sets the current mode and records the column it began at.
func (s *State) UpdateMode(mode Mode, at int) {
	s.Mode = mode
	s.ModeStartCol = at
}

// UpdateTargetKind changes Target's Kind in response to a Select-entry
// character (`&`, `$`, or `:`), preserving whatever ID was previously
// held (it is about to be overwritten once the new ID is parsed).
func (s *State) UpdateTargetKind(char rune) {
	kind, ok := storage.KindOf(char)
	if !ok {
		return
	}
	s.Target = storage.DataStorage{Kind: kind, ID: s.Target.ID}
}

// TargetSelectorType returns the selector.Type used to parse and
// display a Select target's id for the given storage kind: Memory ids
// are identifiers, Register ids are hex addresses, Stream ids are
// plain integers.
func TargetSelectorType(kind storage.Kind) selector.Type {
	switch kind {
	case storage.Register:
		return selector.Address
	case storage.Stream:
		return selector.Integer
	default:
		return selector.Identifier
	}
}

// UpdateTargetID parses raw (the flushed Select buffer, right-trimmed)
// against the current target kind's selector type and, on success,
// updates Target's id in place. It reports whether parsing succeeded.
func (s *State) UpdateTargetID(raw string) bool {
	st := TargetSelectorType(s.Target.Kind)
	id, err := st.Evaluate(strings.TrimRight(raw, " \t\n\r\v\f"))
	if err != nil {
		return false
	}
	s.Target = s.Target.WithID(id)
	return true
}

// ReadBuffer returns the current mode's accumulated text.
func (s *State) ReadBuffer() string {
	return s.buffers[s.Mode].String()
}

// WriteBuffer appends char to the current mode's buffer.
func (s *State) WriteBuffer(char rune) {
	s.buffers[s.Mode].WriteRune(char)
}

// ClearBuffer empties the current mode's buffer.
func (s *State) ClearBuffer() {
	s.buffers[s.Mode].Reset()
}

// ShouldEscape reports whether char should begin a backslash escape:
// true only in Assign mode, when not already mid-escape, and char is a
// literal backslash.
func (s *State) ShouldEscape(char rune) bool {
	return !s.CharEscaping && char == '\\' && s.Mode == Assign
}

// IsProgramModeRequest reports whether char is an unescaped `^`.
func IsProgramModeRequest(char rune, escaping bool) bool {
	return char == ProgramModeChar && !escaping
}

// IsMacroModeRequest reports whether char is an unescaped `?`.
func IsMacroModeRequest(char rune, escaping bool) bool {
	return char == MacroModeChar && !escaping
}

// IsDiscardedChar reports whether char should be silently skipped:
// outside Assign mode, any whitespace character.
func IsDiscardedChar(mode Mode, char rune) bool {
	if mode == Assign {
		return false
	}
	return strings.ContainsRune(DiscardedChars, char)
}
