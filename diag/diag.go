// Package diag renders Vism's compile-time diagnostics: a primary
// error line, optional secondary info lines, and optional hints, in the
// stable "file:line:col" banner format spec.md §6 fixes. The specific
// E001-E011 catalogue entries are built by the compiler package (which
// holds the state needed to describe each failure); this package only
// knows how to lay the pieces out.
package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line is one source line annotated with an underlined range and a
// message, rendered either as the primary error line (caret `^`
// underline) or a secondary info line (dash `-` underline). A Line
// with no message and an empty range is plain context: the source
// line prints with no underline row at all.
type Line struct {
	Content string
	Number  int // 1-based
	Start   int // 0-based, inclusive
	End     int // 0-based, exclusive
	Message string
}

// Error is one compile-time diagnostic: a catalogue code, a one-line
// summary, the source file it was raised against, a primary Line, and
// optional secondary Info lines, a Hint, and Candidates (suggested
// fixes, rendered as additional help lines).
type Error struct {
	Code       string
	Summary    string
	SourcePath string
	Primary    Line
	Info       []Line
	Hint       string
	Candidates []string
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.render(&b, false)
	return b.String()
}

// Render writes the full diagnostic (synopsis, source arrow, annotated
// lines, and help lines) to w. When color is true, ANSI SGR codes are
// added around the code, underlines, and help banners.
func (e *Error) Render(w io.Writer, color bool) {
	var b strings.Builder
	e.render(&b, color)
	fmt.Fprint(w, b.String())
}

func (e *Error) rulerWidth() int {
	width := len(strconv.Itoa(e.Primary.Number))
	for _, l := range e.Info {
		if w := len(strconv.Itoa(l.Number)); w > width {
			width = w
		}
	}
	return width + 1
}

func (e *Error) render(b *strings.Builder, color bool) {
	paint := func(s string, code string) string {
		if !color {
			return s
		}
		return "\x1b[" + code + "m" + s + "\x1b[0m"
	}
	bold := func(s string) string {
		if !color {
			return s
		}
		return "\x1b[1m" + s + "\x1b[22m"
	}

	ruler := e.rulerWidth()
	pad := strings.Repeat(" ", ruler)

	fmt.Fprintf(b, "%s\n", bold(fmt.Sprintf("[%s]: %s", paint(e.Code, "31"), e.Summary)))
	fmt.Fprintf(b, "%s%s %s:%d:%d\n", pad[:ruler-1], paint("-->", "34"), e.SourcePath, e.Primary.Number, e.Primary.Start+1)
	fmt.Fprintf(b, "%s%s\n", pad, paint("|", "34"))

	lines := append(append([]Line{}, e.Info...), e.Primary)
	sortLinesByNumber(lines)

	for _, l := range lines {
		numStr := strconv.Itoa(l.Number)
		numPad := strings.Repeat(" ", ruler-len(numStr)-1)
		fmt.Fprintf(b, "%s%s | %s\n", numPad, numStr, l.Content)
		if l.Message == "" && l.End <= l.Start {
			continue
		}
		char := "-"
		colorCode := "34"
		if l == e.Primary {
			char = "^"
			colorCode = "31"
		}
		underline := strings.Repeat(char, maxInt(l.End-l.Start, 1))
		fmt.Fprintf(b, "%s%s %s%s %s\n", pad, paint("|", "34"), strings.Repeat(" ", l.Start), paint(underline, colorCode), l.Message)
	}

	fmt.Fprintf(b, "%s%s\n", pad, paint("|", "34"))

	if e.Hint != "" {
		fmt.Fprintf(b, "%s%s %s %s\n", pad, paint("=", "34"), bold("help:"), e.Hint)
	}
	for _, c := range e.Candidates {
		fmt.Fprintf(b, "%s%s %s %s\n", pad, paint("=", "34"), bold("help:"), c)
	}
}

func sortLinesByNumber(lines []Line) {
	for i := 1; i < len(lines); i++ {
		for j := i; j > 0 && lines[j-1].Number > lines[j].Number; j-- {
			lines[j-1], lines[j] = lines[j], lines[j-1]
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Errors collects every diagnostic produced by a single compilation.
// It implements error so callers may treat "compilation failed" as an
// ordinary error value while still being able to range over the
// individual Error entries to render each one.
type Errors []*Error

func (es Errors) Error() string {
	var b strings.Builder
	for _, e := range es {
		b.WriteString(e.Error())
	}
	return b.String()
}

// RenderAll writes every diagnostic in es to w, followed by an
// "aborting due to previous error" banner.
func (es Errors) RenderAll(w io.Writer, color bool) {
	for _, e := range es {
		e.Render(w, color)
		fmt.Fprintln(w)
	}
	msg := "error: aborting due to previous error"
	if color {
		msg = "\x1b[1m\x1b[31merror\x1b[0m\x1b[1m: aborting due to previous error\x1b[22m"
	}
	fmt.Fprintln(w, msg)
}
