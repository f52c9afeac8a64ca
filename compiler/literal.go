package compiler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/qexat/vism-go/value"
)

// errInvalidLiteral is returned by evaluateLiteral when the Assign
// buffer cannot be parsed as any recognized literal shape. The caller
// turns this into an E002 diagnostic.
var errInvalidLiteral = errors.New("invalid literal")

// evaluateLiteral parses an Assign-Literal buffer into a Vism memory
// value: ints, floats, complex numbers, bools, strings, byte strings,
// and bracketed collections (lists, tuples, sets, dicts) of the same.
//
// The buffer is walked directly: by the time compiler.bufferChar hands
// it here, every escape sequence has already resolved to its final
// character, so there is nothing left to re-escape.
func evaluateLiteral(raw string) (any, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errInvalidLiteral
	}
	return parseLiteralValue(s)
}

func parseLiteralValue(s string) (any, error) {
	switch {
	case s == "True":
		return true, nil
	case s == "False":
		return false, nil
	case len(s) >= 3 && s[0] == 'b' && (s[1] == '"' || s[1] == '\''):
		return parseQuoted(s[1:], true)
	case len(s) >= 2 && (s[0] == '"' || s[0] == '\''):
		return parseQuoted(s, false)
	case len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']':
		elems, err := parseElements(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return value.SeqValue(elems), nil
	case len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')':
		elems, err := parseElements(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return value.TupleValue(elems), nil
	case len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}':
		return parseBraced(s[1 : len(s)-1])
	default:
		return parseNumber(s)
	}
}

func parseQuoted(s string, isBytes bool) (any, error) {
	if len(s) < 2 {
		return nil, errInvalidLiteral
	}
	quote := s[0]
	if quote != '"' && quote != '\'' {
		return nil, errInvalidLiteral
	}
	if s[len(s)-1] != quote {
		return nil, errInvalidLiteral
	}
	content := s[1 : len(s)-1]
	if isBytes {
		return []byte(content), nil
	}
	return content, nil
}

func parseElements(s string) ([]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := splitTopLevel(s, ',')
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue // tolerate a single trailing comma, e.g. `(1,)`
		}
		v, err := parseLiteralValue(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseBraced(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return value.NewSet(), nil
	}

	parts := splitTopLevel(s, ',')
	isDict := false
	for _, p := range parts {
		if _, _, ok := splitKV(p); ok {
			isDict = true
			break
		}
	}

	if !isDict {
		elems, err := parseElements(s)
		if err != nil {
			return nil, err
		}
		for _, e := range elems {
			if !hashable(e) {
				return nil, errInvalidLiteral
			}
		}
		return value.NewSet(elems...), nil
	}

	d := make(value.DictValue, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		keyRaw, valRaw, ok := splitKV(p)
		if !ok {
			return nil, errInvalidLiteral
		}
		k, err := parseLiteralValue(strings.TrimSpace(keyRaw))
		if err != nil {
			return nil, err
		}
		if !hashable(k) {
			return nil, errInvalidLiteral
		}
		v, err := parseLiteralValue(strings.TrimSpace(valRaw))
		if err != nil {
			return nil, err
		}
		d[k] = v
	}
	return d, nil
}

// hashable reports whether v may serve as a set element or dict key:
// only scalar values qualify, since the container representations are
// slice- and map-backed and cannot be map keys themselves.
func hashable(v any) bool {
	switch v.(type) {
	case int, float64, complex128, bool, string:
		return true
	default:
		return false
	}
}

// splitTopLevel splits s on sep at bracket/quote depth 0.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// splitKV splits a dict entry "key: value" at its top-level colon.
func splitKV(s string) (key, val string, ok bool) {
	parts := splitTopLevel(s, ':')
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func parseNumber(s string) (any, error) {
	if s == "" {
		return nil, errInvalidLiteral
	}
	last := s[len(s)-1]
	if last == 'j' || last == 'J' {
		return parseComplex(s[:len(s)-1])
	}
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errInvalidLiteral
		}
		return f, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, errInvalidLiteral
	}
	return n, nil
}

// parseComplex parses the portion of a complex literal before the
// trailing `j`/`J`, e.g. "4", "3+4", "3-4".
func parseComplex(s string) (complex128, error) {
	splitAt := -1
	for i := len(s) - 1; i > 0; i-- {
		if (s[i] == '+' || s[i] == '-') && s[i-1] != 'e' && s[i-1] != 'E' {
			splitAt = i
			break
		}
	}
	if splitAt == -1 {
		imag, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errInvalidLiteral
		}
		return complex(0, imag), nil
	}
	re, err := strconv.ParseFloat(s[:splitAt], 64)
	if err != nil {
		return 0, errInvalidLiteral
	}
	im, err := strconv.ParseFloat(s[splitAt:], 64)
	if err != nil {
		return 0, errInvalidLiteral
	}
	return complex(re, im), nil
}
