// Package selector implements the named payload parsers used by Select
// mode to turn a raw buffered string into a typed selector value: a
// register address, a stream file descriptor, or a memory identifier.
package selector

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind identifies which of the three selector payload grammars a Type
// implements. It exists so callers (notably diagnostics) can name a
// selector's grammar without holding onto the generic Type itself.
type Kind int

const (
	// KindAddress selects a hexadecimal register address.
	KindAddress Kind = iota
	// KindInteger selects a signed decimal stream file descriptor.
	KindInteger
	// KindIdentifier selects a memory-slot identifier.
	KindIdentifier
)

// Type is a named, regex-validated payload parser. Each Type fully
// matches or rejects a candidate string; a partial match is a
// rejection.
type Type struct {
	Name    string
	Kind    Kind
	pattern *regexp.Regexp
	cast    func(s string) (any, error)
}

// Evaluate validates s against the type's grammar and, on success,
// returns the cast value. The returned value's dynamic type depends on
// Kind: int for Address and Integer, string for Identifier.
func (t Type) Evaluate(s string) (any, error) {
	if !t.pattern.MatchString(s) {
		return nil, fmt.Errorf("%s: %q does not match the %s grammar", t.Name, s, t.Name)
	}
	return t.cast(s)
}

func fullMatch(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)$`)
}

// Address parses a hexadecimal register address, e.g. "1a", "0F".
var Address = Type{
	Name:    "address",
	Kind:    KindAddress,
	pattern: fullMatch(`(?i)[0-9A-F]+`),
	cast: func(s string) (any, error) {
		v, err := strconv.ParseInt(s, 16, 64)
		if err != nil {
			return nil, err
		}
		return int(v), nil
	},
}

// Integer parses a signed decimal stream file descriptor, e.g. "-1", "0".
var Integer = Type{
	Name:    "integer",
	Kind:    KindInteger,
	pattern: fullMatch(`[+-]?[0-9]+`),
	cast: func(s string) (any, error) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	},
}

// Identifier parses a memory-slot identifier, e.g. "x", "_foo42".
var Identifier = Type{
	Name:    "identifier",
	Kind:    KindIdentifier,
	pattern: fullMatch(`(?i)[A-Z_]\w*`),
	cast: func(s string) (any, error) {
		return s, nil
	},
}
