package compiler

import "github.com/qexat/vism-go/value"

// staticTypeCheck reports whether a value of type valueType may be
// stored against a target currently typed targetType: true if the
// target has never been concretely typed, or if the types match
// exactly. There is no widening at assignment time; widening only
// happens inside the arithmetic overload tables.
func staticTypeCheck(targetType, valueType value.Tag) bool {
	return value.Assignable(targetType, valueType)
}
