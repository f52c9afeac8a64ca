package vm

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/qexat/vism-go/value"
)

// numKind ranks the three numeric value types by widening order, the
// way Python's numeric tower promotes int -> float -> complex.
type numKind int

const (
	numInt numKind = iota
	numFloat
	numComplex
)

func asNumeric(v any) (complex128, numKind, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, numInt, true
		}
		return 0, numInt, true
	case int:
		return complex(float64(n), 0), numInt, true
	case float64:
		return complex(n, 0), numFloat, true
	case complex128:
		return n, numComplex, true
	default:
		return 0, 0, false
	}
}

func narrow(c complex128, kind numKind) any {
	switch kind {
	case numInt:
		return int(real(c))
	case numFloat:
		return real(c)
	default:
		return c
	}
}

func numericBinOp(a, b any, op func(x, y complex128) complex128) (any, bool, error) {
	ca, ka, ok1 := asNumeric(a)
	cb, kb, ok2 := asNumeric(b)
	if !ok1 || !ok2 {
		return nil, false, nil
	}
	kind := ka
	if kb > kind {
		kind = kb
	}
	return narrow(op(ca, cb), kind), true, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (a < 0) != (b < 0) {
		m += b
	}
	return m
}

func vmAdd(a, b any) (any, error) {
	if result, ok, err := numericBinOp(a, b, func(x, y complex128) complex128 { return x + y }); ok || err != nil {
		return result, err
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av + bv, nil
		}
	case []byte:
		if bv, ok := b.([]byte); ok {
			out := make([]byte, 0, len(av)+len(bv))
			out = append(out, av...)
			out = append(out, bv...)
			return out, nil
		}
	case value.SeqValue:
		if bv, ok := b.(value.SeqValue); ok {
			out := make(value.SeqValue, 0, len(av)+len(bv))
			out = append(out, av...)
			out = append(out, bv...)
			return out, nil
		}
	case value.TupleValue:
		if bv, ok := b.(value.TupleValue); ok {
			out := make(value.TupleValue, 0, len(av)+len(bv))
			out = append(out, av...)
			out = append(out, bv...)
			return out, nil
		}
	case value.DictValue:
		if bv, ok := b.(value.DictValue); ok {
			out := make(value.DictValue, len(av)+len(bv))
			for k, v := range av {
				out[k] = v
			}
			for k, v := range bv {
				out[k] = v
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
}

func vmSub(a, b any) (any, error) {
	if result, ok, err := numericBinOp(a, b, func(x, y complex128) complex128 { return x - y }); ok || err != nil {
		return result, err
	}

	if av, ok := a.(value.SetValue); ok {
		if bv, ok := b.(value.SetValue); ok {
			out := make(value.SetValue, len(av))
			for k := range av {
				if _, in := bv[k]; !in {
					out[k] = struct{}{}
				}
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
}

func vmMul(a, b any) (any, error) {
	if result, ok, err := numericBinOp(a, b, func(x, y complex128) complex128 { return x * y }); ok || err != nil {
		return result, err
	}
	if result, ok := tryReplicate(a, b); ok {
		return result, nil
	}
	if result, ok := tryReplicate(b, a); ok {
		return result, nil
	}
	return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
}

// tryReplicate implements `container * count` (Python-style sequence
// replication). A negative count yields an empty container, matching
// Python semantics.
func tryReplicate(container, count any) (any, bool) {
	n, ok := asInt(count)
	if !ok {
		return nil, false
	}
	if n < 0 {
		n = 0
	}
	switch c := container.(type) {
	case string:
		return strings.Repeat(c, n), true
	case []byte:
		return bytes.Repeat(c, n), true
	case value.SeqValue:
		out := make(value.SeqValue, 0, len(c)*n)
		for i := 0; i < n; i++ {
			out = append(out, c...)
		}
		return out, true
	case value.TupleValue:
		out := make(value.TupleValue, 0, len(c)*n)
		for i := 0; i < n; i++ {
			out = append(out, c...)
		}
		return out, true
	default:
		return nil, false
	}
}

func vmIntDiv(a, b any) (any, error) {
	ai, ok1 := asInt(a)
	bi, ok2 := asInt(b)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
	}
	if bi == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return floorDiv(ai, bi), nil
}

func vmModulo(a, b any) (any, error) {
	ai, ok1 := asInt(a)
	bi, ok2 := asInt(b)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
	}
	if bi == 0 {
		return nil, fmt.Errorf("modulo by zero")
	}
	return floorMod(ai, bi), nil
}

func vmDivMod(a, b any) (any, error) {
	ai, ok1 := asInt(a)
	bi, ok2 := asInt(b)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
	}
	if bi == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return value.TupleValue{floorDiv(ai, bi), floorMod(ai, bi)}, nil
}

func vmUnion(a, b any) (any, error) {
	av, ok1 := a.(value.SetValue)
	bv, ok2 := b.(value.SetValue)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
	}
	out := make(value.SetValue, len(av)+len(bv))
	for k := range av {
		out[k] = struct{}{}
	}
	for k := range bv {
		out[k] = struct{}{}
	}
	return out, nil
}

func vmStrDiff(a, b any) (any, error) {
	av, ok1 := a.(string)
	bv, ok2 := b.(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
	}
	return strings.ReplaceAll(av, bv, ""), nil
}

func vmSeqDiff(a, b any) (any, error) {
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		if !ok {
			return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
		}
		exclude := make(map[byte]struct{}, len(bv))
		for _, x := range bv {
			exclude[x] = struct{}{}
		}
		out := make([]byte, 0, len(av))
		for _, x := range av {
			if _, skip := exclude[x]; !skip {
				out = append(out, x)
			}
		}
		return out, nil

	case value.SeqValue:
		bv, ok := b.(value.SeqValue)
		if !ok {
			return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
		}
		out := make(value.SeqValue, 0, len(av))
		for _, x := range av {
			if !containsAny(bv, x) {
				out = append(out, x)
			}
		}
		return out, nil

	case value.TupleValue:
		bv, ok := b.(value.TupleValue)
		if !ok {
			return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
		}
		out := make(value.TupleValue, 0, len(av))
		for _, x := range av {
			if !containsAny(value.SeqValue(bv), x) {
				out = append(out, x)
			}
		}
		return out, nil

	case value.DictValue:
		bv, ok := b.(value.DictValue)
		if !ok {
			return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
		}
		out := make(value.DictValue, len(av))
		for k, v := range av {
			if _, in := bv[k]; !in {
				out[k] = v
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
	}
}

func containsAny(xs value.SeqValue, v any) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func vmPathJoin(a, b any) (any, error) {
	av, ok1 := a.(string)
	bv, ok2 := b.(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unsupported operand types %T and %T", a, b)
	}
	return av + "/" + bv, nil
}
