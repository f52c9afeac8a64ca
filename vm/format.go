package vm

import (
	"strconv"
	"strings"

	"github.com/qexat/vism-go/value"
)

// formatValue renders a memory value the way `p` writes it to stdout:
// a top-level string prints unquoted, everything else prints the same
// representation it would get nested inside a container.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return reprValue(v)
}

// reprValue renders v the way it would appear as a container element:
// strings quoted, nested containers rendered recursively.
func reprValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case complex128:
		return formatComplex(x)
	case string:
		return "'" + x + "'"
	case []byte:
		return "b'" + string(x) + "'"
	case value.SeqValue:
		return "[" + joinRepr(x) + "]"
	case value.TupleValue:
		if len(x) == 1 {
			return "(" + reprValue(x[0]) + ",)"
		}
		return "(" + joinRepr(x) + ")"
	case value.SetValue:
		return "{" + joinRepr(x.Elements()) + "}"
	case value.DictValue:
		parts := make([]string, 0, len(x))
		for k, v := range x {
			parts = append(parts, reprValue(k)+": "+reprValue(v))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return strconv.Quote("")
	}
}

func joinRepr(elems []any) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = reprValue(e)
	}
	return strings.Join(parts, ", ")
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if re == 0 {
		return strconv.FormatFloat(im, 'g', -1, 64) + "j"
	}
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	return "(" + strconv.FormatFloat(re, 'g', -1, 64) + sign + strconv.FormatFloat(im, 'g', -1, 64) + "j)"
}
