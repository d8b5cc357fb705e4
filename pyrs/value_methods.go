package pyrs

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TypeName is the name used for the value's type in error messages.
func (v Value) TypeName() string { return v.kind.String() }

// String returns the display form written by print.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case KindInt:
		return v.bigInt().String()
	case KindFloat:
		return formatFloat(v.data.(float64))
	case KindString:
		return v.data.(string)
	case KindList:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// Repr differs from String only for strings, which are quoted.
func (v Value) Repr() string {
	if v.kind != KindString {
		return v.String()
	}
	return quoteString(v.data.(string))
}

func quoteString(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// formatFloat renders a float the way Python's repr does: the shortest
// round-tripping digits, always with a fraction or exponent, switching to
// exponent form below 1e-4 and from 1e16 upward.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	exp := strconv.FormatFloat(f, 'e', -1, 64)
	mark := strings.LastIndexByte(exp, 'e')
	power, _ := strconv.Atoi(exp[mark+1:])
	if power < -4 || power >= 16 {
		return exp
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Truthy converts any value to a boolean for conditions and logical operators.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.bigInt().Sign() != 0
	case KindFloat:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	case KindList:
		return len(v.data.([]Value)) > 0
	default:
		return true
	}
}

// Equal is total: it never fails. Int and Float compare by numeric value,
// lists compare element-wise, and any other pair of distinct kinds is unequal.
// A Bool only equals a Bool.
func (v Value) Equal(other Value) bool {
	if v.isNumber() && other.isNumber() {
		cmp, ordered := compareNumbers(v, other)
		return ordered && cmp == 0
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindBool:
		return v.data.(bool) == other.data.(bool)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindList:
		a, b := v.data.([]Value), other.data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone deep-copies lists so that the copy shares no mutable state with v.
func (v Value) Clone() Value {
	if v.kind != KindList {
		return v
	}
	elems := v.data.([]Value)
	out := make([]Value, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return NewList(out)
}

func (v Value) isNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat || v.kind == KindBool
}

// isNumber excludes Bool, which takes part in arithmetic but not in
// cross-kind equality.
func (v Value) isNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

func (v Value) isIntegral() bool {
	return v.kind == KindInt || v.kind == KindBool
}

// integral returns the value of an Int or Bool as a big integer. The result
// may alias the Int payload and must not be mutated.
func (v Value) integral() *big.Int {
	if v.kind == KindBool {
		if v.Bool() {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	}
	return v.bigInt()
}

// compareNumbers orders two numeric values exactly, without rounding the
// integer side through float64. ordered is false when either side is NaN.
func compareNumbers(a, b Value) (cmp int, ordered bool) {
	if a.isIntegral() && b.isIntegral() {
		return a.integral().Cmp(b.integral()), true
	}
	if (a.kind == KindFloat && math.IsNaN(a.Float())) || (b.kind == KindFloat && math.IsNaN(b.Float())) {
		return 0, false
	}
	return exactFloat(a).Cmp(exactFloat(b)), true
}

func exactFloat(v Value) *big.Float {
	if v.isIntegral() {
		return new(big.Float).SetInt(v.integral())
	}
	return new(big.Float).SetFloat64(v.Float())
}
