package pyrs

import "math/big"

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNone() bool { return v.kind == KindNone }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

// Int returns the integer payload truncated to int64. Floats are truncated
// toward zero and Bools read as 0 or 1.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(*big.Int).Int64()
	case KindFloat:
		return int64(v.data.(float64))
	case KindBool:
		if v.data.(bool) {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// BigInt returns a copy of the integer payload, or nil for non-Int values.
func (v Value) BigInt() *big.Int {
	if v.kind != KindInt {
		return nil
	}
	return new(big.Int).Set(v.data.(*big.Int))
}

func (v Value) bigInt() *big.Int {
	return v.data.(*big.Int)
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		f, _ := new(big.Float).SetInt(v.data.(*big.Int)).Float64()
		return f
	case KindBool:
		if v.data.(bool) {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Text returns the payload of a String value.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.data.(string)
}

func (v Value) List() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.data.([]Value)
}
