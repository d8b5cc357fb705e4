package pyrs

import "math/big"

func NewNone() Value           { return Value{kind: KindNone} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: big.NewInt(i)} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewList(l []Value) Value  { return Value{kind: KindList, data: l} }

// NewBigInt copies n into an Int value. It reports false when n lies outside
// the signed 128-bit range.
func NewBigInt(n *big.Int) (Value, bool) {
	if !fitsInt128(n) {
		return Value{}, false
	}
	return Value{kind: KindInt, data: new(big.Int).Set(n)}, true
}

// newIntOwned wraps a freshly computed result without copying it.
func newIntOwned(n *big.Int) Value {
	return Value{kind: KindInt, data: n}
}

// NewBigIntFromUint64 lifts an integer literal; every uint64 fits.
func NewBigIntFromUint64(u uint64) Value {
	return newIntOwned(new(big.Int).SetUint64(u))
}
