package pyrs

import "math/big"

type ValueKind int

const (
	KindNone ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
)

// Value is a runtime value. The zero Value is None.
//
// Int payloads are *big.Int kept within the signed 128-bit range; they are
// never mutated after construction, so values may share them freely. List
// payloads are []Value and are copied by Clone wherever the language needs
// value semantics.
type Value struct {
	kind ValueKind
	data any
}

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

func fitsInt128(n *big.Int) bool {
	return n.Cmp(minInt128) >= 0 && n.Cmp(maxInt128) <= 0
}
