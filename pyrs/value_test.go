package pyrs

import (
	"math"
	"math/big"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2, "2.0"},
		{3.5, "3.5"},
		{-0.25, "-0.25"},
		{0.1, "0.1"},
		{1.0 / 3, "0.3333333333333333"},
		{123456789, "123456789.0"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1e-4, "0.0001"},
		{1.5e-5, "1.5e-05"},
		{0, "0.0"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tc := range cases {
		if got := formatFloat(tc.in); got != tc.want {
			t.Fatalf("formatFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValueDisplay(t *testing.T) {
	list := NewList([]Value{
		NewInt(1),
		NewString("a"),
		NewList([]Value{NewBool(true)}),
		NewNone(),
		NewFloat(2),
		NewString("it's"),
	})
	if got, want := list.String(), `[1, 'a', [True], None, 2.0, "it's"]`; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if got := NewString("plain").String(); got != "plain" {
		t.Fatalf("strings display unquoted, got %s", got)
	}
	if got := NewString("plain").Repr(); got != "'plain'" {
		t.Fatalf("unexpected repr %s", got)
	}
	if got := NewBool(false).String(); got != "False" {
		t.Fatalf("unexpected bool display %s", got)
	}
}

func TestValueTypeNames(t *testing.T) {
	cases := map[string]Value{
		"int":      NewInt(1),
		"float":    NewFloat(1),
		"str":      NewString(""),
		"bool":     NewBool(true),
		"list":     NewList(nil),
		"NoneType": NewNone(),
	}
	for want, val := range cases {
		if got := val.TypeName(); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestTruthiness(t *testing.T) {
	falsy := []Value{NewInt(0), NewFloat(0), NewString(""), NewList([]Value{}), NewNone(), NewBool(false), {}}
	for _, v := range falsy {
		if v.Truthy() {
			t.Fatalf("expected %s (%s) to be falsy", v.Repr(), v.TypeName())
		}
	}
	truthy := []Value{NewInt(-1), NewFloat(0.5), NewString("0"), NewList([]Value{NewNone()}), NewBool(true)}
	for _, v := range truthy {
		if !v.Truthy() {
			t.Fatalf("expected %s (%s) to be truthy", v.Repr(), v.TypeName())
		}
	}
}

func TestEqualityIsTotal(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{NewInt(1), NewString("1"), false},
		{NewNone(), NewNone(), true},
		{NewNone(), NewBool(false), false},
		{NewNone(), NewInt(0), false},
		{NewList([]Value{NewInt(1), NewInt(2)}), NewList([]Value{NewInt(1), NewInt(2)}), true},
		{NewList([]Value{NewInt(1)}), NewList([]Value{NewInt(1), NewInt(2)}), false},
		{NewList([]Value{NewInt(1)}), NewInt(1), false},
		{NewInt(1), NewFloat(1), true},
		{NewBool(true), NewInt(1), false},
		{NewBool(false), NewFloat(0), false},
		{NewBool(true), NewBool(true), true},
		{NewBool(true), NewBool(false), false},
		{NewFloat(math.NaN()), NewFloat(math.NaN()), false},
		{NewString("a"), NewString("a"), true},
		{NewList([]Value{NewInt(1)}), NewList([]Value{NewFloat(1)}), true},
	}
	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Fatalf("%s == %s: got %v, want %v", tc.a.Repr(), tc.b.Repr(), got, tc.want)
		}
		if got := tc.b.Equal(tc.a); got != tc.want {
			t.Fatalf("%s == %s: got %v, want %v", tc.b.Repr(), tc.a.Repr(), got, tc.want)
		}
	}
}

func TestEqualityComparesLargeIntsExactly(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 53)
	n.Add(n, big.NewInt(1))
	big1, ok := NewBigInt(n)
	if !ok {
		t.Fatalf("expected 2^53+1 to fit")
	}
	if big1.Equal(NewFloat(float64(1 << 53))) {
		t.Fatalf("expected 2^53+1 != 2^53 as float")
	}
}

func TestCloneIsDeep(t *testing.T) {
	inner := []Value{NewInt(1)}
	orig := NewList([]Value{NewList(inner), NewString("x")})
	clone := orig.Clone()
	clone.List()[0].List()[0] = NewInt(99)
	clone.List()[1] = NewString("y")
	if got := orig.String(); got != "[[1], 'x']" {
		t.Fatalf("original changed through clone: %s", got)
	}
}

func TestNewBigIntRange(t *testing.T) {
	if _, ok := NewBigInt(maxInt128); !ok {
		t.Fatalf("expected max int128 to fit")
	}
	if _, ok := NewBigInt(minInt128); !ok {
		t.Fatalf("expected min int128 to fit")
	}
	tooBig := new(big.Int).Add(maxInt128, big.NewInt(1))
	if _, ok := NewBigInt(tooBig); ok {
		t.Fatalf("expected 2^127 to be rejected")
	}
}

func TestValueAccessors(t *testing.T) {
	if NewInt(7).Int() != 7 || NewFloat(2.9).Int() != 2 || NewBool(true).Int() != 1 {
		t.Fatalf("unexpected Int conversions")
	}
	if NewInt(3).Float() != 3 {
		t.Fatalf("unexpected Float conversion")
	}
	if NewString("s").Text() != "s" || NewInt(1).Text() != "" {
		t.Fatalf("unexpected Text accessor results")
	}
	if NewInt(1).List() != nil || NewInt(1).BigInt().Int64() != 1 || NewFloat(1).BigInt() != nil {
		t.Fatalf("unexpected accessor results")
	}
	if !(Value{}).IsNone() {
		t.Fatalf("zero Value should be None")
	}
}
