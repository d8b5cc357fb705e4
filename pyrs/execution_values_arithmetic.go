package pyrs

import (
	"math/big"
)

func (exec *Execution) evalBinary(expr *BinaryExpr, env *Env) (Value, error) {
	left, err := exec.evalExpression(expr.Left, env)
	if err != nil {
		return NewNone(), err
	}

	switch expr.Operator.Type {
	case TokenAnd:
		if !left.Truthy() {
			return left, nil
		}
		return exec.evalExpression(expr.Right, env)
	case TokenOr:
		if left.Truthy() {
			return left, nil
		}
		return exec.evalExpression(expr.Right, env)
	}

	right, err := exec.evalExpression(expr.Right, env)
	if err != nil {
		return NewNone(), err
	}
	return exec.binaryOp(expr.Operator, left, right)
}

func (exec *Execution) binaryOp(op Operator, left, right Value) (Value, error) {
	switch op.Type {
	case TokenEQ:
		return NewBool(left.Equal(right)), nil
	case TokenNotEQ:
		return NewBool(!left.Equal(right)), nil
	case TokenPlus:
		if left.Kind() == KindString && right.Kind() == KindString {
			return NewString(left.Text() + right.Text()), nil
		}
		if left.Kind() == KindList && right.Kind() == KindList {
			a, b := left.List(), right.List()
			out := make([]Value, 0, len(a)+len(b))
			out = append(out, a...)
			out = append(out, b...)
			return NewList(out), nil
		}
		return exec.arithmetic(op, left, right)
	case TokenMinus, TokenAsterisk, TokenSlash:
		return exec.arithmetic(op, left, right)
	case TokenGT, TokenGTE, TokenLT, TokenLTE:
		return exec.compare(op, left, right)
	default:
		return NewNone(), exec.errorAt(SyntaxError, op.Pos, "unsupported operator %s", op)
	}
}

// arithmetic applies + - * / over Int, Float and Bool. Bools count as 0 and
// 1; any Float operand makes the result a Float.
func (exec *Execution) arithmetic(op Operator, left, right Value) (Value, error) {
	if !left.isNumeric() || !right.isNumeric() {
		return NewNone(), exec.errorAt(TypeError, op.Pos, "unsupported operand type(s) for %s: '%s' and '%s'",
			op, left.TypeName(), right.TypeName())
	}

	if left.isIntegral() && right.isIntegral() {
		return exec.integerArithmetic(op, left.integral(), right.integral())
	}

	a, b := left.Float(), right.Float()
	switch op.Type {
	case TokenPlus:
		return NewFloat(a + b), nil
	case TokenMinus:
		return NewFloat(a - b), nil
	case TokenAsterisk:
		return NewFloat(a * b), nil
	default:
		if b == 0 {
			return NewNone(), exec.errorAt(ZeroDivisionError, op.Pos, "float division by zero")
		}
		return NewFloat(a / b), nil
	}
}

// integerArithmetic keeps exact results while they divide evenly and stay
// within 128 bits; an uneven quotient becomes the nearest Float.
func (exec *Execution) integerArithmetic(op Operator, a, b *big.Int) (Value, error) {
	result := new(big.Int)
	switch op.Type {
	case TokenPlus:
		result.Add(a, b)
	case TokenMinus:
		result.Sub(a, b)
	case TokenAsterisk:
		result.Mul(a, b)
	default:
		if b.Sign() == 0 {
			return NewNone(), exec.errorAt(ZeroDivisionError, op.Pos, "division by zero")
		}
		rem := new(big.Int)
		result.QuoRem(a, b, rem)
		if rem.Sign() != 0 {
			f, _ := new(big.Rat).SetFrac(a, b).Float64()
			return NewFloat(f), nil
		}
	}
	if !fitsInt128(result) {
		return NewNone(), exec.errorAt(OverflowError, op.Pos, "integer result of %s does not fit in 128 bits", op)
	}
	return newIntOwned(result), nil
}

func (exec *Execution) compare(op Operator, left, right Value) (Value, error) {
	if !left.isNumeric() || !right.isNumeric() {
		return NewNone(), exec.errorAt(TypeError, op.Pos, "'%s' not supported between instances of '%s' and '%s'",
			op, left.TypeName(), right.TypeName())
	}
	cmp, ordered := compareNumbers(left, right)
	if !ordered {
		return NewBool(false), nil
	}
	switch op.Type {
	case TokenGT:
		return NewBool(cmp > 0), nil
	case TokenGTE:
		return NewBool(cmp >= 0), nil
	case TokenLT:
		return NewBool(cmp < 0), nil
	default:
		return NewBool(cmp <= 0), nil
	}
}

func (exec *Execution) unaryOp(op Operator, operand Value) (Value, error) {
	switch op.Type {
	case TokenNot:
		return NewBool(!operand.Truthy()), nil
	case TokenMinus:
		switch operand.Kind() {
		case KindFloat:
			return NewFloat(-operand.Float()), nil
		case KindInt, KindBool:
			result := new(big.Int).Neg(operand.integral())
			if !fitsInt128(result) {
				return NewNone(), exec.errorAt(OverflowError, op.Pos, "integer result of unary - does not fit in 128 bits")
			}
			return newIntOwned(result), nil
		default:
			return NewNone(), exec.errorAt(TypeError, op.Pos, "bad operand type for unary -: '%s'", operand.TypeName())
		}
	default:
		return NewNone(), exec.errorAt(SyntaxError, op.Pos, "unsupported unary operator %s", op)
	}
}
