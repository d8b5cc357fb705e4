package pyrs

import (
	"context"
	"errors"
	"fmt"
	"io"
)

type Execution struct {
	engine       *Engine
	ctx          context.Context
	out          io.Writer
	source       string
	scoping      ScopeMode
	quota        int
	memoryQuota  int
	recursionCap int
	steps        int
	callStack    []callFrame
	root         *Env
	envStack     []*Env
}

type callFrame struct {
	Function string
	Pos      Position
}

// returnSignal carries a pending return out of the blocks it interrupts.
type returnSignal struct {
	value Value
	pos   Position
}

var errStepQuotaExceeded = errors.New("step quota exceeded")

func (e *Engine) newExecution(ctx context.Context, root *Env, source string) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Execution{
		engine:       e,
		ctx:          ctx,
		out:          e.config.Stdout,
		source:       source,
		scoping:      e.config.Scoping,
		quota:        e.config.StepQuota,
		memoryQuota:  e.config.MemoryQuotaBytes,
		recursionCap: e.config.RecursionLimit,
		callStack:    make([]callFrame, 0, 8),
		root:         root,
		envStack:     make([]*Env, 0, 8),
	}
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, exec.quota)
	}
	if exec.memoryQuota > 0 && (exec.steps&15) == 0 {
		if err := exec.checkMemory(Position{}); err != nil {
			return err
		}
	}
	select {
	case <-exec.ctx.Done():
		return exec.ctx.Err()
	default:
	}
	return nil
}

func (exec *Execution) errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	return exec.annotate(newError(kind, pos, format, args...))
}

// annotate attaches the call stack and a code frame to a diagnostic that has
// none yet. Other errors pass through unchanged.
func (exec *Execution) annotate(err error) error {
	var pe *Error
	if !errors.As(err, &pe) || pe.Frames != nil {
		return err
	}
	pe.Frames = exec.stackFrames(pe.Pos)
	if pe.CodeFrame == "" {
		pe.CodeFrame = formatCodeFrame(exec.source, pe.Pos)
	}
	return err
}

// stackFrames lists the failing position inside the innermost function
// followed by the call site of every active frame, innermost first.
func (exec *Execution) stackFrames(pos Position) []StackFrame {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) == 0 {
		return frames
	}
	current := exec.callStack[len(exec.callStack)-1]
	frames = append(frames, StackFrame{Function: current.Function, Pos: pos})
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		cf := exec.callStack[i]
		caller := "<module>"
		if i > 0 {
			caller = exec.callStack[i-1].Function
		}
		frames = append(frames, StackFrame{Function: caller, Pos: cf.Pos})
	}
	return frames
}

func (exec *Execution) evalStatements(stmts []Statement, env *Env) (*returnSignal, error) {
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return nil, err
		}
		sig, err := exec.evalStatement(stmt, env)
		if err != nil || sig != nil {
			return sig, err
		}
	}
	return nil, nil
}

func (exec *Execution) evalStatement(stmt Statement, env *Env) (*returnSignal, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := exec.evalExpression(s.Expr, env)
		return nil, err
	case *PrintStmt:
		return nil, exec.evalPrint(s, env)
	case *AssignStmt:
		return nil, exec.assignVariable(s, env)
	case *ListAssignStmt:
		return nil, exec.assignListElement(s, env)
	case *IfStmt:
		return exec.evalIf(s, env)
	case *WhileStmt:
		return exec.evalWhile(s, env)
	case *FunctionStmt:
		env.DefineFunction(&Function{Name: s.Name, Params: s.Params, Body: s.Body, Pos: s.Pos(), Env: env})
		return nil, nil
	case *ReturnStmt:
		value := NewNone()
		if s.Value != nil {
			val, err := exec.evalExpression(s.Value, env)
			if err != nil {
				return nil, err
			}
			value = val
		}
		return &returnSignal{value: value, pos: s.Pos()}, nil
	default:
		return nil, fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (exec *Execution) evalPrint(s *PrintStmt, env *Env) error {
	text := ""
	if s.Value != nil {
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return err
		}
		text = val.String()
	}
	if _, err := fmt.Fprintln(exec.out, text); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *IntegerLiteral:
		return NewBigIntFromUint64(e.Value), nil
	case *FloatLiteral:
		return NewFloat(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NoneLiteral:
		return NewNone(), nil
	case *ListLiteral:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			val, err := exec.evalExpression(el, env)
			if err != nil {
				return NewNone(), err
			}
			elems[i] = val
		}
		return NewList(elems), nil
	case *Identifier:
		val, err := env.Lookup(e.Name, e.Pos())
		if err != nil {
			return NewNone(), exec.annotate(err)
		}
		return val, nil
	case *GroupingExpr:
		return exec.evalExpression(e.Inner, env)
	case *UnaryExpr:
		operand, err := exec.evalExpression(e.Right, env)
		if err != nil {
			return NewNone(), err
		}
		return exec.unaryOp(e.Operator, operand)
	case *BinaryExpr:
		return exec.evalBinary(e, env)
	case *CallExpr:
		return exec.callFunction(e, env)
	case *IndexExpr:
		return exec.evalIndex(e, env)
	default:
		return NewNone(), fmt.Errorf("unsupported expression %T", expr)
	}
}
