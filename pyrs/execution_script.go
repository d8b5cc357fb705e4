package pyrs

import (
	"context"
	"errors"
	"io"
	"time"
)

// Script is a compiled program ready to run any number of times.
type Script struct {
	engine  *Engine
	program *Program
	source  string
}

// Compile scans and parses source. A failing stage stops the pipeline: the
// parser never sees the tokens of a failed scan. Returned diagnostics carry
// code frames from source.
func (e *Engine) Compile(source string) (*Script, error) {
	tokens, err := Scan(source)
	if err != nil {
		return nil, withSource(err, source)
	}
	e.logger.Debug("scanned source", "tokens", len(tokens))

	program, err := Parse(tokens)
	if err != nil {
		return nil, withSource(err, source)
	}
	e.logger.Debug("parsed program", "statements", len(program.Statements))

	return &Script{engine: e, program: program, source: source}, nil
}

func withSource(err error, source string) error {
	var list ErrorList
	if errors.As(err, &list) {
		return list.withSource(source)
	}
	return err
}

func (s *Script) Program() *Program { return s.program }

// Run executes the program in a fresh root environment and stops at the
// first runtime error.
func (s *Script) Run(ctx context.Context) error {
	exec := s.engine.newExecution(ctx, newEnv(nil), s.source)
	started := time.Now()
	s.engine.logger.Debug("run started", "statements", len(s.program.Statements))
	_, err := exec.runProgram(s.program.Statements, false)
	s.engine.logger.Debug("run finished", "steps", exec.steps, "elapsed", time.Since(started), "failed", err != nil)
	return err
}

// runProgram executes top-level statements. When echo is set and the last
// statement is an expression, its value is returned.
func (exec *Execution) runProgram(stmts []Statement, echo bool) (Value, error) {
	var trailing *ExprStmt
	if echo && len(stmts) > 0 {
		if last, ok := stmts[len(stmts)-1].(*ExprStmt); ok {
			trailing = last
			stmts = stmts[:len(stmts)-1]
		}
	}

	sig, err := exec.evalStatements(stmts, exec.root)
	if err != nil {
		return NewNone(), err
	}
	if sig != nil {
		return NewNone(), exec.errorAt(SyntaxError, sig.pos, "'return' outside function")
	}
	if trailing == nil {
		return NewNone(), nil
	}
	if err := exec.step(); err != nil {
		return NewNone(), err
	}
	return exec.evalExpression(trailing.Expr, exec.root)
}

// Session keeps one root environment alive across evaluations, as an
// interactive prompt needs.
type Session struct {
	engine *Engine
	root   *Env
}

func (e *Engine) NewSession() *Session {
	return &Session{engine: e, root: newEnv(nil)}
}

// Eval compiles and runs one unit of input against the session's environment.
// It returns the value of a trailing expression statement, or None.
// Statements that ran before a runtime error keep their effects.
func (s *Session) Eval(ctx context.Context, source string) (Value, error) {
	script, err := s.engine.Compile(source)
	if err != nil {
		return NewNone(), err
	}
	exec := s.engine.newExecution(ctx, s.root, source)
	return exec.runProgram(script.program.Statements, true)
}

func (s *Session) Engine() *Engine { return s.engine }

// Env exposes the session's root frame for inspection.
func (s *Session) Env() *Env { return s.root }

// Reset discards every variable and function defined so far.
func (s *Session) Reset() { s.root = newEnv(nil) }

// Interpret runs an already parsed program with default settings, writing
// print output to w.
func Interpret(program *Program, w io.Writer) error {
	engine, err := NewEngine(Config{Stdout: w})
	if err != nil {
		return err
	}
	exec := engine.newExecution(context.Background(), newEnv(nil), "")
	_, err = exec.runProgram(program.Statements, false)
	return err
}
