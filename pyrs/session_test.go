package pyrs

import (
	"bytes"
	"context"
	"testing"
)

func TestSessionKeepsStateAcrossEvaluations(t *testing.T) {
	var out bytes.Buffer
	session := MustNewEngine(Config{Stdout: &out}).NewSession()
	ctx := context.Background()

	if _, err := session.Eval(ctx, "x = 41"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if _, err := session.Eval(ctx, "def double(a):\n    return a * 2\n"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	val, err := session.Eval(ctx, "x + 1")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if val.Kind() != KindInt || val.Int() != 42 {
		t.Fatalf("expected 42, got %s", val.Repr())
	}
	val, err = session.Eval(ctx, "print(double(x))\ndouble(0.5)")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if val.Kind() != KindFloat || val.Float() != 1 {
		t.Fatalf("expected 1.0, got %s", val.Repr())
	}
	if out.String() != "82\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	names := session.Env().Names()
	if len(names) != 2 || names[0] != "double" || names[1] != "x" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestSessionStatementsReturnNone(t *testing.T) {
	session := MustNewEngine(Config{Stdout: &bytes.Buffer{}}).NewSession()
	val, err := session.Eval(context.Background(), "y = [1, 2]")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if !val.IsNone() {
		t.Fatalf("expected None for an assignment, got %s", val.Repr())
	}
}

func TestSessionKeepsEffectsBeforeFailure(t *testing.T) {
	session := MustNewEngine(Config{Stdout: &bytes.Buffer{}}).NewSession()
	ctx := context.Background()
	if _, err := session.Eval(ctx, "y = 1\nprint(1 / 0)\ny = 2"); !IsKind(err, ZeroDivisionError) {
		t.Fatalf("expected ZeroDivisionError, got %v", err)
	}
	val, err := session.Eval(ctx, "y")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if val.Int() != 1 {
		t.Fatalf("expected y = 1, got %s", val.Repr())
	}
}

func TestSessionCompileErrorRunsNothing(t *testing.T) {
	var out bytes.Buffer
	session := MustNewEngine(Config{Stdout: &out}).NewSession()
	_, err := session.Eval(context.Background(), "print(1)\nprint(\n")
	if !IsKind(err, SyntaxError) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing to run, got %q", out.String())
	}
}

func TestSessionReset(t *testing.T) {
	session := MustNewEngine(Config{Stdout: &bytes.Buffer{}}).NewSession()
	ctx := context.Background()
	if _, err := session.Eval(ctx, "x = 1"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	session.Reset()
	if _, err := session.Eval(ctx, "x"); !IsKind(err, NameError) {
		t.Fatalf("expected NameError after reset, got %v", err)
	}
}

func TestSessionTopLevelReturn(t *testing.T) {
	session := MustNewEngine(Config{Stdout: &bytes.Buffer{}}).NewSession()
	if _, err := session.Eval(context.Background(), "return 5"); !IsKind(err, SyntaxError) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}
