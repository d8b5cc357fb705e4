package pyrs

import (
	"bytes"
	"context"
	"testing"
)

func compileScriptWithConfig(t testing.TB, cfg Config, source string) *Script {
	t.Helper()
	engine := MustNewEngine(cfg)
	script, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return script
}

// runSource compiles and runs source, returning whatever it printed.
func runSource(t testing.TB, cfg Config, source string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cfg.Stdout = &out
	script := compileScriptWithConfig(t, cfg, source)
	err := script.Run(context.Background())
	return out.String(), err
}

func runSourceDefault(t testing.TB, source string) (string, error) {
	t.Helper()
	return runSource(t, Config{}, source)
}

func parseSource(t testing.TB, source string) *Program {
	t.Helper()
	tokens, err := Scan(source)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

func parseErrors(t testing.TB, source string) ErrorList {
	t.Helper()
	tokens, err := Scan(source)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	program, err := Parse(tokens)
	if err == nil {
		t.Fatalf("expected parse error, got program %s", FormatProgram(program))
	}
	list, ok := err.(ErrorList)
	if !ok {
		t.Fatalf("expected ErrorList, got %T", err)
	}
	return list
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}
