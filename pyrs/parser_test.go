package pyrs

import (
	"strings"
	"testing"
)

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"-x * 2", "(* (- x) 2)"},
		{"- - 1", "(- (- 1))"},
		{"not a == b", "(== (not a) b)"},
		{"a or b and c", "(or a (and b c))"},
		{"a and b or c", "(or (and a b) c)"},
		{"1 < 2 == True", "(== (< 1 2) True)"},
		{"1 + 2 >= 3 * 4", "(>= (+ 1 2) (* 3 4))"},
		{"f(1, g(2)) + xs[i + 1]", "(+ (call f 1 (call g 2)) (index xs (+ i 1)))"},
		{`[1, "a", [None, 2.5],]`, `[1 "a" [None 2.5]]`},
	}
	for _, tc := range cases {
		program := parseSource(t, tc.source+"\n")
		if len(program.Statements) != 1 {
			t.Fatalf("%q: expected one statement, got %d", tc.source, len(program.Statements))
		}
		if got := FormatNode(program.Statements[0]); got != tc.want {
			t.Fatalf("%q: got %s, want %s", tc.source, got, tc.want)
		}
	}
}

func TestParseOperatorPositions(t *testing.T) {
	program := parseSource(t, "a + b * c\n")
	stmt, ok := program.Statements[0].(*ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", program.Statements[0])
	}
	plus, ok := stmt.Expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected binary expression, got %T", stmt.Expr)
	}
	if plus.Pos() != (Position{Line: 1, Column: 3}) {
		t.Fatalf("expected + at 1:3, got %v", plus.Pos())
	}
	times := plus.Right.(*BinaryExpr)
	if times.Operator.Type != TokenAsterisk || times.Pos() != (Position{Line: 1, Column: 7}) {
		t.Fatalf("expected * at 1:7, got %s at %v", times.Operator, times.Pos())
	}
}

func TestParseStatements(t *testing.T) {
	source := `def add(a, b):
    return a + b
x = [1, 2]
x[0] = add(1, 2)
if x[0] > 2:
    print(x)
else:
    print()
while False:
    x = 1
def noop():
    return
`
	want := `(def add (a b)
  (return (+ a b)))
(= x [1 2])
([]= x 0 (call add 1 2))
(if (> (index x 0) 2)
  (print x)
  else
  (print))
(while False
  (= x 1))
(def noop ()
  (return))
`
	if got := FormatProgram(parseSource(t, source)); got != want {
		t.Fatalf("unexpected program:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseIndexExpressionStatementRewinds(t *testing.T) {
	program := parseSource(t, "x[0]\nx[0] + 1\nx[0] == 1\n")
	want := []string{"(index x 0)", "(+ (index x 0) 1)", "(== (index x 0) 1)"}
	for i, stmt := range program.Statements {
		if _, ok := stmt.(*ExprStmt); !ok {
			t.Fatalf("statement %d: expected expression statement, got %T", i, stmt)
		}
		if got := FormatNode(stmt); got != want[i] {
			t.Fatalf("statement %d: got %s, want %s", i, got, want[i])
		}
	}
}

func TestParseMissingClosingTokens(t *testing.T) {
	cases := []struct {
		source string
		msg    string
	}{
		{"print(1\n", "expected ')' after print argument, got end of line"},
		{"f(1, 2\n", "expected ')' after arguments, got end of line"},
		{"x = (1 + 2\n", "expected ')' after expression, got end of line"},
		{"xs[1\n", "expected ']' after index, got end of line"},
		{"if x\n    y = 1\n", "expected ':' after if condition, got end of line"},
		{"while x\n    y = 1\n", "expected ':' after while condition, got end of line"},
		{"x = 1 2\n", "expected newline after statement, got integer"},
		{"def (a):\n    return a\n", "expected function name, got '('"},
		{"def f(a, a):\n    return a\n", "duplicate argument 'a' in function definition"},
		{"if x:\ny = 1\n", "expected an indented block after 'if' statement"},
	}
	for _, tc := range cases {
		list := parseErrors(t, tc.source)
		if len(list) != 1 {
			t.Fatalf("%q: expected one error, got %d: %v", tc.source, len(list), list)
		}
		if list[0].Kind != SyntaxError || list[0].Message != tc.msg {
			t.Fatalf("%q: got %s %q, want %q", tc.source, list[0].Kind, list[0].Message, tc.msg)
		}
	}
}

func TestParseAccumulatesErrorsAcrossStatements(t *testing.T) {
	list := parseErrors(t, "x = )\ny = (\nz = 1\nprint(z\n")
	if len(list) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(list), list)
	}
	for i, line := range []int{1, 2, 4} {
		if list[i].Pos.Line != line {
			t.Fatalf("error %d: expected line %d, got %v", i, line, list[i].Pos)
		}
	}
}

func TestParseRecoversInsideBlocks(t *testing.T) {
	list := parseErrors(t, "def f():\n    x = )\n    y = ]\n    return 1\nprint(f()\n")
	if len(list) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(list), list)
	}
}

func TestParseBrokenHeaderSkipsItsBlock(t *testing.T) {
	list := parseErrors(t, "if x\n    y = )\n    z = ]\nw = 1\n")
	if len(list) != 1 {
		t.Fatalf("expected the block body to be skipped, got %d errors: %v", len(list), list)
	}
}

func TestParseUnexpectedIndent(t *testing.T) {
	list := parseErrors(t, "x = 1\n    y = 2\nz = 3\n")
	if len(list) != 1 || list[0].Message != "unexpected indent" {
		t.Fatalf("expected unexpected indent, got %v", list)
	}
	if list[0].Pos != (Position{Line: 2, Column: 5}) {
		t.Fatalf("expected error at 2:5, got %v", list[0].Pos)
	}
}

func TestParseEmptyProgram(t *testing.T) {
	program := parseSource(t, "\n\n# nothing here\n")
	if len(program.Statements) != 0 {
		t.Fatalf("expected empty program, got %d statements", len(program.Statements))
	}
}

func TestParseWithoutEOFToken(t *testing.T) {
	program, err := Parse([]Token{
		{Type: TokenPrint, Pos: Position{Line: 1, Column: 1}},
		{Type: TokenLParen, Pos: Position{Line: 1, Column: 6}},
		{Type: TokenInt, Int: 1, Pos: Position{Line: 1, Column: 7}},
		{Type: TokenRParen, Pos: Position{Line: 1, Column: 8}},
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := FormatProgram(program); got != "(print 1)\n" {
		t.Fatalf("unexpected program %q", got)
	}
}

func TestParseErrorsRenderCodeFrames(t *testing.T) {
	engine := MustNewEngine(Config{})
	_, err := engine.Compile("x = 1\ny = )\n")
	if err == nil {
		t.Fatalf("expected compile error")
	}
	msg := err.Error()
	for _, want := range []string{"SyntaxError: expected expression, got ')'", "Line 2, Column 5", " 2 | y = )", "^"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in error:\n%s", want, msg)
		}
	}
}
