package pyrs

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNode renders a statement or expression as a parenthesised prefix
// form, e.g. `(+ 1 (* 2 3))`. Blocks are indented two spaces per level.
func FormatNode(node Node) string {
	var b strings.Builder
	writeNode(&b, node, 0)
	return b.String()
}

// FormatProgram renders every top-level statement on its own line.
func FormatProgram(program *Program) string {
	var b strings.Builder
	for _, stmt := range program.Statements {
		writeNode(&b, stmt, 0)
		b.WriteString("\n")
	}
	return b.String()
}

func writeNode(b *strings.Builder, node Node, depth int) {
	switch n := node.(type) {
	case *ExprStmt:
		writeNode(b, n.Expr, depth)
	case *PrintStmt:
		b.WriteString("(print")
		if n.Value != nil {
			b.WriteString(" ")
			writeNode(b, n.Value, depth)
		}
		b.WriteString(")")
	case *AssignStmt:
		fmt.Fprintf(b, "(= %s ", n.Name)
		writeNode(b, n.Value, depth)
		b.WriteString(")")
	case *ListAssignStmt:
		fmt.Fprintf(b, "([]= %s ", n.Name)
		writeNode(b, n.Index, depth)
		b.WriteString(" ")
		writeNode(b, n.Value, depth)
		b.WriteString(")")
	case *IfStmt:
		b.WriteString("(if ")
		writeNode(b, n.Condition, depth)
		writeBlock(b, n.Consequent, depth+1)
		if n.Alternate != nil {
			b.WriteString("\n")
			b.WriteString(strings.Repeat("  ", depth+1))
			b.WriteString("else")
			writeBlock(b, n.Alternate, depth+1)
		}
		b.WriteString(")")
	case *WhileStmt:
		b.WriteString("(while ")
		writeNode(b, n.Condition, depth)
		writeBlock(b, n.Body, depth+1)
		b.WriteString(")")
	case *FunctionStmt:
		fmt.Fprintf(b, "(def %s (%s)", n.Name, strings.Join(n.Params, " "))
		writeBlock(b, n.Body, depth+1)
		b.WriteString(")")
	case *ReturnStmt:
		b.WriteString("(return")
		if n.Value != nil {
			b.WriteString(" ")
			writeNode(b, n.Value, depth)
		}
		b.WriteString(")")
	case *UnaryExpr:
		fmt.Fprintf(b, "(%s ", n.Operator)
		writeNode(b, n.Right, depth)
		b.WriteString(")")
	case *BinaryExpr:
		fmt.Fprintf(b, "(%s ", n.Operator)
		writeNode(b, n.Left, depth)
		b.WriteString(" ")
		writeNode(b, n.Right, depth)
		b.WriteString(")")
	case *GroupingExpr:
		b.WriteString("(group ")
		writeNode(b, n.Inner, depth)
		b.WriteString(")")
	case *Identifier:
		b.WriteString(n.Name)
	case *CallExpr:
		fmt.Fprintf(b, "(call %s", n.Name)
		for _, arg := range n.Args {
			b.WriteString(" ")
			writeNode(b, arg, depth)
		}
		b.WriteString(")")
	case *IndexExpr:
		fmt.Fprintf(b, "(index %s ", n.Name)
		writeNode(b, n.Index, depth)
		b.WriteString(")")
	case *IntegerLiteral:
		b.WriteString(strconv.FormatUint(n.Value, 10))
	case *FloatLiteral:
		b.WriteString(formatFloat(n.Value))
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *BoolLiteral:
		if n.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *NoneLiteral:
		b.WriteString("None")
	case *ListLiteral:
		b.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				b.WriteString(" ")
			}
			writeNode(b, el, depth)
		}
		b.WriteString("]")
	default:
		fmt.Fprintf(b, "<%T>", node)
	}
}

func writeBlock(b *strings.Builder, stmts []Statement, depth int) {
	for _, stmt := range stmts {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", depth))
		writeNode(b, stmt, depth)
	}
}
