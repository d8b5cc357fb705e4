package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pyrs-lang/pyrs/pyrs"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func tokensAction(c *cli.Context) error {
	path, err := scriptArg(c)
	if err != nil {
		return err
	}
	source, err := readScript(path)
	if err != nil {
		return err
	}
	tokens, err := pyrs.Scan(source)
	if err != nil {
		return err
	}
	writeTokens(c.App.Writer, tokens)
	return nil
}

func writeTokens(w io.Writer, tokens []pyrs.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%s %s\n", tok.Pos, tok)
	}
}

func astAction(c *cli.Context) error {
	path, err := scriptArg(c)
	if err != nil {
		return err
	}
	format := c.String("format")
	if format != "sexpr" && format != "yaml" {
		return usageError("ast", "unknown format %q (want sexpr or yaml)", format)
	}

	engine, _, err := newEngine(c)
	if err != nil {
		return err
	}
	source, err := readScript(path)
	if err != nil {
		return err
	}
	script, err := engine.Compile(source)
	if err != nil {
		return err
	}

	if format == "yaml" {
		return writeASTYAML(c.App.Writer, script.Program())
	}
	_, err = io.WriteString(c.App.Writer, pyrs.FormatProgram(script.Program()))
	return err
}

func writeASTYAML(w io.Writer, program *pyrs.Program) error {
	doc := sequenceNode()
	for _, stmt := range program.Statements {
		doc.Content = append(doc.Content, astNode(stmt))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("ast: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("ast: encoder close: %w", err)
	}
	return nil
}

// astNode builds an ordered mapping for one syntax node: its type, its
// position, then its fields in source order.
func astNode(node pyrs.Node) *yaml.Node {
	m := &mappingBuilder{node: &yaml.Node{Kind: yaml.MappingNode}}
	m.scalar("node", nodeName(node))
	m.scalar("pos", node.Pos().String())

	switch n := node.(type) {
	case *pyrs.ExprStmt:
		m.child("expr", n.Expr)
	case *pyrs.PrintStmt:
		if n.Value != nil {
			m.child("value", n.Value)
		}
	case *pyrs.AssignStmt:
		m.scalar("name", n.Name)
		m.child("value", n.Value)
	case *pyrs.ListAssignStmt:
		m.scalar("name", n.Name)
		m.child("index", n.Index)
		m.child("value", n.Value)
	case *pyrs.IfStmt:
		m.child("condition", n.Condition)
		m.block("then", n.Consequent)
		if n.Alternate != nil {
			m.block("else", n.Alternate)
		}
	case *pyrs.WhileStmt:
		m.child("condition", n.Condition)
		m.block("body", n.Body)
	case *pyrs.FunctionStmt:
		m.scalar("name", n.Name)
		params := sequenceNode()
		params.Style = yaml.FlowStyle
		for _, p := range n.Params {
			params.Content = append(params.Content, scalarNode(p))
		}
		m.add("params", params)
		m.block("body", n.Body)
	case *pyrs.ReturnStmt:
		if n.Value != nil {
			m.child("value", n.Value)
		}
	case *pyrs.UnaryExpr:
		m.scalar("op", n.Operator.String())
		m.child("right", n.Right)
	case *pyrs.BinaryExpr:
		m.scalar("op", n.Operator.String())
		m.child("left", n.Left)
		m.child("right", n.Right)
	case *pyrs.GroupingExpr:
		m.child("inner", n.Inner)
	case *pyrs.Identifier:
		m.scalar("name", n.Name)
	case *pyrs.CallExpr:
		m.scalar("name", n.Name)
		args := sequenceNode()
		for _, arg := range n.Args {
			args.Content = append(args.Content, astNode(arg))
		}
		m.add("args", args)
	case *pyrs.IndexExpr:
		m.scalar("name", n.Name)
		m.child("index", n.Index)
	case *pyrs.IntegerLiteral:
		m.add("value", typedNode("!!int", strconv.FormatUint(n.Value, 10)))
	case *pyrs.FloatLiteral:
		m.add("value", typedNode("!!float", strconv.FormatFloat(n.Value, 'g', -1, 64)))
	case *pyrs.StringLiteral:
		value := scalarNode(n.Value)
		value.Style = yaml.DoubleQuotedStyle
		m.add("value", value)
	case *pyrs.BoolLiteral:
		m.add("value", typedNode("!!bool", strconv.FormatBool(n.Value)))
	case *pyrs.ListLiteral:
		elements := sequenceNode()
		for _, el := range n.Elements {
			elements.Content = append(elements.Content, astNode(el))
		}
		m.add("elements", elements)
	}
	return m.node
}

func nodeName(node pyrs.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", node), "*pyrs.")
}

type mappingBuilder struct {
	node *yaml.Node
}

func (m *mappingBuilder) add(key string, value *yaml.Node) {
	m.node.Content = append(m.node.Content, scalarNode(key), value)
}

func (m *mappingBuilder) scalar(key, value string) {
	m.add(key, scalarNode(value))
}

func (m *mappingBuilder) child(key string, node pyrs.Node) {
	m.add(key, astNode(node))
}

func (m *mappingBuilder) block(key string, stmts []pyrs.Statement) {
	seq := sequenceNode()
	for _, stmt := range stmts {
		seq.Content = append(seq.Content, astNode(stmt))
	}
	m.add(key, seq)
}

func scalarNode(value string) *yaml.Node {
	return typedNode("!!str", value)
}

func typedNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func sequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode}
}
