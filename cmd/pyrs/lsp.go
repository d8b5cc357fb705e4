package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pyrs-lang/pyrs/pyrs"
	"github.com/urfave/cli/v2"
)

const (
	severityError   = 1
	severityWarning = 2

	completionKindFunction = 3
	completionKindVariable = 6
	completionKindKeyword  = 14
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	engine *pyrs.Engine
	docs   map[string]string
}

func lspAction(c *cli.Context) error {
	engine, _, err := newEngine(c)
	if err != nil {
		return err
	}
	server := &lspServer{
		reader: bufio.NewReader(c.App.Reader),
		writer: bufio.NewWriter(c.App.Writer),
		engine: engine,
		docs:   make(map[string]string),
	}
	return server.serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			continue
		}

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
					},
				},
			},
		}
	case "initialized", "exit":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		_ = json.Unmarshal(incoming.Params, &params)
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(s.symbols(params.TextDocument.URI)),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		word := wordAtPosition(source, params.Position.Line, params.Position.Character)
		if word == "" {
			return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": hoverText(word, s.symbols(params.TextDocument.URI)),
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error:   &lspResponseError{Code: -32601, Message: "method not found"},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(s.engine, source),
		},
	}
}

// diagnosticsForSource reports scan and parse errors, or lint warnings when
// the document compiles.
func diagnosticsForSource(engine *pyrs.Engine, source string) []map[string]any {
	script, err := engine.Compile(source)
	if err == nil {
		warnings := lintProgram(script.Program())
		out := make([]map[string]any, 0, len(warnings))
		for _, w := range warnings {
			out = append(out, newDiagnostic(w.Pos, severityWarning, w.Message))
		}
		return out
	}

	var list pyrs.ErrorList
	if !errors.As(err, &list) {
		return []map[string]any{newDiagnostic(pyrs.Position{}, severityError, err.Error())}
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		message := fmt.Sprintf("%s: %s", item.Kind, item.Message)
		out = append(out, newDiagnostic(item.Pos, severityError, message))
	}
	return out
}

func newDiagnostic(pos pyrs.Position, severity int, message string) map[string]any {
	line := max(0, pos.Line-1)
	character := max(0, pos.Column-1)
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + 1,
			},
		},
		"severity": severity,
		"source":   "pyrs",
		"message":  message,
	}
}

// documentSymbols holds the names a document defines at any depth, with the
// parameter list of each function.
type documentSymbols struct {
	functions map[string][]string
	variables map[string]struct{}
}

func (s *lspServer) symbols(uri string) documentSymbols {
	syms := documentSymbols{
		functions: make(map[string][]string),
		variables: make(map[string]struct{}),
	}
	source, ok := s.docs[uri]
	if !ok {
		return syms
	}
	script, err := s.engine.Compile(source)
	if err != nil {
		return syms
	}
	collectSymbols(script.Program().Statements, syms)
	return syms
}

func collectSymbols(stmts []pyrs.Statement, syms documentSymbols) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *pyrs.AssignStmt:
			syms.variables[n.Name] = struct{}{}
		case *pyrs.FunctionStmt:
			syms.functions[n.Name] = n.Params
			for _, param := range n.Params {
				syms.variables[param] = struct{}{}
			}
			collectSymbols(n.Body, syms)
		case *pyrs.IfStmt:
			collectSymbols(n.Consequent, syms)
			collectSymbols(n.Alternate, syms)
		case *pyrs.WhileStmt:
			collectSymbols(n.Body, syms)
		}
	}
}

func completionItems(syms documentSymbols) []map[string]any {
	kinds := make(map[string]int)
	details := make(map[string]string)
	for name := range syms.variables {
		kinds[name] = completionKindVariable
		details[name] = "variable"
	}
	for name, params := range syms.functions {
		kinds[name] = completionKindFunction
		details[name] = signature(name, params)
	}
	for _, keyword := range pyrs.Keywords() {
		kinds[keyword] = completionKindKeyword
		details[keyword] = "keyword"
	}

	labels := make([]string, 0, len(kinds))
	for label := range kinds {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	items := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		items = append(items, map[string]any{
			"label":  label,
			"kind":   kinds[label],
			"detail": details[label],
		})
	}
	return items
}

func hoverText(word string, syms documentSymbols) string {
	for _, keyword := range pyrs.Keywords() {
		if keyword == word {
			return fmt.Sprintf("`%s`\n\npyrs keyword", word)
		}
	}
	if params, ok := syms.functions[word]; ok {
		return fmt.Sprintf("```python\n%s\n```\n\nfunction", signature(word, params))
	}
	if _, ok := syms.variables[word]; ok {
		return fmt.Sprintf("`%s`\n\nvariable", word)
	}
	return fmt.Sprintf("`%s`\n\nundefined name", word)
}

func signature(name string, params []string) string {
	return fmt.Sprintf("def %s(%s)", name, strings.Join(params, ", "))
}

func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(strings.TrimRight(lines[line], "\r"))
	if len(runes) == 0 {
		return ""
	}
	character = min(max(character, 0), len(runes))

	cursor := character
	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return r < 0x80 && isNameByte(byte(r))
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
