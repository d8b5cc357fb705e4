package main

import (
	"fmt"
	"sort"

	"github.com/pyrs-lang/pyrs/pyrs"
)

const moduleScope = "<module>"

type lintWarning struct {
	Function string
	Pos      pyrs.Position
	Message  string
}

func (w lintWarning) format(path string) string {
	line := w.Pos.Line
	column := w.Pos.Column
	if line <= 0 {
		line = 1
	}
	if column <= 0 {
		column = 1
	}
	return fmt.Sprintf("%s:%d:%d: %s (%s)", path, line, column, w.Message, w.Function)
}

// lintProgram reports statements that can never run and returns that sit
// outside any function.
func lintProgram(program *pyrs.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintStatements(moduleScope, program.Statements, &warnings)

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Function < warnings[j].Function
	})

	return warnings
}

func lintStatements(function string, statements []pyrs.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Function: function,
				Pos:      stmt.Pos(),
				Message:  "unreachable statement",
			})
			continue
		}
		if statementTerminates(function, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(function string, stmt pyrs.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *pyrs.ReturnStmt:
		if function == moduleScope {
			*warnings = append(*warnings, lintWarning{
				Function: function,
				Pos:      typed.Pos(),
				Message:  "'return' outside function",
			})
		}
		return true
	case *pyrs.IfStmt:
		consequentTerminated := lintStatements(function, typed.Consequent, warnings)
		if len(typed.Alternate) == 0 {
			return false
		}
		alternateTerminated := lintStatements(function, typed.Alternate, warnings)
		return consequentTerminated && alternateTerminated
	case *pyrs.WhileStmt:
		lintStatements(function, typed.Body, warnings)
		return false
	case *pyrs.FunctionStmt:
		lintStatements(typed.Name, typed.Body, warnings)
		return false
	default:
		return false
	}
}
