package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/pyrs-lang/pyrs/pyrs"
)

const banner = "pyrs interactive session. Type :quit or press Ctrl-D to exit."

// lineReader is the part of *liner.State the prompt loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runPlainREPL(ctx context.Context, engine *pyrs.Engine, historyPath string, stdout, stderr io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := engine.NewSession()
	ln.SetCompleter(func(line string) []string {
		prefix, matches := complete(session, line)
		out := make([]string, len(matches))
		for i, match := range matches {
			out[i] = prefix + match
		}
		return out
	})

	fmt.Fprintln(stdout, banner)
	return plainLoop(context.WithoutCancel(ctx), session, ln, stdout, stderr)
}

// plainLoop reads units until EOF or :quit. Each evaluation can be
// interrupted with Ctrl-C without ending the session.
func plainLoop(ctx context.Context, session *pyrs.Session, in lineReader, stdout, stderr io.Writer) error {
	var buf inputBuffer
	for {
		line, err := in.Prompt(buf.Prompt())
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(stdout)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			buf.Reset()
			continue
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		if !buf.Pending() && strings.HasPrefix(strings.TrimSpace(line), ":") {
			if quit := plainCommand(session, strings.TrimSpace(line), stdout); quit {
				return nil
			}
			continue
		}

		unit, ready := buf.Feed(line)
		if !ready {
			continue
		}
		in.AppendHistory(unit)

		evalCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		value, err := session.Eval(evalCtx, unit)
		stop()
		if err != nil {
			printError(errorOutput(err, stdout, stderr), err)
			continue
		}
		if text, ok := echo(value); ok {
			fmt.Fprintln(stdout, text)
		}
	}
}

func plainCommand(session *pyrs.Session, input string, stdout io.Writer) (quit bool) {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case ":quit", ":q":
		return true
	case ":reset", ":r":
		session.Reset()
		fmt.Fprintln(stdout, "Environment reset")
	case ":vars", ":v":
		vars := session.Env().Variables()
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(stdout, "%s = %s\n", name, vars[name].Repr())
		}
	default:
		fmt.Fprintln(stdout, "unknown command. Type :quit to exit.")
	}
	return false
}
