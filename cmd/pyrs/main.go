package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pyrs-lang/pyrs/pyrs"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if code := runMain(ctx, os.Args, os.Stdout, os.Stderr); code != 0 {
		stop()
		os.Exit(code)
	}
}

// runMain runs the CLI and reports a failure, returning the exit status.
func runMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := runCLI(ctx, args, stdout, stderr); err != nil {
		printError(errorOutput(err, stdout, stderr), err)
		return 1
	}
	return 0
}

func runCLI(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return newApp(stdout, stderr).RunContext(ctx, args)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "pyrs",
		Usage:     "run, inspect and format pyrs programs",
		UsageText: "pyrs [global options] [FILE]\n   pyrs [global options] command [command options] [arguments...]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "load settings from a YAML `FILE`",
				EnvVars: []string{"PYRS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "scoping",
				Usage:   "name resolution for function calls: dynamic or lexical",
				EnvVars: []string{"PYRS_SCOPING"},
			},
			&cli.IntFlag{
				Name:    "recursion-limit",
				Usage:   "maximum call depth (0 uses the default)",
				EnvVars: []string{"PYRS_RECURSION_LIMIT"},
			},
			&cli.IntFlag{
				Name:    "step-quota",
				Usage:   "maximum evaluation steps per run (0 is unlimited)",
				EnvVars: []string{"PYRS_STEP_QUOTA"},
			},
			&cli.IntFlag{
				Name:    "memory-quota",
				Usage:   "approximate heap limit in bytes (0 is unlimited)",
				EnvVars: []string{"PYRS_MEMORY_QUOTA"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"PYRS_LOG_LEVEL"},
			},
		},
		Action: defaultAction,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "execute a program",
				ArgsUsage: "FILE",
				Action:    runAction,
			},
			{
				Name:      "check",
				Usage:     "scan, parse and lint a program without running it",
				ArgsUsage: "FILE",
				Action:    checkAction,
			},
			{
				Name:      "tokens",
				Usage:     "print the token stream of a program",
				ArgsUsage: "FILE",
				Action:    tokensAction,
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree of a program",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: "sexpr",
						Usage: "output format: sexpr or yaml",
					},
				},
				Action: astAction,
			},
			{
				Name:      "fmt",
				Usage:     "re-indent source files",
				ArgsUsage: "PATH...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "w", Usage: "write result to source files instead of stdout"},
					&cli.BoolFlag{Name: "check", Usage: "fail if any source file needs formatting"},
				},
				Action: fmtAction,
			},
			{
				Name:   "lsp",
				Usage:  "serve diagnostics, completion and hover over stdio",
				Action: lspAction,
			},
			{
				Name:  "repl",
				Usage: "start an interactive session",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "plain", Usage: "use a line editor instead of the full-screen interface"},
				},
				Action: func(c *cli.Context) error {
					return startREPL(c, c.Bool("plain"))
				},
			},
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// defaultAction starts a REPL with no arguments and runs the file otherwise.
func defaultAction(c *cli.Context) error {
	switch c.NArg() {
	case 0:
		return startREPL(c, !isatty.IsTerminal(os.Stdin.Fd()))
	case 1:
		return runFile(c, c.Args().First())
	default:
		return usageError("", "expected at most one script path, got %d", c.NArg())
	}
}

func runAction(c *cli.Context) error {
	path, err := scriptArg(c)
	if err != nil {
		return err
	}
	return runFile(c, path)
}

func runFile(c *cli.Context, path string) error {
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
	return script.Run(c.Context)
}

func checkAction(c *cli.Context) error {
	path, err := scriptArg(c)
	if err != nil {
		return err
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

	warnings := lintProgram(script.Program())
	if len(warnings) == 0 {
		fmt.Fprintln(c.App.Writer, "No issues found")
		return nil
	}
	for _, warning := range warnings {
		fmt.Fprintln(c.App.Writer, warning.format(path))
	}
	return fmt.Errorf("check found %d issue(s)", len(warnings))
}

func scriptArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", usageError(c.Command.Name, "script path required")
	}
	return c.Args().First(), nil
}

func readScript(path string) (string, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(input), nil
}

func usageError(command, format string, args ...any) error {
	name := "pyrs"
	if command != "" {
		name += " " + command
	}
	return fmt.Errorf("%s: %s", name, fmt.Sprintf(format, args...))
}

// errorOutput sends language diagnostics to stdout, interleaved with the
// program's own output. Usage and I/O failures go to stderr.
func errorOutput(err error, stdout, stderr io.Writer) io.Writer {
	var diag *pyrs.Error
	if errors.As(err, &diag) {
		return stdout
	}
	return stderr
}

// printError writes err to w, highlighting the first line of each diagnostic
// when w is a colour-capable terminal.
func printError(w io.Writer, err error) {
	renderer := lipgloss.NewRenderer(w)
	headline := renderer.NewStyle().Foreground(errorColor).Bold(true)
	detail := renderer.NewStyle().Foreground(mutedColor)

	lines := strings.Split(err.Error(), "\n")
	highlightNext := true
	for _, line := range lines {
		switch {
		case line == "":
			highlightNext = true
			fmt.Fprintln(w)
		case highlightNext:
			highlightNext = false
			fmt.Fprintln(w, headline.Render(line))
		default:
			fmt.Fprintln(w, detail.Render(line))
		}
	}
}
