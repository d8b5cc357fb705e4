package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pyrs-lang/pyrs/pyrs"
	"github.com/urfave/cli/v2"
)

const (
	sourceExt  = ".py"
	indentUnit = "    "
)

func fmtAction(c *cli.Context) error {
	targets := c.Args().Slice()
	if len(targets) == 0 {
		return usageError("fmt", "path required")
	}
	write := c.Bool("w")
	check := c.Bool("check")

	files, err := collectSourceFiles(targets)
	if err != nil {
		return err
	}

	changedCount := 0
	for _, path := range files {
		originalBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		original := string(originalBytes)
		formatted, err := formatSource(original)
		if err != nil {
			return fmt.Errorf("format %s: %w", path, err)
		}
		changed := formatted != original
		if changed {
			changedCount++
		}

		switch {
		case check:
			if changed {
				fmt.Fprintln(c.App.Writer, path)
			}
		case write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case !write:
			fmt.Fprint(c.App.Writer, formatted)
		}
	}

	if check && changedCount > 0 {
		return fmt.Errorf("pyrs fmt: %d file(s) need formatting", changedCount)
	}
	return nil
}

// collectSourceFiles expands directories to the .py files beneath them.
// Files named explicitly are kept whatever their extension.
func collectSourceFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || filepath.Ext(path) != sourceExt {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// formatSource re-indents source to four spaces per block level and strips
// trailing whitespace. Sources that fail to scan are rejected unchanged.
func formatSource(source string) (string, error) {
	// A lone \r is whitespace to the lexer, so only \r\n is a line break.
	normalized := strings.ReplaceAll(source, "\r\n", "\n")

	tokens, err := pyrs.Scan(normalized)
	if err != nil {
		return "", err
	}

	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}

	layout := layoutLines(tokens)
	out := make([]string, len(lines))
	for i, line := range lines {
		lineNo := i + 1
		body := strings.TrimLeft(line, " \t\r")
		level, ok := layout[lineNo]
		switch {
		case body == "":
			out[i] = ""
		case ok:
			out[i] = strings.Repeat(indentUnit, level) + body
		case strings.HasPrefix(body, "#"):
			out[i] = strings.Repeat(indentUnit, nextCodeLevel(layout, lineNo, len(lines))) + body
		default:
			out[i] = line
		}
	}

	joined := strings.TrimRight(strings.Join(out, "\n"), "\n")
	if joined == "" {
		return "", nil
	}
	return joined + "\n", nil
}

// layoutLines assigns a block level to every line that holds a token.
func layoutLines(tokens []pyrs.Token) map[int]int {
	layout := make(map[int]int)
	level := 0
	for _, tok := range tokens {
		switch tok.Type {
		case pyrs.TokenIndent:
			level++
			continue
		case pyrs.TokenDedent:
			level--
			continue
		case pyrs.TokenEndOfLine, pyrs.TokenEOF:
			continue
		}
		if _, seen := layout[tok.Pos.Line]; !seen {
			layout[tok.Pos.Line] = level
		}
	}
	return layout
}

func nextCodeLevel(layout map[int]int, from, total int) int {
	for line := from + 1; line <= total; line++ {
		if level, ok := layout[line]; ok {
			return level
		}
	}
	return 0
}
