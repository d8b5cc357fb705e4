package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSourceFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.py")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	return path
}

func TestFormatSource(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "reindents blocks",
			input:  "if x:\n  y = 1\n  if y:\n\tz = 2\nprint(y)  \n",
			output: "if x:\n    y = 1\n    if y:\n        z = 2\nprint(y)\n",
		},
		{
			name:   "comment follows next statement",
			input:  "def f():\n  # note\n  return 1\n",
			output: "def f():\n    # note\n    return 1\n",
		},
		{
			name:   "lone carriage return is not a line break",
			input:  "if x:\r\n  y = 1\rz = 2\r\r\n",
			output: "if x:\n    y = 1\rz = 2\n",
		},
		{
			name:   "normalises newlines",
			input:  "x = 1\r\n\r\ny = 2\r\n\r\n\r\n",
			output: "x = 1\n\ny = 2\n",
		},
		{
			name:   "already formatted",
			input:  "while n > 0:\n    n = n - 1\n",
			output: "while n > 0:\n    n = n - 1\n",
		},
		{
			name:   "empty",
			input:  "\n\n",
			output: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formatSource(tc.input)
			if err != nil {
				t.Fatalf("formatSource failed: %v", err)
			}
			if got != tc.output {
				t.Fatalf("unexpected output:\nwant %q\ngot  %q", tc.output, got)
			}
		})
	}
}

func TestFormatSourceRejectsScanErrors(t *testing.T) {
	if _, err := formatSource("x = \"open\n"); err == nil {
		t.Fatalf("expected scan error")
	}
	if _, err := formatSource("if x:\n        y\n    z\n"); err == nil {
		t.Fatalf("expected indentation error")
	}
}

func TestFmtCommandRequiresPath(t *testing.T) {
	_, err := runApp(t, "fmt")
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeSourceFile(t, "if x:  \n  y\t \n")
	out, err := runApp(t, "fmt", "--check", path)
	if err == nil {
		t.Fatalf("expected formatting check failure")
	}
	if !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("unexpected check error: %v", err)
	}
	if !strings.Contains(out, "main.py") {
		t.Fatalf("expected file name in output, got %q", out)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeSourceFile(t, "if x:  \n  y\t \n")
	if _, err := runApp(t, "fmt", "-w", path); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != "if x:\n    y\n" {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeSourceFile(t, "if x:  \n  y\t \n")
	out, err := runApp(t, "fmt", path)
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if out != "if x:\n    y\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read source file: %v", err)
	}
	if string(original) != "if x:  \n  y\t \n" {
		t.Fatalf("fmt without -w modified the file")
	}
}

func TestCollectSourceFilesWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"b.py", "a.py", "notes.txt", filepath.Join("lib", "c.py")} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	files, err := collectSourceFiles([]string{dir, filepath.Join(dir, "a.py")})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	for i, suffix := range []string{"a.py", "b.py", filepath.Join("lib", "c.py")} {
		if !strings.HasSuffix(files[i], suffix) {
			t.Fatalf("file %d = %s, want suffix %s", i, files[i], suffix)
		}
	}
}
