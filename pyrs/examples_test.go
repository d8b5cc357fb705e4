package pyrs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExamplePrograms(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.py"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no example programs found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			want, err := os.ReadFile(strings.TrimSuffix(path, ".py") + ".out")
			if err != nil {
				t.Fatalf("read expected output: %v", err)
			}
			for _, mode := range scopingModes {
				out, err := runSource(t, Config{Scoping: mode}, string(source))
				if err != nil {
					t.Fatalf("%s: run failed: %v", mode, err)
				}
				if out != string(want) {
					t.Fatalf("%s: output mismatch\n got:\n%s\nwant:\n%s", mode, out, want)
				}
			}
		})
	}
}
