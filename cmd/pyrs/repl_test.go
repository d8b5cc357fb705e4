package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pyrs-lang/pyrs/pyrs"
)

func newTestModel(t *testing.T) replModel {
	t.Helper()
	m, err := newREPLModel(pyrs.Config{})
	if err != nil {
		t.Fatalf("newREPLModel failed: %v", err)
	}
	return m
}

func submit(t *testing.T, m replModel, line string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(line)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func lastEntry(t *testing.T, m replModel) historyEntry {
	t.Helper()
	if len(m.history) == 0 {
		t.Fatalf("history is empty")
	}
	return m.history[len(m.history)-1]
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := submit(t, newTestModel(t), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := submit(t, newTestModel(t), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestUnknownCommandIsReported(t *testing.T) {
	rm, _ := submit(t, newTestModel(t), ":bogus")
	entry := lastEntry(t, rm)
	if !entry.isErr || !strings.Contains(entry.output, "Unknown command: :bogus") {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestAssignmentPersistsAcrossSubmissions(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, "score = 42")

	entry := lastEntry(t, m)
	if entry.isErr || entry.output != "" {
		t.Fatalf("assignment should produce no output, got %+v", entry)
	}
	score, ok := m.session.Env().Get("score")
	if !ok {
		t.Fatalf("expected score to be stored in the session")
	}
	if score.Kind() != pyrs.KindInt || score.Int() != 42 {
		t.Fatalf("unexpected score value: %#v", score)
	}

	m, _ = submit(t, m, "score == 42")
	if entry := lastEntry(t, m); entry.output != "True" {
		t.Fatalf("unexpected echo %+v", entry)
	}
	score, _ = m.session.Env().Get("score")
	if score.Int() != 42 {
		t.Fatalf("equality expression clobbered score: %#v", score)
	}
}

func TestPrintOutputIsCaptured(t *testing.T) {
	m, _ := submit(t, newTestModel(t), `print("hi")`)
	entry := lastEntry(t, m)
	if entry.isErr || entry.output != "hi" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if m.printed.Len() != 0 {
		t.Fatalf("print buffer should be drained")
	}
}

func TestBlockInputWaitsForBlankLine(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, "def square(n):")
	if m.textInput.Prompt != promptCont {
		t.Fatalf("expected continuation prompt, got %q", m.textInput.Prompt)
	}
	m, _ = submit(t, m, "    return n * n")
	if len(m.history) != 0 {
		t.Fatalf("block evaluated before it was closed")
	}
	m, _ = submit(t, m, "")
	if m.textInput.Prompt != promptMain {
		t.Fatalf("expected main prompt, got %q", m.textInput.Prompt)
	}
	entry := lastEntry(t, m)
	if entry.isErr || entry.input != "def square(n):\n    return n * n" {
		t.Fatalf("unexpected block entry: %+v", entry)
	}

	m, _ = submit(t, m, "square(7)")
	if entry := lastEntry(t, m); entry.output != "49" {
		t.Fatalf("unexpected result %+v", entry)
	}
}

func TestErrorsAreReported(t *testing.T) {
	m, _ := submit(t, newTestModel(t), "1 / 0")
	entry := lastEntry(t, m)
	if !entry.isErr || !strings.Contains(entry.output, "ZeroDivisionError") {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestPrintBeforeErrorIsKept(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, "if True:")
	m, _ = submit(t, m, `    print("first")`)
	m, _ = submit(t, m, "    missing")
	m, _ = submit(t, m, "")
	entry := lastEntry(t, m)
	if !entry.isErr {
		t.Fatalf("expected error entry, got %+v", entry)
	}
	if !strings.HasPrefix(entry.output, "first\nNameError") {
		t.Fatalf("unexpected output %q", entry.output)
	}
}

func TestResetClearsSession(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, "x = 1")
	m, _ = submit(t, m, ":reset")
	if _, ok := m.session.Env().Get("x"); ok {
		t.Fatalf("x should be gone after reset")
	}
	if entry := lastEntry(t, m); entry.output != "Environment reset" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestAutocompleteSingleMatch(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, "counter = 1")
	m.textInput.SetValue("print(coun")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := model.(replModel)
	if got := rm.textInput.Value(); got != "print(counter" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestAutocompleteListsAmbiguousMatches(t *testing.T) {
	m := newTestModel(t)
	m.textInput.SetValue("Tr")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := model.(replModel)
	if rm.textInput.Value() != "True" {
		t.Fatalf("unexpected completion %q", rm.textInput.Value())
	}

	m, _ = submit(t, m, "note = 1")
	m, _ = submit(t, m, "nothing = 2")
	m.textInput.SetValue("no")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm = model.(replModel)
	entry := lastEntry(t, rm)
	if entry.output != "Completions: not, note, nothing" {
		t.Fatalf("unexpected completions %q", entry.output)
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, "a = 1")
	m, _ = submit(t, m, "b = 2")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "b = 2" {
		t.Fatalf("unexpected history value %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "a = 1" {
		t.Fatalf("unexpected history value %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	if m.textInput.Value() != "" {
		t.Fatalf("expected empty input past newest entry, got %q", m.textInput.Value())
	}
}

func TestViewRendersHistory(t *testing.T) {
	m := newTestModel(t)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = submit(t, m, "x = [1, 2]")
	m, _ = submit(t, m, ":vars")

	view := m.View()
	for _, want := range []string{"pyrs REPL", "dynamic scoping", "x = [1, 2]", "Variables"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
