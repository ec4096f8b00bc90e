package cli

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pyscan/pkg/analyze"
)

func testFreqs() []analyze.Frequency {
	return []analyze.Frequency{
		{Name: "pandas", Count: 12},
		{Name: "numpy", Count: 8},
		{Name: "os", Count: 5},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExcludeModelPreselection(t *testing.T) {
	m := NewExcludeModel(testFreqs(), []string{"os"})
	if !reflect.DeepEqual(m.Selected(), []string{"os"}) {
		t.Errorf("Selected() = %v, want [os]", m.Selected())
	}
}

func TestExcludeModelToggle(t *testing.T) {
	m := NewExcludeModel(testFreqs(), nil)

	next, _ := m.Update(keyMsg(" "))
	m = next.(ExcludeModel)
	if !reflect.DeepEqual(m.Selected(), []string{"pandas"}) {
		t.Errorf("Selected() = %v, want [pandas]", m.Selected())
	}

	// Toggling again deselects
	next, _ = m.Update(keyMsg(" "))
	m = next.(ExcludeModel)
	if len(m.Selected()) != 0 {
		t.Errorf("Selected() = %v, want empty", m.Selected())
	}
}

func TestExcludeModelNavigation(t *testing.T) {
	m := NewExcludeModel(testFreqs(), nil)

	next, _ := m.Update(keyMsg("j"))
	m = next.(ExcludeModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg(" "))
	m = next.(ExcludeModel)
	if !reflect.DeepEqual(m.Selected(), []string{"numpy"}) {
		t.Errorf("Selected() = %v, want [numpy]", m.Selected())
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(ExcludeModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestExcludeModelCursorBounds(t *testing.T) {
	m := NewExcludeModel(testFreqs(), nil)

	next, _ := m.Update(keyMsg("k"))
	m = next.(ExcludeModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 at top", m.Cursor)
	}

	for i := 0; i < 10; i++ {
		next, _ = m.Update(keyMsg("j"))
		m = next.(ExcludeModel)
	}
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 at bottom", m.Cursor)
	}
}

func TestExcludeModelAbort(t *testing.T) {
	m := NewExcludeModel(testFreqs(), nil)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(ExcludeModel)
	if !m.Aborted {
		t.Error("model should be aborted after q")
	}
	if cmd == nil {
		t.Error("q should produce a quit command")
	}
}

func TestExcludeModelView(t *testing.T) {
	m := NewExcludeModel(testFreqs(), []string{"numpy"})
	view := m.View()

	for _, name := range []string{"pandas", "numpy", "os"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing package %q", name)
		}
	}
	if !strings.Contains(view, "[x]") {
		t.Error("view missing excluded marker")
	}
}
