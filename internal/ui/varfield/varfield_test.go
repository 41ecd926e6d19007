package varfield

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/unkn0wn-root/restbench/internal/theme"
	"github.com/unkn0wn-root/restbench/internal/vars"
)

func newField(variant Variant, width int) Model {
	m := New(Config{
		Placeholder: "https://",
		Variant:     variant,
		Theme:       theme.DarkTheme(),
		Width:       width,
	})
	m.SetSnapshot(vars.Snapshot{
		Collection: map[string]string{"apiKey": "col-key"},
		Global:     map[string]string{"host": "api.example.com", "apiKey": "glob-key"},
	})
	return m
}

func TestStyleVectorPaintsCapsules(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 80)
	value := "x {{host}} {{$t}} {{gone}}"
	m.SetValue(value)

	got := m.styleVector(value)
	want := make([]styleID, 0, len(got))
	appendN := func(id styleID, n int) {
		for i := 0; i < n; i++ {
			want = append(want, id)
		}
	}
	appendN(styleText, 2)       // "x "
	appendN(styleResolved, 8)   // {{host}}
	appendN(styleText, 1)       // " "
	appendN(styleDynamic, 6)    // {{$t}}
	appendN(styleText, 1)       // " "
	appendN(styleUnresolved, 8) // {{gone}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("style vector mismatch (-want +got):\n%s", diff)
	}
}

func TestStyleVectorTrustsDollarPrefix(t *testing.T) {
	t.Parallel()

	// $whatever is not in the catalog; rendering still treats it as a
	// dynamic capsule, never as unresolved.
	m := newField(VariantOverlay, 80)
	value := "{{$whatever}}"
	m.SetValue(value)

	got := m.styleVector(value)
	for i, id := range got {
		if id != styleDynamic {
			t.Fatalf("rune %d painted %v, want dynamic", i, id)
		}
	}
}

func TestStyleVectorSelectionOverridesCapsule(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 80)
	value := "GET {{host}}"
	m.SetValue(value)
	m.selection = &span{start: 4, end: 12}

	got := m.styleVector(value)
	for i := 4; i < 12; i++ {
		if got[i] != styleSelection {
			t.Fatalf("rune %d painted %v, want selection", i, got[i])
		}
	}
	if got[0] != styleText {
		t.Fatalf("rune 0 painted %v, want text", got[0])
	}
}

func TestViewScrollKeepsCaretVisible(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 5)
	m.Focus()
	m.SetValue("0123456789")
	m.Input.CursorEnd()
	m.ensureCaretVisible()

	// Caret cell 10 forces the window to [6, 11); styles collapse to
	// plain text without a terminal.
	if got := m.View(); got != "6789 " {
		t.Fatalf("View() = %q, want %q", got, "6789 ")
	}

	m.Input.SetCursor(0)
	m.ensureCaretVisible()
	if m.scroll != 0 {
		t.Fatalf("scroll = %d after jump to start, want 0", m.scroll)
	}
}

func TestViewPlaceholderWhenEmpty(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	if got := m.View(); got != "https://" {
		t.Fatalf("View() = %q, want the placeholder", got)
	}

	m.Focus()
	if got := m.View(); got != " " {
		t.Fatalf("View() = %q, want a bare caret cell", got)
	}
}

func TestUpdateTypingReplacesSelection(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	m.Focus()
	m.SetValue("GET {{host}}")
	at := time.Unix(100, 0)
	m.HandleClick(6, at)
	if !m.HandleClick(6, at.Add(100*time.Millisecond)) {
		t.Fatal("double click on a capsule should select it")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if got := m.Value(); got != "GET x" {
		t.Fatalf("value = %q, want the selection replaced", got)
	}
	if _, _, ok := m.Selection(); ok {
		t.Fatal("selection should clear after the edit")
	}
}

func TestUpdateBackspaceDeletesSelectionOnly(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	m.Focus()
	m.SetValue("GET {{host}}")
	at := time.Unix(200, 0)
	m.HandleClick(6, at)
	m.HandleClick(6, at.Add(50*time.Millisecond))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Value(); got != "GET " {
		t.Fatalf("value = %q, want only the selected span removed", got)
	}
	if got := m.Input.Position(); got != 4 {
		t.Fatalf("cursor = %d, want 4", got)
	}
}

func TestUpdateMovementDropsSelection(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	m.Focus()
	m.SetValue("GET {{host}}")
	at := time.Unix(300, 0)
	m.HandleClick(6, at)
	m.HandleClick(6, at.Add(50*time.Millisecond))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if _, _, ok := m.Selection(); ok {
		t.Fatal("selection should clear on movement")
	}
	if got := m.Value(); got != "GET {{host}}" {
		t.Fatalf("value = %q, movement must not edit", got)
	}
}

func TestCellOffsetCountsWideRunes(t *testing.T) {
	t.Parallel()

	if got := cellOffset("a漢b", 2); got != 3 {
		t.Fatalf("cellOffset = %d, want 3", got)
	}
	if got := cellOffset("abc", 99); got != 3 {
		t.Fatalf("cellOffset past end = %d, want 3", got)
	}
}
