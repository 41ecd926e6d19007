package varfield

import (
	"testing"
	"time"
)

func TestRuneAtCell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s      string
		cell   int
		want   int
		wantOK bool
	}{
		{"abc", 0, 0, true},
		{"abc", 2, 2, true},
		{"abc", 3, 3, false},
		{"a漢b", 0, 0, true},
		{"a漢b", 1, 1, true},
		{"a漢b", 2, 1, true},
		{"a漢b", 3, 2, true},
		{"a漢b", 4, 3, false},
		{"éx", 1, 2, true},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := runeAtCell(tc.s, tc.cell)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("runeAtCell(%q, %d) = (%d, %v), want (%d, %v)",
				tc.s, tc.cell, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestHandleClickPlacesCaret(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	m.Focus()
	m.SetValue("GET {{host}}")

	if selected := m.HandleClick(2, time.Unix(10, 0)); selected {
		t.Fatal("single click must not select")
	}
	if got := m.Input.Position(); got != 2 {
		t.Fatalf("cursor = %d, want 2", got)
	}
}

func TestHandleClickDoubleSelectsCapsule(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	m.Focus()
	m.SetValue("GET {{host}} tail")
	at := time.Unix(20, 0)

	m.HandleClick(7, at)
	if !m.HandleClick(7, at.Add(200*time.Millisecond)) {
		t.Fatal("double click on a capsule should select the span")
	}
	start, end, ok := m.Selection()
	if !ok || start != 4 || end != 12 {
		t.Fatalf("selection = (%d, %d, %v), want (4, 12, true)", start, end, ok)
	}
	if got := m.Input.Position(); got != 12 {
		t.Fatalf("cursor = %d, want the span end", got)
	}
}

func TestHandleClickDoubleOnTextDoesNothing(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	m.Focus()
	m.SetValue("GET {{host}}")
	at := time.Unix(30, 0)

	m.HandleClick(1, at)
	if m.HandleClick(1, at.Add(100*time.Millisecond)) {
		t.Fatal("double click on plain text must not select")
	}
}

func TestHandleClickSlowSecondPressIsSingle(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	m.Focus()
	m.SetValue("GET {{host}}")
	at := time.Unix(40, 0)

	m.HandleClick(6, at)
	if m.HandleClick(6, at.Add(2*time.Second)) {
		t.Fatal("presses two seconds apart are separate clicks")
	}
}

func TestHandleClickAccountsForScroll(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 6)
	m.Focus()
	m.SetValue("0123456789{{apiKey}}")
	m.Input.CursorEnd()
	m.ensureCaretVisible()
	if m.scroll == 0 {
		t.Fatal("test setup: expected the field to scroll")
	}

	scroll := m.scroll
	m.HandleClick(2, time.Unix(50, 0))
	if got := m.Input.Position(); got != scroll+2 {
		t.Fatalf("cursor = %d, want %d (click is window-relative)", got, scroll+2)
	}
}

func TestHandleRightClickNeedsCapsule(t *testing.T) {
	t.Parallel()

	m := newField(VariantOverlay, 40)
	m.Focus()
	m.SetValue("GET {{host}}")

	if m.HandleRightClick(1) {
		t.Fatal("right click on plain text must not open a menu")
	}
	if m.HandleRightClick(30) {
		t.Fatal("right click past the text must not open a menu")
	}
	if !m.HandleRightClick(6) {
		t.Fatal("right click on a capsule should open the menu")
	}
	if !m.MenuOpen() {
		t.Fatal("menu should be open")
	}
}
