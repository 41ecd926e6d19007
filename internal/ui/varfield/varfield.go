// Package varfield is a single-line input whose {{...}} references are
// painted as live capsules: green when the active stores resolve them,
// red when they do not, a third tint for $-dynamics. Editing stays the
// stock textinput state machine; the capsule layer is pure View and is
// recomputed from the field text on every render.
package varfield

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/unkn0wn-root/restbench/internal/theme"
	"github.com/unkn0wn-root/restbench/internal/vars"
)

type Variant int

const (
	// VariantPlain renders the stock textinput, no capsule layer.
	VariantPlain Variant = iota
	// VariantHighlighted recolors variable tokens but keeps the flat
	// text look, for dense rows like headers.
	VariantHighlighted
	// VariantOverlay paints full capsules behind variable tokens.
	VariantOverlay
)

type styleID int

const (
	styleText styleID = iota
	styleResolved
	styleUnresolved
	styleDynamic
	styleSelection
)

type span struct {
	start int
	end   int
}

type Config struct {
	Placeholder string
	Variant     Variant
	Theme       theme.Theme
	Width       int
}

// Model wraps a textinput with capsule rendering and mouse actions.
// The snapshot decides capsule colors; the host swaps it on every
// environment change.
type Model struct {
	Input   textinput.Model
	variant Variant
	th      theme.Theme
	snap    vars.Snapshot

	width     int
	scroll    int
	selection *span
	menu      *menuState
	lastClick clickRecord
}

func New(cfg Config) Model {
	input := textinput.New()
	input.Placeholder = cfg.Placeholder
	input.CharLimit = 0
	input.Prompt = ""
	input.SetCursor(0)
	input.Blur()

	return Model{
		Input:   input,
		variant: cfg.Variant,
		th:      cfg.Theme,
		width:   cfg.Width,
	}
}

func (m *Model) SetSnapshot(snap vars.Snapshot) { m.snap = snap }

func (m Model) Snapshot() vars.Snapshot { return m.snap }

func (m *Model) SetWidth(width int) {
	m.width = width
	m.ensureCaretVisible()
}

func (m Model) Value() string { return m.Input.Value() }

func (m *Model) SetValue(value string) {
	m.Input.SetValue(value)
	m.selection = nil
	m.menu = nil
	m.ensureCaretVisible()
}

func (m *Model) Focus() {
	m.Input.Focus()
	m.ensureCaretVisible()
}

func (m *Model) Blur() {
	m.Input.Blur()
	m.selection = nil
	m.menu = nil
}

func (m Model) Focused() bool { return m.Input.Focused() }

// Selection reports the selected rune span, if any.
func (m Model) Selection() (start, end int, ok bool) {
	if m.selection == nil {
		return 0, 0, false
	}
	return m.selection.start, m.selection.end, true
}

func (m Model) MenuOpen() bool { return m.menu != nil }

// CloseMenu dismisses the context menu without running an action.
func (m *Model) CloseMenu() { m.menu = nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if m.menu != nil {
		if !isKey {
			return m, nil
		}
		return m.updateMenu(key)
	}

	if isKey && m.selection != nil && m.consumeSelectionEdit(key) {
		m.ensureCaretVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.ensureCaretVisible()
	return m, cmd
}

// consumeSelectionEdit makes a double-click selection behave like one:
// typing replaces it, backspace and delete remove it, anything else
// just drops the highlight. Returns true when the key is fully
// handled and must not reach the textinput.
func (m *Model) consumeSelectionEdit(key tea.KeyMsg) bool {
	sel := *m.selection
	m.selection = nil
	switch key.Type {
	case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete:
		runes := []rune(m.Input.Value())
		if sel.start < 0 || sel.end > len(runes) {
			return false
		}
		m.Input.SetValue(string(runes[:sel.start]) + string(runes[sel.end:]))
		m.Input.SetCursor(sel.start)
		return key.Type != tea.KeyRunes
	}
	return false
}

func (m Model) View() string {
	if m.variant == VariantPlain {
		input := m.Input
		input.Width = m.width
		return input.View()
	}

	value := m.Input.Value()
	if value == "" {
		return m.emptyView()
	}

	content := m.renderValue()
	if m.width > 0 {
		content = ansi.Cut(content, m.scroll, m.scroll+m.width)
	}
	return content
}

func (m Model) emptyView() string {
	if m.Input.Focused() {
		return m.caretStyle(m.th.FieldText).Render(" ")
	}
	text := m.Input.Placeholder
	if m.width > 0 {
		text = ansi.Truncate(text, m.width, "…")
	}
	return m.th.Placeholder.Render(text)
}

// renderValue paints the full line; View clips it to the scroll
// window afterwards. Runes sharing a style render as one chunk, the
// caret rune renders reversed.
func (m Model) renderValue() string {
	value := m.Input.Value()
	runes := []rune(value)
	ids := m.styleVector(value)

	caret := -1
	if m.Input.Focused() {
		caret = m.Input.Position()
	}

	var b strings.Builder
	for i := 0; i < len(runes); {
		j := i + 1
		if i != caret {
			for j < len(runes) && ids[j] == ids[i] && j != caret {
				j++
			}
		}
		style := m.styleFor(ids[i])
		if i == caret {
			style = m.caretStyle(style)
		}
		b.WriteString(style.Render(string(runes[i:j])))
		i = j
	}
	if caret == len(runes) {
		b.WriteString(m.caretStyle(m.th.FieldText).Render(" "))
	}
	return b.String()
}

// styleVector assigns a style to every rune of value: capsule styles
// over variable spans, selection on top. Dynamic recognition here is
// the $ prefix alone; an unknown $name still gets the dynamic tint.
func (m Model) styleVector(value string) []styleID {
	runes := utf8.RuneCountInString(value)
	ids := make([]styleID, runes)

	infos := vars.Resolve(value, m.snap).Variables
	offset := 0
	for _, seg := range vars.OverlaySegments(value, infos) {
		n := utf8.RuneCountInString(seg.Raw())
		if seg.Kind == vars.SegmentVariable {
			id := styleUnresolved
			switch {
			case strings.HasPrefix(seg.Name, "$"):
				id = styleDynamic
			case seg.Resolved:
				id = styleResolved
			}
			for i := offset; i < offset+n && i < runes; i++ {
				ids[i] = id
			}
		}
		offset += n
	}

	if m.selection != nil {
		for i := m.selection.start; i < m.selection.end && i < runes; i++ {
			if i >= 0 {
				ids[i] = styleSelection
			}
		}
	}
	return ids
}

func (m Model) styleFor(id styleID) lipgloss.Style {
	var capsule lipgloss.Style
	switch id {
	case styleResolved, styleUnresolved, styleDynamic:
		capsule = m.th.VariableStyle(id == styleResolved, id == styleDynamic)
	case styleSelection:
		return m.th.MenuSelected
	default:
		if m.Input.Focused() {
			return m.th.FieldFocused
		}
		return m.th.FieldText
	}
	if m.variant == VariantHighlighted {
		return lipgloss.NewStyle().Foreground(capsule.GetBackground())
	}
	return capsule
}

func (m Model) caretStyle(base lipgloss.Style) lipgloss.Style {
	return base.Reverse(true)
}

// ensureCaretVisible keeps the caret cell inside the scroll window.
func (m *Model) ensureCaretVisible() {
	if m.width <= 0 {
		m.scroll = 0
		return
	}
	caret := cellOffset(m.Input.Value(), m.Input.Position())
	if caret < m.scroll {
		m.scroll = caret
	}
	if caret >= m.scroll+m.width {
		m.scroll = caret - m.width + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// segmentAt finds the variable segment covering a rune offset.
func (m Model) segmentAt(runeIdx int) (vars.Segment, span, bool) {
	offset := 0
	for _, seg := range vars.Parse(m.Input.Value()) {
		n := utf8.RuneCountInString(seg.Raw())
		if runeIdx >= offset && runeIdx < offset+n {
			if seg.Kind == vars.SegmentVariable {
				return seg, span{start: offset, end: offset + n}, true
			}
			return vars.Segment{}, span{}, false
		}
		offset += n
	}
	return vars.Segment{}, span{}, false
}

// cellOffset is the terminal-cell width of the first runeIdx runes.
func cellOffset(s string, runeIdx int) int {
	runes := []rune(s)
	if runeIdx < 0 {
		runeIdx = 0
	}
	if runeIdx > len(runes) {
		runeIdx = len(runes)
	}
	return uniseg.StringWidth(string(runes[:runeIdx]))
}
