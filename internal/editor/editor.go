// Package editor hosts the request body editor: a textarea with
// language-scoped completion and hover providers attached through a
// registry, the way desktop editors wire extensions in.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	suggestDisplayLimit = 6
	suggestBoxWidth     = 60
)

// Styles carries the few lipgloss styles the editor chrome needs; the
// theme package owns the palette.
type Styles struct {
	HintBox      lipgloss.Style
	HintItem     lipgloss.Style
	HintSelected lipgloss.Style
	HintDetail   lipgloss.Style
	InfoBar      lipgloss.Style
}

type Config struct {
	LanguageID  string
	Registry    *Registry
	Styles      Styles
	Placeholder string
	Width       int
	Height      int
}

// Editor owns the textarea plus the suggestion popup and hover state
// fed by the registry. All queries run synchronously inside Update.
type Editor struct {
	Area       textarea.Model
	registry   *Registry
	languageID string
	styles     Styles
	suggest    suggestState
	hover      Hover
	hoverOK    bool
	width      int
}

func New(cfg Config) Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Placeholder = cfg.Placeholder
	ta.CharLimit = 0
	if cfg.Width > 0 {
		ta.SetWidth(cfg.Width)
	}
	if cfg.Height > 0 {
		ta.SetHeight(cfg.Height)
	}
	return Editor{
		Area:       ta,
		registry:   cfg.Registry,
		languageID: cfg.LanguageID,
		styles:     cfg.Styles,
		width:      cfg.Width,
	}
}

func (e Editor) LanguageID() string { return e.languageID }

func (e *Editor) Focus() { e.Area.Focus() }

func (e *Editor) Blur() {
	e.Area.Blur()
	e.suggest.deactivate()
	e.hoverOK = false
}

func (e Editor) Focused() bool { return e.Area.Focused() }

func (e Editor) Value() string { return e.Area.Value() }

func (e *Editor) SetValue(text string) {
	e.Area.SetValue(text)
	e.refresh()
}

func (e *Editor) SetSize(width, height int) {
	e.width = width
	e.Area.SetWidth(width)
	e.Area.SetHeight(height)
}

// SuggestionsVisible reports whether the popup would render.
func (e Editor) SuggestionsVisible() bool { return e.suggest.active }

// HoverContents exposes the tooltip for the caret position, rendered
// by the host in its info bar.
func (e Editor) HoverContents() (string, bool) {
	if !e.hoverOK {
		return "", false
	}
	return e.hover.Contents, true
}

func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && e.Area.Focused() && e.suggest.active {
		switch key.String() {
		case "esc":
			e.suggest.deactivate()
			return e, nil
		case "up", "ctrl+p":
			e.suggest.move(-1)
			return e, nil
		case "down", "ctrl+n":
			e.suggest.move(1)
			return e, nil
		case "tab", "enter":
			e.acceptSuggestion()
			return e, nil
		}
	}

	var cmd tea.Cmd
	e.Area, cmd = e.Area.Update(msg)
	if e.Area.Focused() {
		e.refresh()
	}
	return e, cmd
}

// refresh re-queries the registry for the caret position. Providers
// are synchronous and unthrottled; every keystroke sees fresh results.
func (e *Editor) refresh() {
	if e.registry == nil {
		e.suggest.deactivate()
		e.hoverOK = false
		return
	}
	line, pos := e.caret()
	items := e.registry.Complete(e.languageID, line, pos)
	anchor := 0
	if len(items) > 0 {
		anchor = items[0].Range.Start.Column
	}
	e.suggest.update(anchor, items)

	e.hover, e.hoverOK = e.registry.Hover(e.languageID, line, pos)
}

// caret reports the logical line under the cursor and its editor
// position. LineInfo speaks in soft-wrap segments, so the logical
// column is the segment start plus the offset inside it.
func (e Editor) caret() (string, Position) {
	row := e.Area.Line()
	lines := strings.Split(e.Area.Value(), "\n")
	line := ""
	if row >= 0 && row < len(lines) {
		line = lines[row]
	}
	info := e.Area.LineInfo()
	return line, Position{Line: row + 1, Column: info.StartColumn + info.ColumnOffset + 1}
}

func (e *Editor) acceptSuggestion() {
	item, ok := e.suggest.current()
	e.suggest.deactivate()
	if !ok {
		return
	}
	e.ApplyCompletion(item)
	e.refresh()
}

// ApplyCompletion splices an item's InsertText over its Range and
// parks the caret right after the inserted text.
func (e *Editor) ApplyCompletion(item CompletionItem) {
	row := item.Range.Start.Line - 1
	lines := strings.Split(e.Area.Value(), "\n")
	if row < 0 || row >= len(lines) {
		return
	}
	runes := []rune(lines[row])
	start := clamp(item.Range.Start.Column-1, 0, len(runes))
	end := clamp(item.Range.End.Column-1, start, len(runes))

	lines[row] = string(runes[:start]) + item.InsertText + string(runes[end:])
	e.Area.SetValue(strings.Join(lines, "\n"))
	e.moveCursorTo(row, start+len([]rune(item.InsertText)))
}

func (e *Editor) moveCursorTo(row, col int) {
	for e.Area.Line() > row {
		before := e.Area.Line()
		e.Area.CursorUp()
		if e.Area.Line() == before {
			break
		}
	}
	for e.Area.Line() < row {
		before := e.Area.Line()
		e.Area.CursorDown()
		if e.Area.Line() == before {
			break
		}
	}
	e.Area.SetCursor(col)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (e Editor) View() string {
	view := e.Area.View()
	items, selected, ok := e.suggest.display(suggestDisplayLimit)
	if !ok {
		return view
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, e.renderSuggestions(items, selected))
}

func (e Editor) renderSuggestions(items []CompletionItem, selected int) string {
	width := e.width - 2
	if width <= 0 || width > suggestBoxWidth {
		width = suggestBoxWidth
	}
	rows := make([]string, 0, len(items))
	for i, item := range items {
		labelStyle := e.styles.HintItem
		if i == selected {
			labelStyle = e.styles.HintSelected
		}
		row := labelStyle.Render(item.Label)
		if item.Detail != "" {
			row = lipgloss.JoinHorizontal(
				lipgloss.Top,
				row,
				e.styles.HintDetail.Render("  "+item.Detail),
			)
		}
		rows = append(rows, ansi.Truncate(row, width, "…"))
	}
	return e.styles.HintBox.Render(strings.Join(rows, "\n"))
}

type suggestState struct {
	active       bool
	anchorColumn int
	selection    int
	items        []CompletionItem
}

func (s *suggestState) deactivate() {
	s.active = false
	s.items = nil
	s.selection = 0
	s.anchorColumn = 0
}

// update replaces the item list, keeping the selection when the popup
// stays anchored to the same token.
func (s *suggestState) update(anchor int, items []CompletionItem) {
	if len(items) == 0 {
		s.deactivate()
		return
	}
	if !s.active || s.anchorColumn != anchor || s.selection >= len(items) {
		s.selection = 0
	}
	s.active = true
	s.anchorColumn = anchor
	s.items = items
}

func (s *suggestState) move(delta int) {
	if !s.active || len(s.items) == 0 {
		return
	}
	count := len(s.items)
	idx := (s.selection + delta) % count
	if idx < 0 {
		idx += count
	}
	s.selection = idx
}

func (s suggestState) current() (CompletionItem, bool) {
	if !s.active || s.selection >= len(s.items) {
		return CompletionItem{}, false
	}
	return s.items[s.selection], true
}

// display windows the list around the selection like a scrolling menu.
func (s suggestState) display(limit int) ([]CompletionItem, int, bool) {
	if !s.active || len(s.items) == 0 || limit <= 0 {
		return nil, 0, false
	}
	if s.selection >= len(s.items) {
		return nil, 0, false
	}
	start := s.selection - limit/2
	if start < 0 {
		start = 0
	}
	maxStart := len(s.items) - limit
	if maxStart < 0 {
		maxStart = 0
	}
	if start > maxStart {
		start = maxStart
	}
	end := start + limit
	if end > len(s.items) {
		end = len(s.items)
	}
	window := make([]CompletionItem, end-start)
	copy(window, s.items[start:end])
	return window, s.selection - start, true
}
