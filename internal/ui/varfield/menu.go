package varfield

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/restbench/internal/errdef"
	"github.com/unkn0wn-root/restbench/internal/vars"
)

type MenuAction int

const (
	MenuCopyName MenuAction = iota
	MenuCopyValue
	MenuViewDefinition
	MenuEditVariable
)

// ViewDefinitionMsg asks the host to show a variable's definition.
// The lookup already ran against the field's snapshot.
type ViewDefinitionMsg struct {
	Token string
	Name  string
	Scope vars.Scope
	Value string
	Found bool
}

// EditVariableMsg asks the host to navigate to where the variable is
// defined; the host resolves the owning store.
type EditVariableMsg struct {
	Name  string
	Scope vars.Scope
}

// CopiedMsg reports a successful clipboard write for the status bar.
type CopiedMsg struct {
	What string
}

type CopyFailedMsg struct {
	Err error
}

// writeClipboard is swapped out in tests; headless environments have
// no clipboard to write to.
var writeClipboard = clipboard.WriteAll

type menuItem struct {
	action MenuAction
	title  string
}

type menuState struct {
	token     string
	items     []menuItem
	selection int
}

func newMenuState(token string) *menuState {
	items := []menuItem{
		{action: MenuCopyName, title: "Copy name"},
		{action: MenuCopyValue, title: "Copy value"},
		{action: MenuViewDefinition, title: "View definition"},
	}
	// Built-in dynamics are not editable.
	if !strings.HasPrefix(token, "$") {
		items = append(items, menuItem{action: MenuEditVariable, title: "Edit variable"})
	}
	return &menuState{token: token, items: items}
}

func (s *menuState) move(delta int) {
	count := len(s.items)
	if count == 0 {
		return
	}
	idx := (s.selection + delta) % count
	if idx < 0 {
		idx += count
	}
	s.selection = idx
}

func (m Model) updateMenu(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.menu = nil
	case "up", "ctrl+p":
		m.menu.move(-1)
	case "down", "ctrl+n", "tab":
		m.menu.move(1)
	case "enter":
		cmd := m.menuAccept()
		m.menu = nil
		return m, cmd
	}
	return m, nil
}

func (m Model) menuAccept() tea.Cmd {
	item := m.menu.items[m.menu.selection]
	token := m.menu.token
	switch item.action {
	case MenuCopyName:
		return copyCmd("name", token)
	case MenuCopyValue:
		def, _ := vars.ResolveOne(token, m.snap)
		return copyCmd("value", def.Value)
	case MenuViewDefinition:
		def, found := vars.ResolveOne(token, m.snap)
		return func() tea.Msg {
			return ViewDefinitionMsg{
				Token: token,
				Name:  def.Name,
				Scope: def.Scope,
				Value: def.Value,
				Found: found,
			}
		}
	case MenuEditVariable:
		def, _ := vars.ResolveOne(token, m.snap)
		return func() tea.Msg {
			return EditVariableMsg{Name: def.Name, Scope: def.Scope}
		}
	}
	return nil
}

func copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return CopyFailedMsg{Err: errdef.Wrap(errdef.CodeClipboard, err, "copy variable %s", what)}
		}
		return CopiedMsg{What: what}
	}
}

// MenuView renders the open context menu; the host overlays it under
// the field row.
func (m Model) MenuView() (string, bool) {
	if m.menu == nil {
		return "", false
	}
	rows := make([]string, 0, len(m.menu.items))
	for i, item := range m.menu.items {
		style := m.th.MenuItem
		if i == m.menu.selection {
			style = m.th.MenuSelected
		}
		rows = append(rows, style.Render(item.title))
	}
	return m.th.MenuBox.Render(strings.Join(rows, "\n")), true
}
