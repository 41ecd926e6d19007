package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/restbench/internal/bindings"
	"github.com/unkn0wn-root/restbench/internal/errdef"
	"github.com/unkn0wn-root/restbench/internal/ui/varfield"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.frameWidth = typed.Width
		m.frameHeight = typed.Height
		m.width = maxInt(typed.Width-2, 0)
		m.height = maxInt(typed.Height-2, 0)
		m.ready = true
		m.applyLayout()
		return m, nil

	case statusMsg:
		m.setStatusMessage(typed)
		return m, nil

	case varfield.CopiedMsg:
		m.setStatusMessage(statusMsg{text: "Copied variable " + typed.What, level: statusSuccess})
		return m, nil

	case varfield.CopyFailedMsg:
		m.setStatusMessage(statusMsg{text: errdef.Message(typed.Err), level: statusError})
		return m, nil

	case varfield.ViewDefinitionMsg:
		m.openDefinitionModal(typed)
		return m, nil

	case varfield.EditVariableMsg:
		m.handleEditVariable(typed)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(typed)

	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		switch msg.String() {
		case "esc", "enter", "q":
			m.modal = nil
		}
		return m, nil
	}

	// An open context menu owns the keyboard until it closes.
	if field := m.fieldFor(m.focus); field != nil && field.MenuOpen() {
		var cmd tea.Cmd
		*field, cmd = field.Update(msg)
		return m, cmd
	}

	if msg.String() == "esc" {
		if m.focus == focusBody && m.body.SuggestionsVisible() {
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
		if m.compare != nil {
			m.compare = nil
			m.refreshPreview()
			return m, nil
		}
	}

	key := canonicalShortcutKey(msg)

	if m.pendingChord != "" {
		prefix := m.pendingChord
		m.pendingChord = ""
		if binding, ok := m.bindingsMap.ResolveChord(prefix, key); ok {
			cmd, _ := m.runShortcut(binding.Action)
			return m, cmd
		}
		m.setStatusMessage(statusMsg{text: fmt.Sprintf("No binding for %s %s", prefix, key), level: statusWarn})
		return m, nil
	}

	if binding, ok := m.bindingsMap.MatchSingle(key); ok {
		if cmd, handled := m.runShortcut(binding.Action); handled {
			return m, cmd
		}
	} else if key != "" && m.bindingsMap.HasChordPrefix(key) {
		m.pendingChord = key
		m.setStatusMessage(statusMsg{text: key + " ...", level: statusInfo})
		return m, nil
	}

	switch msg.String() {
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	return m.routeKeyToFocused(msg)
}

func canonicalShortcutKey(msg tea.KeyMsg) string {
	key := msg.String()
	if key == "" {
		return ""
	}
	return bindings.NormalizeKeyString(key)
}

func (m *Model) runShortcut(action bindings.ActionID) (tea.Cmd, bool) {
	switch action {
	case bindings.ActionQuitApp:
		m.persistFields()
		return tea.Quit, true

	case bindings.ActionCycleFocusNext:
		// Tab accepts the highlighted suggestion while the popup is up.
		if m.focus == focusBody && m.body.SuggestionsVisible() {
			return nil, false
		}
		m.cycleFocus(true)
		return nil, true

	case bindings.ActionCycleFocusPrev:
		if m.focus == focusBody && m.body.SuggestionsVisible() {
			return nil, false
		}
		m.cycleFocus(false)
		return nil, true

	case bindings.ActionCycleEnvironment:
		m.cycleEnvironment()
		return nil, true

	case bindings.ActionCycleCollectionEnv:
		m.cycleCollectionEnvironment()
		return nil, true

	case bindings.ActionToggleCompare:
		m.toggleCompare()
		return nil, true

	case bindings.ActionCopyResolved:
		return m.copyResolved(), true

	case bindings.ActionNextRequest:
		m.switchRequest(1)
		return nil, true

	case bindings.ActionPrevRequest:
		m.switchRequest(-1)
		return nil, true
	}
	return nil, false
}

func (m Model) routeKeyToFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusBody {
		m.body, cmd = m.body.Update(msg)
	} else if field := m.fieldFor(m.focus); field != nil {
		*field, cmd = field.Update(msg)
	}
	if m.compare == nil {
		m.refreshPreview()
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.preview.LineUp(wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.preview.LineDown(wheelStep)
		return m, nil
	}

	if msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	if m.modal != nil {
		m.modal = nil
		return m, nil
	}
	if field := m.fieldFor(m.focus); field != nil && field.MenuOpen() {
		field.CloseMenu()
		return m, nil
	}

	if msg.Button == tea.MouseButtonLeft && msg.Y == rowInfo {
		m.cycleEnvironment()
		return m, nil
	}

	target, ok := m.fieldAtRow(msg.Y)
	if !ok || !m.insideFormPane(msg.X) {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		m.setFocus(target)
		if field := m.fieldFor(target); field != nil {
			if x := msg.X - fieldContentX; x >= 0 {
				field.HandleClick(x, time.Now())
			}
		}
	case tea.MouseButtonRight:
		if field := m.fieldFor(target); field != nil {
			m.setFocus(target)
			if x := msg.X - fieldContentX; x >= 0 {
				field.HandleRightClick(x)
			}
		}
	}
	return m, nil
}
