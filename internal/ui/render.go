package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/unkn0wn-root/restbench/internal/bindings"
)

func (m Model) View() string {
	if !m.ready {
		return m.renderWithinAppFrame("Initialising...")
	}
	if m.modal != nil {
		return m.renderWithinAppFrame(m.centerInFrame(m.renderDefinitionModal()))
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderInfoBar(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderFormPane(), m.renderPreviewPane()),
		m.renderStatusBar(),
	)
	return m.renderWithinAppFrame(body)
}

func (m Model) renderWithinAppFrame(content string) string {
	if m.width > 0 {
		content = lipgloss.Place(
			m.width,
			maxInt(m.height, lipgloss.Height(content)),
			lipgloss.Top,
			lipgloss.Left,
			content,
			lipgloss.WithWhitespaceChars(" "),
		)
	}
	return m.theme.AppFrame.Render(content)
}

func (m Model) centerInFrame(content string) string {
	return lipgloss.Place(
		maxInt(m.width, lipgloss.Width(content)),
		maxInt(m.height, lipgloss.Height(content)),
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
	)
}

// renderInfoBar shows the active stores, or the hover tooltip while the
// body editor's caret sits on a placeholder.
func (m Model) renderInfoBar() string {
	if m.focus == focusBody {
		if contents, ok := m.body.HoverContents(); ok {
			return m.clipBarLine(m.theme.InfoBar.Render(contents))
		}
	}

	parts := []string{"env: " + m.renderEnvironmentSelector()}
	if col := m.ws.CollectionByID(m.collectionID); col != nil {
		label := col.Name
		if col.ActiveEnvironment != "" {
			label += " / " + col.ActiveEnvironment
		}
		parts = append(parts, "collection: "+label)
	}
	if m.request != nil {
		parts = append(parts, "request: "+displayName(requestTitle(m.request.Name, m.request.ID)))
	}
	if m.cfg.Version != "" {
		parts = append(parts, "restbench "+m.cfg.Version)
	}
	return m.clipBarLine(m.theme.InfoBar.Render(strings.Join(parts, "  |  ")))
}

// renderEnvironmentSelector lists every global environment with the
// active one highlighted; clicking the info bar cycles through them.
func (m Model) renderEnvironmentSelector() string {
	names := m.ws.EnvironmentNames()
	if len(names) == 0 {
		return displayName(m.ws.ActiveEnvironment)
	}
	rendered := make([]string, 0, len(names))
	for _, name := range names {
		style := m.theme.SelectorItem
		if name == m.ws.ActiveEnvironment {
			style = m.theme.SelectorActive
		}
		rendered = append(rendered, style.Render(name))
	}
	return strings.Join(rendered, "")
}

func displayName(name string) string {
	if name == "" {
		return "(none)"
	}
	return name
}

func requestTitle(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func (m Model) renderFormPane() string {
	inner := maxInt(m.formWidth-2, 0)

	focused := m.focus != focusBody
	title := m.theme.PaneTitle
	if focused {
		title = m.theme.PaneTitleFocused
	}

	rows := []string{
		title.Render("Request"),
		m.renderFieldRow("method", m.method, m.focus == focusMethod),
		m.renderFieldRow("url", m.url, m.focus == focusURL),
		m.renderFieldRow("header", m.header, m.focus == focusHeader),
		m.renderFieldRow("auth", m.auth, m.focus == focusAuth),
		m.body.View(),
	}

	// An open context menu paints over the body region; field rows keep
	// their terminal coordinates so mouse routing stays valid.
	if field := m.fieldFor(m.focus); field != nil {
		if menu, open := field.MenuView(); open {
			rows[5] = lipgloss.JoinVertical(lipgloss.Left, menu, m.body.View())
		}
	}

	content := clampPane(strings.Join(rows, "\n"), inner, maxInt(m.height-4, 1))
	return m.paneStyle(focused).Width(inner).Render(content)
}

func (m Model) renderFieldRow(label string, field interface{ View() string }, focused bool) string {
	style := m.theme.FieldLabel
	if focused {
		style = m.theme.PaneTitleFocused
	}
	return style.Render(fmt.Sprintf("%-*s", labelWidth, label)) + field.View()
}

func (m Model) renderPreviewPane() string {
	inner := maxInt(m.width-m.formWidth-2, 0)

	title := "Resolved preview"
	if m.compare != nil {
		title = fmt.Sprintf("Compare: %s → %s", m.compare.baseline, m.compare.against)
	} else if n := len(m.unresolved); n > 0 {
		title = fmt.Sprintf("Resolved preview — %d unresolved", n)
	}

	titleStyle := m.theme.PaneTitle
	if m.compare == nil && len(m.unresolved) > 0 {
		titleStyle = m.theme.Error
	}

	content := clampPane(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), m.preview.View()),
		inner,
		maxInt(m.height-4, 1),
	)
	return m.paneStyle(false).Width(inner).Render(content)
}

func (m Model) paneStyle(focused bool) lipgloss.Style {
	style := m.theme.PaneBorder
	if focused {
		style = style.BorderForeground(m.theme.PaneBorderFocus)
	}
	return style
}

func (m Model) renderStatusBar() string {
	left := ""
	switch m.statusMessage.level {
	case statusError:
		left = m.theme.Error.Render(m.statusMessage.text)
	case statusWarn:
		left = m.theme.Notification.Render(m.statusMessage.text)
	case statusSuccess:
		left = m.theme.Success.Render(m.statusMessage.text)
	default:
		left = m.theme.StatusBarValue.Render(m.statusMessage.text)
	}
	if m.pendingChord != "" {
		left = m.theme.StatusBarKey.Render(m.pendingChord + " ...")
	}

	right := m.renderKeyHints()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return m.clipBarLine(m.theme.StatusBar.Render(left))
	}
	return m.theme.StatusBar.Render(left + strings.Repeat(" ", gap-2) + right)
}

func (m Model) renderKeyHints() string {
	hints := []struct {
		action bindings.ActionID
		label  string
	}{
		{bindings.ActionCycleFocusNext, "focus"},
		{bindings.ActionCycleEnvironment, "env"},
		{bindings.ActionToggleCompare, "compare"},
		{bindings.ActionCopyResolved, "copy"},
		{bindings.ActionQuitApp, "quit"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		key := m.shortcutLabel(h.action)
		if key == "" {
			continue
		}
		parts = append(parts, m.theme.StatusBarKey.Render(key)+" "+m.theme.StatusBar.Render(h.label))
	}
	return strings.Join(parts, "  ")
}

func (m Model) shortcutLabel(action bindings.ActionID) string {
	bound := m.bindingsMap.Bindings(action)
	if len(bound) == 0 {
		return ""
	}
	return strings.Join(bound[0].Steps, " ")
}

func (m Model) clipBarLine(line string) string {
	if m.width <= 0 {
		return line
	}
	return ansi.Truncate(line, m.width, "…")
}

// clampPane pads or cuts a pane body to an exact cell box so the two
// panes always line up row for row.
func clampPane(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
