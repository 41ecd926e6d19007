package ui

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/unkn0wn-root/restbench/internal/errdef"
)

type compareState struct {
	baseline string
	against  string
}

// toggleCompare diffs the request resolved under the active global
// environment against the next one in the cycle. The preview pane
// shows the diff until toggled off or the stores change.
func (m *Model) toggleCompare() {
	if m.compare != nil {
		m.compare = nil
		m.refreshPreview()
		return
	}
	names := m.ws.EnvironmentNames()
	if len(names) < 2 {
		m.setStatusMessage(statusMsg{text: "Need a second environment to compare", level: statusWarn})
		return
	}
	baseline := m.ws.ActiveEnvironment
	against := nextName(names, baseline)
	diff := m.diffEnvironments(baseline, against)
	m.compare = &compareState{baseline: compareLabel(baseline), against: against}
	m.preview.SetContent(diff)
	m.preview.GotoTop()
}

// diffEnvironments resolves the form twice, switching the workspace to
// the right-hand environment and restoring it before returning.
func (m *Model) diffEnvironments(baseline, against string) string {
	left := m.resolveRequest(m.ws.Snapshot(m.collectionID)).text()

	restore := m.ws.ActiveEnvironment
	if err := m.ws.SetActiveEnvironment(against); err != nil {
		return errdef.Message(err)
	}
	right := m.resolveRequest(m.ws.Snapshot(m.collectionID)).text()
	m.ws.ActiveEnvironment = restore

	if left == right {
		return "Both environments produce an identical request"
	}
	unified := udiff.Unified(
		compareLabel(baseline),
		against,
		ensureTrailingNewline(left),
		ensureTrailingNewline(right),
	)
	return m.colorizeDiff(unified)
}

func compareLabel(name string) string {
	if name == "" {
		return "none"
	}
	return name
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func (m Model) colorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"),
			strings.HasPrefix(line, "+++"),
			strings.HasPrefix(line, "@@"):
			lines[i] = m.theme.DiffHeader.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = m.theme.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = m.theme.DiffRemove.Render(line)
		default:
			lines[i] = m.theme.DiffContext.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
