package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/restbench/internal/errdef"
)

// writeClipboard is swapped in tests; headless environments have no
// clipboard.
var writeClipboard = clipboard.WriteAll

func (m *Model) cycleEnvironment() {
	names := m.ws.EnvironmentNames()
	if len(names) == 0 {
		m.setStatusMessage(statusMsg{text: "No environments configured", level: statusWarn})
		return
	}
	next := nextName(names, m.ws.ActiveEnvironment)
	if err := m.ws.SetActiveEnvironment(next); err != nil {
		m.setStatusMessage(statusMsg{text: errdef.Message(err), level: statusError})
		return
	}
	m.applySnapshot()
	m.setStatusMessage(statusMsg{text: "Environment: " + next, level: statusInfo})
}

func nextName(names []string, current string) string {
	for i, name := range names {
		if strings.EqualFold(name, current) {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// cycleCollectionEnvironment walks base table, then each
// sub-environment, then back to the base table.
func (m *Model) cycleCollectionEnvironment() {
	col := m.ws.CollectionByID(m.collectionID)
	if col == nil || len(col.Environments) == 0 {
		m.setStatusMessage(statusMsg{text: "Collection has no environments", level: statusWarn})
		return
	}
	names := col.EnvironmentNames()
	next := ""
	if col.ActiveEnvironment == "" {
		next = names[0]
	} else {
		for i, name := range names {
			if strings.EqualFold(name, col.ActiveEnvironment) && i+1 < len(names) {
				next = names[i+1]
				break
			}
		}
	}
	if err := m.ws.SetCollectionEnvironment(m.collectionID, next); err != nil {
		m.setStatusMessage(statusMsg{text: errdef.Message(err), level: statusError})
		return
	}
	m.applySnapshot()
	if next == "" {
		m.setStatusMessage(statusMsg{text: "Collection environment off", level: statusInfo})
	} else {
		m.setStatusMessage(statusMsg{text: "Collection environment: " + next, level: statusInfo})
	}
}

func (m *Model) switchRequest(delta int) {
	col := m.ws.CollectionByID(m.collectionID)
	if col == nil || len(col.Requests) == 0 {
		m.setStatusMessage(statusMsg{text: "Collection has no requests", level: statusWarn})
		return
	}
	idx := 0
	if m.request != nil {
		for i, req := range col.Requests {
			if req.ID == m.request.ID {
				idx = i
				break
			}
		}
	}
	next := col.Requests[(idx+delta+len(col.Requests))%len(col.Requests)]
	if m.request != nil && next.ID == m.request.ID {
		return
	}
	m.persistFields()
	m.loadRequest(next)
	m.compare = nil
	m.refreshPreview()

	name := next.Name
	if name == "" {
		name = next.ID
	}
	m.setStatusMessage(statusMsg{text: "Request: " + name, level: statusInfo})
}

func (m *Model) copyResolved() tea.Cmd {
	text := m.resolveRequest(m.ws.Snapshot(m.collectionID)).text()
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			wrapped := errdef.Wrap(errdef.CodeClipboard, err, "copy resolved request")
			return statusMsg{text: errdef.Message(wrapped), level: statusError}
		}
		return statusMsg{text: "Resolved request copied", level: statusSuccess}
	}
}
