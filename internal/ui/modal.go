package ui

import (
	"fmt"
	"strings"

	"github.com/unkn0wn-root/restbench/internal/ui/varfield"
	"github.com/unkn0wn-root/restbench/internal/vars"
	"github.com/unkn0wn-root/restbench/internal/workspace"
)

// definitionModal shows where a variable comes from and what it holds
// right now. Opened from a varfield context menu.
type definitionModal struct {
	token       string
	name        string
	scope       vars.Scope
	value       string
	found       bool
	owner       string
	description string
}

func (m *Model) openDefinitionModal(msg varfield.ViewDefinitionMsg) {
	modal := &definitionModal{
		token: msg.Token,
		name:  msg.Name,
		scope: msg.Scope,
		value: msg.Value,
		found: msg.Found,
	}
	if msg.Scope == vars.ScopeDynamic {
		if dyn, ok := vars.LookupDynamic(msg.Name); ok {
			modal.owner = "built-in"
			modal.description = dyn.Description
		}
	} else if owner, ok := m.lookupOwner(msg.Name, msg.Scope); ok {
		modal.owner = ownerLabel(owner)
	}
	m.modal = modal
}

// handleEditVariable is the navigation handoff: the workbench names
// the owning store in the status bar rather than editing it inline.
func (m *Model) handleEditVariable(msg varfield.EditVariableMsg) {
	owner, ok := m.lookupOwner(msg.Name, msg.Scope)
	if !ok {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("Variable %q is not defined in the active stores", msg.Name),
			level: statusWarn,
		})
		return
	}
	m.setStatusMessage(statusMsg{
		text:  fmt.Sprintf("Edit %q in %s", msg.Name, ownerLabel(owner)),
		level: statusInfo,
	})
}

func (m Model) lookupOwner(name string, scope vars.Scope) (workspace.Owner, bool) {
	switch scope {
	case vars.ScopeCollection:
		return m.ws.FindCollectionOwner(m.collectionID, name)
	case vars.ScopeGlobal:
		return m.ws.FindOwner(name)
	}
	return workspace.Owner{}, false
}

func ownerLabel(owner workspace.Owner) string {
	if owner.Kind == workspace.OwnerCollection {
		return "collection " + owner.Name
	}
	return "environment " + owner.Name
}

func (m Model) renderDefinitionModal() string {
	d := m.modal
	label := func(name string) string {
		return m.theme.ModalLabel.Render(fmt.Sprintf("%-11s", name))
	}

	rows := []string{
		m.theme.ModalTitle.Render("Variable definition"),
		"",
		label("Reference") + m.theme.ModalValue.Render(d.token),
		label("Scope") + m.theme.ModalValue.Render(d.scope.String()),
	}
	switch {
	case d.scope == vars.ScopeDynamic:
		desc := d.description
		if desc == "" {
			desc = "Unknown dynamic variable"
		}
		rows = append(rows, label("About")+m.theme.ModalValue.Render(desc))
		if d.value != "" {
			rows = append(rows, label("Sample")+m.theme.ModalValue.Render(d.value))
		}
	case !d.found:
		rows = append(rows, m.theme.Error.Render(
			fmt.Sprintf("Variable %q not found in the active environments", d.name),
		))
	case d.value == "":
		rows = append(rows, label("Value")+m.theme.Placeholder.Render("(no value set)"))
	default:
		rows = append(rows, label("Value")+m.theme.ModalValue.Render(d.value))
	}
	if d.owner != "" {
		rows = append(rows, label("Defined in")+m.theme.ModalValue.Render(d.owner))
	}
	rows = append(rows, "", m.theme.StatusBarKey.Render("esc")+" close")

	return m.theme.ModalBox.Render(strings.Join(rows, "\n"))
}
