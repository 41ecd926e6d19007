// Package ui hosts the request workbench: a form of variable-aware
// fields on the left, the fully resolved request on the right, both
// recomputed from the active environment stores on every change.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/unkn0wn-root/restbench/internal/bindings"
	"github.com/unkn0wn-root/restbench/internal/editor"
	"github.com/unkn0wn-root/restbench/internal/theme"
	"github.com/unkn0wn-root/restbench/internal/ui/varfield"
	"github.com/unkn0wn-root/restbench/internal/workspace"
)

// requestLanguage is the language id the variable providers attach to.
const requestLanguage = "restbench-request"

type Config struct {
	Workspace    *workspace.Workspace
	Theme        theme.Theme
	CollectionID string
	RequestID    string
	Bindings     *bindings.Map
	// FormSplit is the request form's share of the width, already
	// clamped by config.NormaliseLayoutSettings.
	FormSplit float64
	Version   string
}

type Model struct {
	cfg   Config
	ws    *workspace.Workspace
	theme theme.Theme

	collectionID string
	request      *workspace.Request

	registry *editor.Registry
	session  *editor.Session

	focus  fieldFocus
	method varfield.Model
	url    varfield.Model
	header varfield.Model
	auth   varfield.Model
	body   editor.Editor

	preview    viewport.Model
	unresolved []string
	compare    *compareState
	modal      *definitionModal

	statusMessage statusMsg
	bindingsMap   *bindings.Map
	pendingChord  string

	width       int
	height      int
	frameWidth  int
	frameHeight int
	formWidth   int
	formSplit   float64
	ready       bool
}

func New(cfg Config) Model {
	th := cfg.Theme
	registry := editor.NewRegistry()

	m := Model{
		cfg:         cfg,
		ws:          cfg.Workspace,
		theme:       th,
		registry:    registry,
		bindingsMap: cfg.Bindings,
		formSplit:   cfg.FormSplit,
		focus:       focusURL,
	}
	if m.bindingsMap == nil {
		m.bindingsMap = bindings.DefaultMap()
	}
	if m.formSplit <= 0 {
		m.formSplit = 0.5
	}

	m.method = varfield.New(varfield.Config{
		Placeholder: "GET",
		Variant:     varfield.VariantOverlay,
		Theme:       th,
	})
	m.url = varfield.New(varfield.Config{
		Placeholder: "https://{{host}}/path",
		Variant:     varfield.VariantOverlay,
		Theme:       th,
	})
	m.header = varfield.New(varfield.Config{
		Placeholder: "Name: value",
		Variant:     varfield.VariantHighlighted,
		Theme:       th,
	})
	m.auth = varfield.New(varfield.Config{
		Placeholder: "Bearer {{token}}",
		Variant:     varfield.VariantOverlay,
		Theme:       th,
	})
	m.body = editor.New(editor.Config{
		LanguageID: requestLanguage,
		Registry:   registry,
		Styles: editor.Styles{
			HintBox:      th.HintBox,
			HintItem:     th.HintItem,
			HintSelected: th.HintSelected,
			HintDetail:   th.HintDetail,
			InfoBar:      th.InfoBar,
		},
	})
	m.preview = viewport.New(0, 0)

	request, collectionID := pickRequest(cfg.Workspace, cfg.CollectionID, cfg.RequestID)
	m.collectionID = collectionID
	m.loadRequest(request)
	m.applySnapshot()
	m.url.Focus()
	return m
}

// pickRequest resolves the startup request: an explicit id wins, then
// the first request of the named collection, then the first request
// anywhere.
func pickRequest(ws *workspace.Workspace, collectionID, requestID string) (*workspace.Request, string) {
	if requestID != "" {
		if req, col := ws.RequestByID(requestID); req != nil {
			return req, col.ID
		}
	}
	if col := ws.CollectionByID(collectionID); col != nil {
		if len(col.Requests) > 0 {
			return col.Requests[0], col.ID
		}
		return nil, col.ID
	}
	for _, col := range ws.Collections {
		if len(col.Requests) > 0 {
			return col.Requests[0], col.ID
		}
	}
	if len(ws.Collections) > 0 {
		return nil, ws.Collections[0].ID
	}
	return nil, ""
}

func (m *Model) loadRequest(req *workspace.Request) {
	m.request = req
	if req == nil {
		m.method.SetValue("")
		m.url.SetValue("")
		m.header.SetValue("")
		m.auth.SetValue("")
		m.body.SetValue("")
		return
	}
	m.method.SetValue(req.Method)
	m.url.SetValue(req.URL)
	m.header.SetValue(headerLine(req.Headers))
	m.auth.SetValue(req.Auth)
	m.body.SetValue(req.Body)
}

// persistFields writes the edited form back into the request so that
// switching requests or quitting never drops keystrokes.
func (m *Model) persistFields() {
	if m.request == nil {
		return
	}
	m.request.Method = m.method.Value()
	m.request.URL = m.url.Value()
	m.request.Auth = m.auth.Value()
	m.request.Body = m.body.Value()

	if h, ok := parseHeaderLine(m.header.Value()); ok {
		if len(m.request.Headers) == 0 {
			m.request.Headers = []workspace.Header{h}
		} else {
			m.request.Headers[0] = h
		}
	} else if len(m.request.Headers) > 0 {
		m.request.Headers = m.request.Headers[1:]
	}
}

// headerLine renders the request's first header for the form row; the
// workbench edits one header inline, the rest ride along untouched.
func headerLine(headers []workspace.Header) string {
	if len(headers) == 0 {
		return ""
	}
	h := headers[0]
	if h.Value == "" {
		return h.Name
	}
	return h.Name + ": " + h.Value
}

func parseHeaderLine(line string) (workspace.Header, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return workspace.Header{}, false
	}
	name, value, found := strings.Cut(line, ":")
	if !found {
		return workspace.Header{Name: strings.TrimSpace(name)}, true
	}
	return workspace.Header{
		Name:  strings.TrimSpace(name),
		Value: strings.TrimSpace(value),
	}, true
}

// applySnapshot re-feeds every field and reattaches the editor
// providers after a store change. Skipping the dispose would leave the
// previous providers answering alongside the fresh ones.
func (m *Model) applySnapshot() {
	snap := m.ws.Snapshot(m.collectionID)
	m.method.SetSnapshot(snap)
	m.url.SetSnapshot(snap)
	m.header.SetSnapshot(snap)
	m.auth.SetSnapshot(snap)

	m.session.Dispose()
	m.session = editor.Attach(m.registry, requestLanguage, m.ws.Definitions(m.collectionID), snap)

	m.compare = nil
	m.refreshPreview()
}

func (m *Model) setStatusMessage(msg statusMsg) {
	m.statusMessage = msg
}
