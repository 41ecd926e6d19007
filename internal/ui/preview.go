package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/restbench/internal/vars"
)

// renderedRequest is the form resolved under one snapshot: head holds
// the request line plus headers, body the entity text, unresolved the
// token of every reference that produced no value, duplicates
// included.
type renderedRequest struct {
	head       string
	body       string
	unresolved []string
}

func (r renderedRequest) text() string {
	if r.body == "" {
		return r.head
	}
	return r.head + "\n\n" + r.body
}

func (m Model) resolveRequest(snap vars.Snapshot) renderedRequest {
	var out renderedRequest
	resolve := func(text string) string {
		res := vars.Resolve(text, snap)
		out.unresolved = append(out.unresolved, res.Unresolved...)
		return res.Resolved
	}

	method := strings.TrimSpace(resolve(m.method.Value()))
	if method == "" {
		method = "GET"
	}
	url := strings.TrimSpace(resolve(m.url.Value()))

	lines := []string{strings.TrimSpace(method + " " + url)}
	if header := strings.TrimSpace(resolve(m.header.Value())); header != "" {
		lines = append(lines, header)
	}
	if auth := strings.TrimSpace(resolve(m.auth.Value())); auth != "" {
		lines = append(lines, "Authorization: "+auth)
	}
	out.head = strings.Join(lines, "\n")
	out.body = strings.TrimSpace(resolve(m.body.Value()))
	return out
}

func (m *Model) refreshPreview() {
	r := m.resolveRequest(m.ws.Snapshot(m.collectionID))
	m.unresolved = r.unresolved

	display := m.styleRequestHead(r.head)
	if r.body != "" {
		body := r.body
		if looksLikeJSON(body) {
			body = highlightJSON(body)
		}
		display += "\n\n" + body
	}
	m.preview.SetContent(display)
}

// styleRequestHead colors the method verb; the rest of the head stays
// plain so copied text diffs cleanly against the preview.
func (m Model) styleRequestHead(head string) string {
	lines := strings.Split(head, "\n")
	method, rest, found := strings.Cut(lines[0], " ")
	styled := lipgloss.NewStyle().
		Foreground(m.theme.MethodColor(method)).
		Bold(true).
		Render(method)
	if found {
		styled += " " + m.theme.PreviewText.Render(rest)
	}
	lines[0] = styled
	return strings.Join(lines, "\n")
}

func looksLikeJSON(body string) bool {
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

func highlightJSON(input string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, input, "json", "terminal256", "monokai"); err != nil {
		return input
	}
	return buf.String()
}
