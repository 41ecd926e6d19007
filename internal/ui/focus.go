package ui

import "github.com/unkn0wn-root/restbench/internal/ui/varfield"

// fieldFocus walks the request form top to bottom. The body editor is
// last so tab order matches the visual order.
type fieldFocus int

const (
	focusMethod fieldFocus = iota
	focusURL
	focusHeader
	focusAuth
	focusBody
)

const fieldCount = 5

func (m *Model) cycleFocus(forward bool) {
	next := int(m.focus)
	if forward {
		next = (next + 1) % fieldCount
	} else {
		next = (next + fieldCount - 1) % fieldCount
	}
	m.setFocus(fieldFocus(next))
}

func (m *Model) setFocus(target fieldFocus) {
	if m.focus == target {
		return
	}
	m.blurAll()
	m.focus = target
	if target == focusBody {
		m.body.Focus()
		return
	}
	m.fieldFor(target).Focus()
}

func (m *Model) blurAll() {
	m.method.Blur()
	m.url.Blur()
	m.header.Blur()
	m.auth.Blur()
	m.body.Blur()
}

// fieldFor maps a form row to its varfield; nil for the body editor.
func (m *Model) fieldFor(target fieldFocus) *varfield.Model {
	switch target {
	case focusMethod:
		return &m.method
	case focusURL:
		return &m.url
	case focusHeader:
		return &m.header
	case focusAuth:
		return &m.auth
	}
	return nil
}
