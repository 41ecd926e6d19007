package ui

// The workbench renders a fixed grid: the app frame border, one info
// bar, the form and preview panes side by side, one status bar. Mouse
// routing and rendering share these coordinates; keep them together.
const (
	labelWidth = 9

	rowInfo    = 1
	rowTitle   = 3
	rowMethod  = 4
	rowURL     = 5
	rowHeader  = 6
	rowAuth    = 7
	rowBodyTop = 8

	// frame border + pane border + field label
	fieldContentX = 2 + labelWidth

	wheelStep = 3
)

func (m *Model) applyLayout() {
	formW := int(float64(m.width) * m.formSplit)
	if formW > m.width {
		formW = m.width
	}
	m.formWidth = formW

	inner := maxInt(formW-2, 0)
	fieldW := maxInt(inner-labelWidth, 1)
	m.method.SetWidth(fieldW)
	m.url.SetWidth(fieldW)
	m.header.SetWidth(fieldW)
	m.auth.SetWidth(fieldW)

	m.body.SetSize(inner, m.bodyHeight())

	previewW := maxInt(m.width-formW, 0)
	m.preview.Width = maxInt(previewW-2, 0)
	m.preview.Height = maxInt(m.height-5, 0)
}

func (m Model) bodyHeight() int {
	return maxInt(m.height-9, 1)
}

// fieldAtRow maps a terminal row to the form element it renders. Rows
// at or above the pane title never carry a field.
func (m Model) fieldAtRow(y int) (fieldFocus, bool) {
	if y <= rowTitle {
		return 0, false
	}
	switch y {
	case rowMethod:
		return focusMethod, true
	case rowURL:
		return focusURL, true
	case rowHeader:
		return focusHeader, true
	case rowAuth:
		return focusAuth, true
	}
	if y >= rowBodyTop && y < rowBodyTop+m.bodyHeight() {
		return focusBody, true
	}
	return 0, false
}

func (m Model) insideFormPane(x int) bool {
	return x >= 1 && x < 1+m.formWidth
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
