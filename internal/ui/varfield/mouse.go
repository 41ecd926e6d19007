package varfield

import (
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// doubleClickWindow is how close two presses must land, in time and
// cell, to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

type clickRecord struct {
	cell int
	at   time.Time
}

// HandleClick places the caret at the clicked cell. x is relative to
// the rendered content, the host subtracts its own chrome first. A
// double click on a capsule selects the whole {{name}} span and
// reports true.
func (m *Model) HandleClick(x int, at time.Time) bool {
	cell := m.scroll + x
	target, _ := runeAtCell(m.Input.Value(), cell)
	m.Input.SetCursor(target)
	m.ensureCaretVisible()

	double := m.lastClick.cell == cell && at.Sub(m.lastClick.at) <= doubleClickWindow
	m.lastClick = clickRecord{cell: cell, at: at}
	if !double {
		m.selection = nil
		return false
	}

	_, sp, ok := m.segmentAt(target)
	if !ok {
		m.selection = nil
		return false
	}
	m.selection = &sp
	m.Input.SetCursor(sp.end)
	m.ensureCaretVisible()
	return true
}

// HandleRightClick opens the context menu when the cell sits on a
// variable capsule. Plain text offers nothing to act on.
func (m *Model) HandleRightClick(x int) bool {
	cell := m.scroll + x
	target, ok := runeAtCell(m.Input.Value(), cell)
	if !ok {
		return false
	}
	seg, _, hit := m.segmentAt(target)
	if !hit {
		return false
	}
	m.menu = newMenuState(seg.Name)
	return true
}

// runeAtCell maps a terminal cell to the rune index of the grapheme
// cluster occupying it. Wide runes cover two cells and report the
// same index for both. The boolean is false past the end of text.
func runeAtCell(s string, cell int) (int, bool) {
	if cell < 0 {
		return 0, s != ""
	}
	width := 0
	runeIdx := 0
	rest := s
	state := -1
	var cluster string
	for rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := runewidth.StringWidth(cluster)
		if w <= 0 {
			w = 1
		}
		if cell < width+w {
			return runeIdx, true
		}
		width += w
		runeIdx += utf8.RuneCountInString(cluster)
	}
	return runeIdx, false
}
