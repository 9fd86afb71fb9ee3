package editor

import (
	"bytes"

	"github.com/lixenwraith/ked/terminal"
)

// searchState carries incremental-search progress across prompt keystrokes
type searchState struct {
	lastMatch int // Row of the previous match, -1 when none
	direction int // 1 forward, -1 backward
}

// find runs an incremental search prompt
// Cursor and scroll are restored verbatim when the prompt is cancelled;
// committing with Enter leaves the cursor on the match
func (e *Editor) find() error {
	savedCx, savedCy := e.cx, e.cy
	savedColOff, savedRowOff := e.colOff, e.rowOff

	st := &searchState{lastMatch: -1, direction: 1}
	_, ok, err := e.prompt("Search: ", func(query []byte, ev terminal.Event) {
		e.searchStep(st, query, ev)
	})
	if err != nil {
		return err
	}

	if !ok {
		e.cx, e.cy = savedCx, savedCy
		e.colOff, e.rowOff = savedColOff, savedRowOff
	}
	return nil
}

// searchStep advances the search after one prompt keystroke
// Arrow keys resume from the last match in the chosen direction; any edit
// to the query restarts from the top. Matching is done on the render form
// so tabs are searched as the spaces the user sees
func (e *Editor) searchStep(st *searchState, query []byte, ev terminal.Event) {
	switch ev.Key {
	case terminal.KeyEnter, terminal.KeyEscape:
		st.lastMatch = -1
		st.direction = 1
		return
	case terminal.KeyRight, terminal.KeyDown:
		st.direction = 1
	case terminal.KeyLeft, terminal.KeyUp:
		st.direction = -1
	default:
		st.lastMatch = -1
		st.direction = 1
	}

	if st.lastMatch == -1 {
		st.direction = 1
	}

	// Wrap past both ends, probing each row at most once
	current := st.lastMatch
	for i := 0; i < e.buf.NumRows(); i++ {
		current += st.direction
		if current == -1 {
			current = e.buf.NumRows() - 1
		} else if current == e.buf.NumRows() {
			current = 0
		}

		row := e.buf.Row(current)
		idx := bytes.Index(row.Render, query)
		if idx < 0 {
			continue
		}

		st.lastMatch = current
		e.cy = current
		e.cx = row.RxToCx(idx)
		// Snap the viewport so the next scroll lands the match at the top
		e.rowOff = e.buf.NumRows()
		break
	}
}
