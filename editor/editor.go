// Package editor is the state machine tying terminal input to buffer
// mutation and frame output
// One Editor instance is the sole mutator of all editing state
package editor

import (
	"fmt"
	"time"

	"github.com/lixenwraith/ked/buffer"
	"github.com/lixenwraith/ked/terminal"
)

const (
	version = "0.1.0"

	// quitConfirmations is how many extra quit presses a dirty buffer demands
	quitConfirmations = 3

	// statusMessageTTL bounds how long a status message stays on screen
	statusMessageTTL = 5 * time.Second

	// barRows is the screen space reserved below the text area
	// (status bar + message bar)
	barRows = 2
)

// Console is the terminal surface the editor drives
// Satisfied by *terminal.Terminal; faked in tests
type Console interface {
	ReadKey() (terminal.Event, error)
	Write(p []byte) error
}

// Editor owns the buffer, cursor, viewport, and status line
type Editor struct {
	con Console
	buf *buffer.Buffer

	cx, cy int // Cursor in buffer coordinates (cx is a byte index)
	rx     int // cx translated to render-column space

	rowOff, colOff         int
	screenRows, screenCols int

	filename   string
	statusMsg  string
	statusTime time.Time

	quitsLeft int

	frame []byte // Reused frame composition buffer
}

// New creates an editor over a console of the given total dimensions
// Two rows are reserved for the status and message bars
func New(con Console, rows, cols int) *Editor {
	textRows := rows - barRows
	if textRows < 1 {
		textRows = 1
	}
	return &Editor{
		con:        con,
		buf:        buffer.New(),
		screenRows: textRows,
		screenCols: cols,
		quitsLeft:  quitConfirmations,
	}
}

// OpenFile loads path into the buffer and remembers it as the save target
func (e *Editor) OpenFile(path string) error {
	if err := e.buf.Load(path); err != nil {
		return err
	}
	e.filename = path
	return nil
}

// Resize updates the screen dimensions after a window size change
// The next refresh re-clamps the viewport around the cursor
func (e *Editor) Resize(rows, cols int) {
	textRows := rows - barRows
	if textRows < 1 {
		textRows = 1
	}
	e.screenRows = textRows
	e.screenCols = cols
}

// SetStatusMessage replaces the transient message shown in the bottom bar
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

// ProcessKey dispatches one decoded key
// Returns true when the user has confirmed quitting
func (e *Editor) ProcessKey(ev terminal.Event) (quit bool, err error) {
	switch ev.Key {
	case terminal.KeyCtrlQ:
		if e.buf.Dirty() && e.quitsLeft > 0 {
			e.SetStatusMessage("Unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitsLeft)
			e.quitsLeft--
			return false, nil
		}
		return true, nil

	case terminal.KeyCtrlS:
		if err := e.save(); err != nil {
			return false, err
		}

	case terminal.KeyCtrlF:
		if err := e.find(); err != nil {
			return false, err
		}

	case terminal.KeyUp, terminal.KeyDown, terminal.KeyLeft, terminal.KeyRight:
		e.moveCursor(ev.Key)

	case terminal.KeyHome:
		e.cx = 0

	case terminal.KeyEnd:
		if row := e.buf.Row(e.cy); row != nil {
			e.cx = len(row.Chars)
		}

	case terminal.KeyPageUp, terminal.KeyPageDown:
		e.movePage(ev.Key)

	case terminal.KeyEnter:
		e.insertNewline()

	case terminal.KeyBackspace:
		e.deleteChar()

	case terminal.KeyDelete:
		// Forward delete: step right, then delete backward
		e.moveCursor(terminal.KeyRight)
		e.deleteChar()

	case terminal.KeyTab:
		e.insertChar('\t')

	case terminal.KeyRune:
		e.insertChar(ev.Ch)

	case terminal.KeyEscape, terminal.KeyCtrlL:
		// Ignored; the full-frame refresh makes an explicit redraw key moot
	}

	// Any key other than quit rearms the confirmation counter
	e.quitsLeft = quitConfirmations
	return false, nil
}

// moveCursor shifts the cursor one cell, with line wrapping at row edges
func (e *Editor) moveCursor(key terminal.Key) {
	row := e.buf.Row(e.cy)

	switch key {
	case terminal.KeyLeft:
		if e.cx > 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.buf.Row(e.cy).Chars)
		}
	case terminal.KeyRight:
		if row != nil && e.cx < len(row.Chars) {
			e.cx++
		} else if row != nil {
			e.cy++
			e.cx = 0
		}
	case terminal.KeyUp:
		if e.cy > 0 {
			e.cy--
		}
	case terminal.KeyDown:
		if e.cy < e.buf.NumRows() {
			e.cy++
		}
	}

	// The destination row may be shorter than the column we came from
	rowLen := 0
	if row := e.buf.Row(e.cy); row != nil {
		rowLen = len(row.Chars)
	}
	if e.cx > rowLen {
		e.cx = rowLen
	}
}

// movePage jumps the cursor to the viewport edge, then walks one screenful
// The walk reuses single-step moves so column clamping applies per row
func (e *Editor) movePage(key terminal.Key) {
	step := terminal.KeyUp
	if key == terminal.KeyPageUp {
		e.cy = e.rowOff
	} else {
		step = terminal.KeyDown
		e.cy = e.rowOff + e.screenRows - 1
		if e.cy > e.buf.NumRows() {
			e.cy = e.buf.NumRows()
		}
	}

	for i := 0; i < e.screenRows; i++ {
		e.moveCursor(step)
	}
}

// insertChar inserts one byte at the cursor, growing the buffer when the
// cursor sits on the virtual row past the last real one
func (e *Editor) insertChar(c byte) {
	if e.cy == e.buf.NumRows() {
		e.buf.InsertRow(e.buf.NumRows(), nil)
	}
	e.buf.InsertChar(e.cy, e.cx, c)
	e.cx++
}

// insertNewline splits the current row at the cursor
// At column 0 this degenerates to inserting an empty row above
func (e *Editor) insertNewline() {
	if e.cy == e.buf.NumRows() {
		e.buf.InsertRow(e.buf.NumRows(), nil)
	} else {
		e.buf.SplitRow(e.cy, e.cx)
	}
	e.cy++
	e.cx = 0
}

// deleteChar removes the byte before the cursor
// At column 0 the current row merges onto the end of the previous one
func (e *Editor) deleteChar() {
	if e.cy == e.buf.NumRows() {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}

	if e.cx > 0 {
		e.buf.DeleteChar(e.cy, e.cx-1)
		e.cx--
		return
	}

	prev := e.buf.Row(e.cy - 1)
	e.cx = len(prev.Chars)
	e.buf.AppendString(e.cy-1, e.buf.Row(e.cy).Chars)
	e.buf.DeleteRow(e.cy)
	e.cy--
}

// save writes the buffer to its file, prompting for a name when unnamed
// Save failures are reported on the status bar and editing continues
func (e *Editor) save() error {
	if e.filename == "" {
		name, ok, err := e.prompt("Save as: ", nil)
		if err != nil {
			return err
		}
		if !ok {
			e.SetStatusMessage("Save aborted")
			return nil
		}
		e.filename = name
	}

	n, err := e.buf.Save(e.filename)
	if err != nil {
		e.SetStatusMessage("Save failed: %v", err)
		return nil
	}
	e.SetStatusMessage("%d bytes written to %s", n, e.filename)
	return nil
}
