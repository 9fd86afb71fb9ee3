package editor

import (
	"fmt"
	"time"

	"github.com/lixenwraith/ked/terminal"
)

// RefreshScreen composes one full frame and flushes it in a single write
// Everything is appended to a reused in-memory buffer so the terminal never
// sees a partial update
func (e *Editor) RefreshScreen() error {
	e.scroll()

	e.frame = e.frame[:0]
	e.frame = append(e.frame, terminal.SeqCursorHide...)
	e.frame = append(e.frame, terminal.SeqCursorHome...)

	e.drawRows()
	e.drawStatusBar()
	e.drawMessageBar()

	e.frame = terminal.AppendCursorPos(e.frame, e.cy-e.rowOff+1, e.rx-e.colOff+1)
	e.frame = append(e.frame, terminal.SeqCursorShow...)

	return e.con.Write(e.frame)
}

// drawRows emits the visible window of buffer rows
// Rows past the end of the buffer get a filler marker; an entirely empty
// buffer shows a centered welcome banner a third of the way down
func (e *Editor) drawRows() {
	for y := 0; y < e.screenRows; y++ {
		fileRow := y + e.rowOff
		if fileRow >= e.buf.NumRows() {
			if e.buf.NumRows() == 0 && y == e.screenRows/3 {
				e.drawWelcome()
			} else {
				e.frame = append(e.frame, '~')
			}
		} else {
			render := e.buf.Row(fileRow).Render
			n := len(render) - e.colOff
			if n < 0 {
				n = 0
			}
			if n > e.screenCols {
				n = e.screenCols
			}
			if n > 0 {
				e.frame = append(e.frame, render[e.colOff:e.colOff+n]...)
			}
		}

		e.frame = append(e.frame, terminal.SeqEraseLine...)
		e.frame = append(e.frame, '\r', '\n')
	}
}

func (e *Editor) drawWelcome() {
	welcome := fmt.Sprintf("ked -- version %s", version)
	if len(welcome) > e.screenCols {
		welcome = welcome[:e.screenCols]
	}

	padding := (e.screenCols - len(welcome)) / 2
	if padding > 0 {
		e.frame = append(e.frame, '~')
		padding--
	}
	for ; padding > 0; padding-- {
		e.frame = append(e.frame, ' ')
	}
	e.frame = append(e.frame, welcome...)
}

// drawStatusBar emits an inverted-video bar of exactly screenCols cells:
// filename, line count, and dirty marker on the left, cursor position on
// the right. The right side is dropped when it would collide with the left
func (e *Editor) drawStatusBar() {
	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	dirty := ""
	if e.buf.Dirty() {
		dirty = "(modified)"
	}

	left := fmt.Sprintf("%.20s - %d lines %s", name, e.buf.NumRows(), dirty)
	if len(left) > e.screenCols {
		left = left[:e.screenCols]
	}
	right := fmt.Sprintf("%d/%d", e.cy+1, e.buf.NumRows())

	e.frame = append(e.frame, terminal.SeqReverseVideo...)
	e.frame = append(e.frame, left...)
	for col := len(left); col < e.screenCols; {
		if e.screenCols-col == len(right) {
			e.frame = append(e.frame, right...)
			break
		}
		e.frame = append(e.frame, ' ')
		col++
	}
	e.frame = append(e.frame, terminal.SeqNormalVideo...)
	e.frame = append(e.frame, '\r', '\n')
}

// drawMessageBar emits the transient status message while it is unexpired
func (e *Editor) drawMessageBar() {
	e.frame = append(e.frame, terminal.SeqEraseLine...)

	if e.statusMsg == "" || time.Since(e.statusTime) >= statusMessageTTL {
		return
	}
	msg := e.statusMsg
	if len(msg) > e.screenCols {
		msg = msg[:e.screenCols]
	}
	e.frame = append(e.frame, msg...)
}
