package editor

// scroll recomputes rx and clamps the viewport offsets so the cursor's
// screen-relative position stays within [0,screenRows) x [0,screenCols)
func (e *Editor) scroll() {
	e.rx = 0
	if row := e.buf.Row(e.cy); row != nil {
		e.rx = row.CxToRx(e.cx)
	}

	if e.cy < e.rowOff {
		e.rowOff = e.cy
	}
	if e.cy >= e.rowOff+e.screenRows {
		e.rowOff = e.cy - e.screenRows + 1
	}
	if e.rx < e.colOff {
		e.colOff = e.rx
	}
	if e.rx >= e.colOff+e.screenCols {
		e.colOff = e.rx - e.screenCols + 1
	}
}
