package buffer

// TabStop is the fixed tab width used for the rendered form
const TabStop = 8

// Row is one line of the edited file
// Chars is the authoritative content (no trailing newline); Render is the
// derived on-screen form with tabs expanded to spaces
type Row struct {
	Chars  []byte
	Render []byte
}

// newRow creates a row owning a copy of chars, with render up to date
func newRow(chars []byte) *Row {
	r := &Row{Chars: append([]byte(nil), chars...)}
	r.updateRender()
	return r
}

// updateRender regenerates the rendered form from Chars
// Tabs expand to spaces up to the next multiple of TabStop; every other
// byte maps 1:1
func (r *Row) updateRender() {
	tabs := 0
	for _, c := range r.Chars {
		if c == '\t' {
			tabs++
		}
	}

	render := make([]byte, 0, len(r.Chars)+tabs*(TabStop-1))
	for _, c := range r.Chars {
		if c == '\t' {
			render = append(render, ' ')
			for len(render)%TabStop != 0 {
				render = append(render, ' ')
			}
		} else {
			render = append(render, c)
		}
	}
	r.Render = render
}

// insertChar inserts one byte at index at, clamped to the row length
func (r *Row) insertChar(at int, c byte) {
	if at < 0 || at > len(r.Chars) {
		at = len(r.Chars)
	}
	r.Chars = append(r.Chars, 0)
	copy(r.Chars[at+1:], r.Chars[at:])
	r.Chars[at] = c
	r.updateRender()
}

// deleteChar removes the byte at index at; no-op when out of range
func (r *Row) deleteChar(at int) bool {
	if at < 0 || at >= len(r.Chars) {
		return false
	}
	r.Chars = append(r.Chars[:at], r.Chars[at+1:]...)
	r.updateRender()
	return true
}

// appendBytes concatenates s onto the end of the row
func (r *Row) appendBytes(s []byte) {
	r.Chars = append(r.Chars, s...)
	r.updateRender()
}

// CxToRx translates a byte index into a render-column index
func (r *Row) CxToRx(cx int) int {
	rx := 0
	for j := 0; j < cx && j < len(r.Chars); j++ {
		if r.Chars[j] == '\t' {
			rx += (TabStop - 1) - rx%TabStop
		}
		rx++
	}
	return rx
}

// RxToCx translates a render-column index back into a byte index
// Walks forward accumulating visual width until the trailing visual edge of
// a character passes rx; inverse of CxToRx on every character boundary
func (r *Row) RxToCx(rx int) int {
	curRx := 0
	for cx := 0; cx < len(r.Chars); cx++ {
		if r.Chars[cx] == '\t' {
			curRx += (TabStop - 1) - curRx%TabStop
		}
		curRx++
		if curRx > rx {
			return cx
		}
	}
	return len(r.Chars)
}
