// @focus: #terminal { ansi }
package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// Screen control
	SeqClearScreen = []byte("\x1b[2J")
	SeqCursorHome  = []byte("\x1b[H")

	// Cursor visibility
	SeqCursorHide = []byte("\x1b[?25l")
	SeqCursorShow = []byte("\x1b[?25h")

	// Line control
	SeqEraseLine = []byte("\x1b[K")

	// Video attributes
	SeqReverseVideo = []byte("\x1b[7m")
	SeqNormalVideo  = []byte("\x1b[m")

	// Emergency reset
	csiSGR0 = []byte("\x1b[0m")
	csiRIS  = []byte("\x1bc") // Reset to Initial State (emergency)

	// Window size probing
	seqCursorBottomRight = []byte("\x1b[999C\x1b[999B")
	seqCursorReport      = []byte("\x1b[6n")

	csi = []byte("\x1b[")
)

// appendInt appends a decimal integer without allocation
// Optimized for terminal coordinates (0-999 typical max)
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var buf [8]byte
	i := 7
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	return append(dst, buf[i+1:]...)
}

// AppendCursorPos appends a cursor positioning sequence (1-indexed input)
func AppendCursorPos(dst []byte, row, col int) []byte {
	dst = append(dst, csi...)
	dst = appendInt(dst, row)
	dst = append(dst, ';')
	dst = appendInt(dst, col)
	return append(dst, 'H')
}
