package terminal

import (
	"fmt"
	"io"
	"os"
)

const (
	// pollInterval bounds the blocking key read so a quiet terminal never
	// hangs the process
	pollIntervalMs = 100

	// escapeTimeoutMs is how long to wait after ESC to distinguish a
	// standalone ESC press from an escape sequence start
	escapeTimeoutMs = 50
)

// Terminal owns the raw-mode session on stdin/stdout
type Terminal struct {
	backend backend
	resize  *resizeWatcher
}

// Open enters raw mode and starts the resize watcher
// The caller must arrange for Close to run on every exit path
func Open() (*Terminal, error) {
	t := &Terminal{backend: newBackend()}
	if err := t.backend.init(); err != nil {
		return nil, err
	}

	t.resize = newResizeWatcher()
	t.resize.start()
	return t, nil
}

// Close restores the original terminal mode. Safe to call multiple times
// A failed restore is unrecoverable for the caller and must be treated as fatal
func (t *Terminal) Close() error {
	if t.resize != nil {
		t.resize.stop()
		t.resize = nil
	}
	return t.backend.fini()
}

// Write flushes a composed frame in one write call
func (t *Terminal) Write(p []byte) error {
	return t.backend.write(p)
}

// ResizePending reports and clears the pending-resize flag
// The event loop samples this between keys so the editor stays the sole
// mutator of screen dimensions
func (t *Terminal) ResizePending() bool {
	if t.resize == nil {
		return false
	}
	return t.resize.pending.Swap(false)
}

// ReadKey blocks until one input unit is available and decodes it
// Escape sequences are recognized from a small fixed grammar; an incomplete
// or unknown sequence degrades to a bare ESC keypress rather than blocking
func (t *Terminal) ReadKey() (Event, error) {
	var b byte
	for {
		var ok bool
		var err error
		b, ok, err = t.backend.readByte(pollIntervalMs)
		if err != nil {
			return Event{}, fmt.Errorf("read key: %w", err)
		}
		if ok {
			break
		}
	}

	if b == 0x1b {
		return t.readEscape(), nil
	}
	if b == 0x7f {
		return Event{Key: KeyBackspace}, nil
	}
	if b < 0x20 {
		return controlKey(b), nil
	}
	if b < 0x7f {
		return Event{Key: KeyRune, Ch: b}, nil
	}
	// High bytes are not interpreted; positions are single-byte-indexed
	return Event{Key: KeyNone, Ch: b}, nil
}

// readEscape consumes the remainder of an escape sequence
// Follow-up bytes that fail to arrive within the escape timeout mean the
// user pressed a bare ESC
func (t *Terminal) readEscape() Event {
	b1, ok, err := t.backend.readByte(escapeTimeoutMs)
	if err != nil || !ok {
		return Event{Key: KeyEscape}
	}

	switch b1 {
	case '[':
		b2, ok, err := t.backend.readByte(escapeTimeoutMs)
		if err != nil || !ok {
			return Event{Key: KeyEscape}
		}
		if b2 >= '0' && b2 <= '9' {
			// ESC [ <digit> ~
			b3, ok, err := t.backend.readByte(escapeTimeoutMs)
			if err != nil || !ok || b3 != '~' {
				return Event{Key: KeyEscape}
			}
			if key, found := lookupCSI([]byte{b2, '~'}); found {
				return Event{Key: key}
			}
			return Event{Key: KeyEscape}
		}
		if key, found := lookupCSI([]byte{b2}); found {
			return Event{Key: key}
		}
	case 'O':
		b2, ok, err := t.backend.readByte(escapeTimeoutMs)
		if err != nil || !ok {
			return Event{Key: KeyEscape}
		}
		if key, found := lookupSS3([]byte{b2}); found {
			return Event{Key: key}
		}
	}

	return Event{Key: KeyEscape}
}

// Size returns terminal dimensions
// Prefers the ioctl query; a failure or zero-column report falls back to the
// bottom-right cursor probe with a position report
func (t *Terminal) Size() (rows, cols int, err error) {
	rows, cols = t.backend.size()
	if cols > 0 {
		return rows, cols, nil
	}
	return t.sizeFromCursorReport()
}

// sizeFromCursorReport moves the cursor to an extreme bottom-right position
// and parses the terminal's reported cursor position
func (t *Terminal) sizeFromCursorReport() (rows, cols int, err error) {
	if err := t.backend.write(seqCursorBottomRight); err != nil {
		return 0, 0, fmt.Errorf("window size probe: %w", err)
	}
	if err := t.backend.write(seqCursorReport); err != nil {
		return 0, 0, fmt.Errorf("window size probe: %w", err)
	}

	// Reply: ESC [ rows ; cols R
	var reply []byte
	for len(reply) < 32 {
		b, ok, err := t.backend.readByte(pollIntervalMs)
		if err != nil || !ok {
			break
		}
		if b == 'R' {
			reply = append(reply, b)
			break
		}
		reply = append(reply, b)
	}

	rows, cols, ok := parseCursorReport(reply)
	if !ok {
		return 0, 0, fmt.Errorf("window size probe: bad cursor report %q", reply)
	}
	return rows, cols, nil
}

// parseCursorReport parses an ESC [ rows ; cols R position report
func parseCursorReport(reply []byte) (rows, cols int, ok bool) {
	if len(reply) < 6 || reply[0] != 0x1b || reply[1] != '[' || reply[len(reply)-1] != 'R' {
		return 0, 0, false
	}

	state := 0 // 0=rows, 1=cols
	val := 0
	seen := false
	for _, b := range reply[2 : len(reply)-1] {
		switch {
		case b == ';':
			if state != 0 || !seen {
				return 0, 0, false
			}
			rows = val
			state = 1
			val = 0
			seen = false
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, false
			}
			seen = true
		default:
			return 0, 0, false
		}
	}
	if state != 1 || !seen {
		return 0, 0, false
	}
	cols = val
	if rows == 0 || cols == 0 {
		return 0, 0, false
	}
	return rows, cols, true
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Close cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(SeqCursorShow)
	w.Write(csiSGR0)
	w.Write(SeqClearScreen)
	w.Write(SeqCursorHome)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset via termios - escape sequences alone don't
	// restore the input mode. Best-effort; ignore errors in crash context
	resetTerminalMode()
}
