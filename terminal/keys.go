// @focus: #sys { io } #input { keys }
package terminal

// Key represents a parsed input key
type Key uint16

// Key constants - designed for expansion
const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Ch)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Bound control chords; extend alongside controlKey as bindings grow
	KeyCtrlF
	KeyCtrlL
	KeyCtrlQ
	KeyCtrlS
)

// Event represents one decoded input unit
type Event struct {
	Key Key
	Ch  byte // Raw byte for KeyRune
}

// escapeSequence maps escape sequences to keys
// Key: bytes after ESC [ (e.g., "A" for up arrow)
type escapeSequence struct {
	seq string
	key Key
}

// Known CSI sequences (ESC [ ...)
// The numeric variants intentionally alias two terminal encodings onto one
// logical key (1~ and 7~ are both Home, 4~ and 8~ are both End)
var csiSequences = []escapeSequence{
	// Arrow keys
	{"A", KeyUp},
	{"B", KeyDown},
	{"C", KeyRight},
	{"D", KeyLeft},

	// Navigation
	{"H", KeyHome},
	{"F", KeyEnd},
	{"1~", KeyHome},
	{"3~", KeyDelete},
	{"4~", KeyEnd},
	{"5~", KeyPageUp},
	{"6~", KeyPageDown},
	{"7~", KeyHome},
	{"8~", KeyEnd},
}

// SS3 sequences (ESC O ...), alternate Home/End encoding used by some terminals
var ss3Sequences = []escapeSequence{
	{"H", KeyHome},
	{"F", KeyEnd},
}

var csiMap = buildSequenceMap(csiSequences)
var ss3Map = buildSequenceMap(ss3Sequences)

func buildSequenceMap(seqs []escapeSequence) map[string]escapeSequence {
	m := make(map[string]escapeSequence, len(seqs))
	for _, s := range seqs {
		m[s.seq] = s
	}
	return m
}

// lookupCSI performs zero-alloc map lookup via compiler optimization
// The string([]byte) conversion inline in map access does not allocate
func lookupCSI(seq []byte) (Key, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, true
	}
	return KeyNone, false
}

// lookupSS3 performs zero-alloc map lookup
func lookupSS3(seq []byte) (Key, bool) {
	if s, ok := ss3Map[string(seq)]; ok {
		return s.key, true
	}
	return KeyNone, false
}

// controlKey maps control bytes to keys
func controlKey(b byte) Event {
	switch b {
	case 0x08: // Ctrl+H, historically Backspace
		return Event{Key: KeyBackspace}
	case 0x09:
		return Event{Key: KeyTab}
	case 0x0a, 0x0d: // LF, CR (Enter)
		return Event{Key: KeyEnter}
	case 0x1b: // ESC (shouldn't reach here normally)
		return Event{Key: KeyEscape}
	case 0x06:
		return Event{Key: KeyCtrlF}
	case 0x0c:
		return Event{Key: KeyCtrlL}
	case 0x11:
		return Event{Key: KeyCtrlQ}
	case 0x13:
		return Event{Key: KeyCtrlS}
	}
	// Unbound control bytes decode to KeyNone and are ignored upstream
	return Event{Key: KeyNone}
}
