package editor

import (
	"github.com/lixenwraith/ked/terminal"
)

// prompt runs an interactive single-line input on the message bar
// onKey, when non-nil, is invoked after every keystroke with the current
// query so callers can react live (incremental search)
// Returns ok=false when the user cancelled with Escape
func (e *Editor) prompt(label string, onKey func(query []byte, ev terminal.Event)) (string, bool, error) {
	var query []byte

	for {
		e.SetStatusMessage("%s%s (ESC to cancel)", label, query)
		if err := e.RefreshScreen(); err != nil {
			return "", false, err
		}

		ev, err := e.con.ReadKey()
		if err != nil {
			return "", false, err
		}

		switch ev.Key {
		case terminal.KeyBackspace, terminal.KeyDelete:
			if len(query) > 0 {
				query = query[:len(query)-1]
			}

		case terminal.KeyEscape:
			e.SetStatusMessage("")
			if onKey != nil {
				onKey(query, ev)
			}
			return "", false, nil

		case terminal.KeyEnter:
			if len(query) > 0 {
				e.SetStatusMessage("")
				if onKey != nil {
					onKey(query, ev)
				}
				return string(query), true, nil
			}

		case terminal.KeyRune:
			query = append(query, ev.Ch)
		}

		if onKey != nil {
			onKey(query, ev)
		}
	}
}
