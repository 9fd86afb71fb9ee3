// ked is a minimal terminal text editor
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/ked/editor"
	"github.com/lixenwraith/ked/terminal"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	term, err := terminal.Open()
	if err != nil {
		die(nil, err)
	}

	// Panic recovery so a crash never leaves the terminal in raw mode
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEDITOR CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	rows, cols, err := term.Size()
	if err != nil {
		die(term, err)
	}

	ed := editor.New(term, rows, cols)
	if flag.NArg() == 1 {
		if err := ed.OpenFile(flag.Arg(0)); err != nil {
			die(term, err)
		}
	}
	ed.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")

	for {
		if term.ResizePending() {
			if rows, cols, err := term.Size(); err == nil {
				ed.Resize(rows, cols)
			}
		}

		if err := ed.RefreshScreen(); err != nil {
			die(term, err)
		}

		ev, err := term.ReadKey()
		if err != nil {
			die(term, err)
		}

		quit, err := ed.ProcessKey(ev)
		if err != nil {
			die(term, err)
		}
		if quit {
			break
		}
	}

	term.Write(terminal.SeqClearScreen)
	term.Write(terminal.SeqCursorHome)
	if err := term.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "restore terminal: %v\n", err)
		os.Exit(1)
	}
}

// die restores the terminal, reports the error, and exits non-zero
// Used for the fatal class of failures where editing cannot continue
func die(term *terminal.Terminal, err error) {
	if term != nil {
		term.Write(terminal.SeqClearScreen)
		term.Write(terminal.SeqCursorHome)
		term.Close()
	}
	fmt.Fprintf(os.Stderr, "ked: %v\n", err)
	os.Exit(1)
}
