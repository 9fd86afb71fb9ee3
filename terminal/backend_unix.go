//go:build unix

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State
}

func newBackend() *unixBackend {
	return &unixBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// init enters raw mode, snapshotting the original state for restore
// MakeRaw installs the full raw configuration: BRKINT/ICRNL/INPCK/ISTRIP/IXON
// off, OPOST off, CS8, ECHO/ICANON/IEXTEN/ISIG off
func (b *unixBackend) init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	b.oldTerm = old
	return nil
}

// fini restores the snapshotted terminal state
// A restore failure leaves the terminal unusable, so it is surfaced to the
// caller rather than swallowed
func (b *unixBackend) fini() error {
	if b.oldTerm == nil {
		return nil
	}
	if err := term.Restore(b.inFd, b.oldTerm); err != nil {
		return fmt.Errorf("restore terminal mode: %w", err)
	}
	b.oldTerm = nil
	return nil
}

// readByte reads a single byte, waiting at most timeoutMs milliseconds
// Returns ok=false on timeout with no data
func (b *unixBackend) readByte(timeoutMs int) (byte, bool, error) {
	var buf [1]byte

	for {
		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				// Interrupted by a signal (SIGWINCH); report as timeout so
				// the caller can notice the pending resize
				return 0, false, nil
			}
			return 0, false, err
		}

		if n == 0 {
			return 0, false, nil // Timeout
		}

		rn, err := unix.Read(b.inFd, buf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, false, err
		}

		if rn == 0 {
			// EOF
			return 0, false, nil
		}

		return buf[0], true, nil
	}
}

// write flushes a composed frame in a single write call
func (b *unixBackend) write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// size returns terminal dimensions via ioctl, (0, 0) on failure
func (b *unixBackend) size() (rows, cols int) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0
	}
	return int(ws.Row), int(ws.Col)
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		// Get current termios, enable ECHO and ICANON
		if termios, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, unix.TCSETS, termios)
		}
	}
}
