// @focus: #sys { term }
// Package terminal provides direct ANSI terminal control for the editor.
//
// Features:
//   - Raw mode entry/exit with guaranteed restoration of the original state
//   - Bounded-timeout stdin reads with escape sequence decoding
//   - Window size discovery via ioctl with cursor-report fallback
//   - SIGWINCH resize detection
//   - Emergency terminal reset for crash paths
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals.
package terminal
