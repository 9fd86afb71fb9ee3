package buffer

import (
	"fmt"
	"os"
)

// Buffer is the ordered sequence of rows under edit
// All row mutations go through Buffer methods so the dirty flag stays honest
type Buffer struct {
	rows  []*Row
	dirty bool
}

// New creates an empty buffer
func New() *Buffer {
	return &Buffer{}
}

// NumRows returns the row count
func (b *Buffer) NumRows() int {
	return len(b.rows)
}

// Row returns the row at index i, nil when out of range
func (b *Buffer) Row(i int) *Row {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return b.rows[i]
}

// Dirty reports unsaved changes since the last load or save
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// InsertRow inserts a new row at position at, shifting subsequent rows
// No-op when at is outside [0, NumRows]
func (b *Buffer) InsertRow(at int, chars []byte) {
	if at < 0 || at > len(b.rows) {
		return
	}
	b.rows = append(b.rows, nil)
	copy(b.rows[at+1:], b.rows[at:])
	b.rows[at] = newRow(chars)
	b.dirty = true
}

// DeleteRow removes the row at position at; no-op when out of range
func (b *Buffer) DeleteRow(at int) {
	if at < 0 || at >= len(b.rows) {
		return
	}
	b.rows = append(b.rows[:at], b.rows[at+1:]...)
	b.dirty = true
}

// InsertChar inserts one byte into row y at byte index x (clamped to the
// row length)
func (b *Buffer) InsertChar(y, x int, c byte) {
	row := b.Row(y)
	if row == nil {
		return
	}
	row.insertChar(x, c)
	b.dirty = true
}

// DeleteChar removes the byte at index x of row y; no-op when out of range
func (b *Buffer) DeleteChar(y, x int) {
	row := b.Row(y)
	if row == nil {
		return
	}
	if row.deleteChar(x) {
		b.dirty = true
	}
}

// AppendString concatenates s onto the end of row y
// Used when merging a deleted line's remainder into the previous line
func (b *Buffer) AppendString(y int, s []byte) {
	row := b.Row(y)
	if row == nil {
		return
	}
	row.appendBytes(s)
	b.dirty = true
}

// SplitRow splits row y at byte index x: row y keeps the prefix, a new row
// holding the suffix is inserted after it
// Concatenating the two rows back reconstructs the original content exactly
func (b *Buffer) SplitRow(y, x int) {
	row := b.Row(y)
	if row == nil {
		return
	}
	if x < 0 {
		x = 0
	}
	if x > len(row.Chars) {
		x = len(row.Chars)
	}

	b.InsertRow(y+1, row.Chars[x:])
	row.Chars = row.Chars[:x]
	row.updateRender()
	b.dirty = true
}

// Serialize concatenates all rows with a trailing newline after every row,
// including the last
func (b *Buffer) Serialize() []byte {
	total := 0
	for _, row := range b.rows {
		total += len(row.Chars) + 1
	}

	out := make([]byte, 0, total)
	for _, row := range b.rows {
		out = append(out, row.Chars...)
		out = append(out, '\n')
	}
	return out
}

// Load replaces all rows with the lines of the file at path
// CR and LF are both stripped from line ends, so CRLF, LF, and bare-CR
// endings are all accepted; only LF is ever written back
func (b *Buffer) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	b.rows = nil
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			if i == len(data) && i == start {
				break // No final partial line
			}
			line := data[start:i]
			for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
				line = line[:len(line)-1]
			}
			b.rows = append(b.rows, newRow(line))
			start = i + 1
		}
	}

	b.dirty = false
	return nil
}

// Save serializes the buffer to path, truncating to the exact length
// On failure the dirty flag is left untouched and no rows are lost; on
// success the flag is cleared. Returns the number of bytes written
func (b *Buffer) Save(path string) (int, error) {
	data := b.Serialize()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := f.Truncate(int64(len(data))); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", path, err)
	}
	n, err := f.Write(data)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", path, err)
	}
	if n != len(data) {
		return n, fmt.Errorf("write %s: short write (%d of %d bytes)", path, n, len(data))
	}

	b.dirty = false
	return n, nil
}
