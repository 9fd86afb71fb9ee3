package buffer

import (
	"os"
	"path/filepath"
	"testing"
)

func bufferFromLines(lines ...string) *Buffer {
	b := New()
	for i, line := range lines {
		b.InsertRow(i, []byte(line))
	}
	b.dirty = false
	return b
}

func assertLines(t *testing.T, b *Buffer, want ...string) {
	t.Helper()
	if b.NumRows() != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), b.NumRows())
	}
	for i, line := range want {
		if string(b.Row(i).Chars) != line {
			t.Errorf("Expected row %d %q, got %q", i, line, b.Row(i).Chars)
		}
	}
}

func TestInsertRowShiftsAndMarksDirty(t *testing.T) {
	b := bufferFromLines("first", "third")
	b.InsertRow(1, []byte("second"))
	assertLines(t, b, "first", "second", "third")
	if !b.Dirty() {
		t.Error("Expected buffer dirty after row insert")
	}
}

func TestInsertRowOutOfRange(t *testing.T) {
	b := bufferFromLines("only")
	b.InsertRow(5, []byte("nope"))
	b.InsertRow(-1, []byte("nope"))
	assertLines(t, b, "only")
	if b.Dirty() {
		t.Error("Expected out-of-range insert to leave buffer clean")
	}
}

func TestDeleteRow(t *testing.T) {
	b := bufferFromLines("a", "b", "c")
	b.DeleteRow(1)
	assertLines(t, b, "a", "c")
	b.DeleteRow(5)
	b.DeleteRow(-1)
	assertLines(t, b, "a", "c")
}

func TestSplitMergeInverse(t *testing.T) {
	lines := []string{"hello world", "\ttabbed line", ""}
	for _, line := range lines {
		for x := 0; x <= len(line); x++ {
			b := bufferFromLines(line)
			b.SplitRow(0, x)
			if b.NumRows() != 2 {
				t.Fatalf("Expected 2 rows after split of %q at %d, got %d", line, x, b.NumRows())
			}

			// Merge back: append the next row and delete it
			b.AppendString(0, b.Row(1).Chars)
			b.DeleteRow(1)
			assertLines(t, b, line)
		}
	}
}

func TestSplitRowClampsIndex(t *testing.T) {
	b := bufferFromLines("abc")
	b.SplitRow(0, 99)
	assertLines(t, b, "abc", "")
}

func TestCharOpsOnMissingRow(t *testing.T) {
	b := New()
	b.InsertChar(0, 0, 'x')
	b.DeleteChar(0, 0)
	b.AppendString(0, []byte("x"))
	b.SplitRow(0, 0)
	if b.NumRows() != 0 || b.Dirty() {
		t.Error("Expected ops on missing rows to be no-ops")
	}
}

func TestSerializeAlwaysNewlineTerminated(t *testing.T) {
	b := bufferFromLines("one", "two")
	if got := string(b.Serialize()); got != "one\ntwo\n" {
		t.Errorf("Expected %q, got %q", "one\ntwo\n", got)
	}

	empty := New()
	if got := string(empty.Serialize()); got != "" {
		t.Errorf("Expected empty serialization, got %q", got)
	}
}

func TestLoadLineEndings(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"lf", "a\nb\n", []string{"a", "b"}},
		{"lf no trailing", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"mixed", "a\r\nb\nc", []string{"a", "b", "c"}},
		{"empty file", "", nil},
		{"blank line", "\n", []string{""}},
		{"blank lines", "\n\n", []string{"", ""}},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "in.txt")
		if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
			t.Fatalf("Expected test file write to succeed: %v", err)
		}

		b := New()
		if err := b.Load(path); err != nil {
			t.Fatalf("%s: Expected load to succeed: %v", tt.name, err)
		}
		if b.Dirty() {
			t.Errorf("%s: Expected buffer clean after load", tt.name)
		}
		assertLines(t, b, tt.want...)
	}
}

func TestLoadMissingFile(t *testing.T) {
	b := New()
	if err := b.Load(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Expected error loading a missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b := bufferFromLines("alpha", "\tbeta", "", "gamma")
	b.dirty = true

	path := filepath.Join(t.TempDir(), "out.txt")
	n, err := b.Save(path)
	if err != nil {
		t.Fatalf("Expected save to succeed: %v", err)
	}
	if want := len("alpha\n\tbeta\n\ngamma\n"); n != want {
		t.Errorf("Expected %d bytes written, got %d", want, n)
	}
	if b.Dirty() {
		t.Error("Expected dirty flag cleared after save")
	}

	reloaded := New()
	if err := reloaded.Load(path); err != nil {
		t.Fatalf("Expected reload to succeed: %v", err)
	}
	assertLines(t, reloaded, "alpha", "\tbeta", "", "gamma")
}

func TestSaveTruncatesShorterContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("a much longer previous file body\n"), 0644); err != nil {
		t.Fatalf("Expected seed write to succeed: %v", err)
	}

	b := bufferFromLines("short")
	if _, err := b.Save(path); err != nil {
		t.Fatalf("Expected save to succeed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected readback to succeed: %v", err)
	}
	if string(data) != "short\n" {
		t.Errorf("Expected %q, got %q", "short\n", data)
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	b := bufferFromLines("content")
	b.dirty = true

	// Directory path cannot be opened as a regular file
	if _, err := b.Save(t.TempDir()); err == nil {
		t.Fatal("Expected save to a directory path to fail")
	}
	if !b.Dirty() {
		t.Error("Expected dirty flag preserved after failed save")
	}
	assertLines(t, b, "content")
}
