package osfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"tinyzip/internal/bitio"
)

func TestReadFuncMatchesUnderlyingBytes(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 100) // 1000 bytes, spans several windows
	src := New(bytes.NewReader(data), int64(len(data)))
	read := src.ReadFunc()

	for _, off := range []int{0, 1, 255, 256, 257, 511, 999} {
		got := read(nil, uint32(off))
		if got != uint16(data[off]) {
			t.Fatalf("read(%d) = %#x, want %#x", off, got, data[off])
		}
	}
}

func TestReadFuncReportsOOBPastSize(t *testing.T) {
	data := []byte("short")
	src := New(bytes.NewReader(data), int64(len(data)))
	read := src.ReadFunc()

	if v := read(nil, uint32(len(data))); v != bitio.OOB {
		t.Fatalf("read past end = %#x, want OOB", v)
	}
}

func TestIdentitySharedAcrossReopenedHandles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.bin")
	if err := os.WriteFile(path, []byte("contents"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f1, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open 1: %v", err)
	}
	defer f1.Close()
	f2, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open 2: %v", err)
	}
	defer f2.Close()

	s1, err := NewFile(f1)
	if err != nil {
		t.Fatalf("NewFile 1: %v", err)
	}
	s2, err := NewFile(f2)
	if err != nil {
		t.Fatalf("NewFile 2: %v", err)
	}

	id1, id2 := s1.Identity(), s2.Identity()
	if !id1.Valid || !id2.Valid {
		t.Skip("file identity not available on this platform")
	}
	if id1 != id2 {
		t.Fatalf("identities differ across handles on the same file: %+v vs %+v", id1, id2)
	}
}
