package tinyzip

import (
	"bytes"
	"testing"
)

func TestGetDataStore(t *testing.T) {
	content := []byte("hello, stored world")
	raw := buildZip([]testEntry{{name: "a.txt", method: MethodStore, data: content}}, nil)
	s := newArchive(t, raw)

	fi, err := s.LocateFile(0, nil)
	if err != nil {
		t.Fatalf("LocateFile: %v", err)
	}

	out := make([]byte, len(content))
	s.SetOutput(out)
	if err := s.GetData(fi); err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if !bytes.Equal(out, content) {
		t.Fatalf("out = %q, want %q", out, content)
	}
	if s.HaveError {
		t.Fatal("HaveError set after a clean extraction")
	}
}

func TestGetDataDeflate(t *testing.T) {
	content := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 50)
	raw := buildZip([]testEntry{{name: "a.txt", method: MethodDeflate, data: content}}, nil)
	s := newArchive(t, raw)

	fi, err := s.LocateFile(0, nil)
	if err != nil {
		t.Fatalf("LocateFile: %v", err)
	}

	out := make([]byte, len(content))
	s.SetOutput(out)
	if err := s.GetData(fi); err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if !bytes.Equal(out, content) {
		t.Fatal("decompressed output does not match original content")
	}
}

func TestGetDataCRCMismatch(t *testing.T) {
	content := []byte("some bytes")
	raw := buildZip([]testEntry{{name: "a.txt", method: MethodStore, data: content, badCRC: true}}, nil)
	s := newArchive(t, raw)

	fi, err := s.LocateFile(0, nil)
	if err != nil {
		t.Fatalf("LocateFile: %v", err)
	}

	out := make([]byte, len(content))
	s.SetOutput(out)
	if err := s.GetData(fi); err == nil {
		t.Fatal("expected CRC mismatch error")
	}
	if s.Err != ErrIntegrity {
		t.Fatalf("Err = %v, want ErrIntegrity", s.Err)
	}
}

func TestGetDataWithDataDescriptorCRC(t *testing.T) {
	content := []byte("data with a trailing descriptor")
	raw := buildZip([]testEntry{{name: "a.txt", method: MethodDeflate, data: content, dataDescriptor: true}}, nil)
	s := newArchive(t, raw)

	fi, err := s.LocateFile(0, nil)
	if err != nil {
		t.Fatalf("LocateFile: %v", err)
	}
	if !fi.HaveDataDescriptor {
		t.Fatal("expected HaveDataDescriptor to be set")
	}

	out := make([]byte, len(content))
	s.SetOutput(out)
	if err := s.GetData(fi); err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if !bytes.Equal(out, content) {
		t.Fatal("decompressed output does not match original content")
	}
}

func TestGetDataBufferTooSmall(t *testing.T) {
	content := []byte("this will not fit")
	raw := buildZip([]testEntry{{name: "a.txt", method: MethodStore, data: content}}, nil)
	s := newArchive(t, raw)

	fi, err := s.LocateFile(0, nil)
	if err != nil {
		t.Fatalf("LocateFile: %v", err)
	}

	out := make([]byte, len(content)-1)
	s.SetOutput(out)
	if err := s.GetData(fi); err == nil {
		t.Fatal("expected buffer overflow error")
	}
	if s.Err != ErrBuffer {
		t.Fatalf("Err = %v, want ErrBuffer", s.Err)
	}
}

func TestInflateRawDirect(t *testing.T) {
	content := []byte("raw deflate, no zip framing at all")
	compressed := deflateBytes(content)

	s := &State{Read: sliceReadFunc(compressed), ArchiveLen: uint32(len(compressed)), ReadOffset: 0}
	out := make([]byte, len(content))
	s.SetOutput(out)

	if err := s.InflateRaw(); err != nil {
		t.Fatalf("InflateRaw: %v", err)
	}
	if !bytes.Equal(out, content) {
		t.Fatalf("out = %q, want %q", out, content)
	}
}

func TestGetDataStoreIgnoresBogusCompressedSize(t *testing.T) {
	// spec.md 6 says STORE copies uncompressed_size bytes; a malformed
	// header where CompressedSize disagrees with UncompressedSize must not
	// change how many bytes get copied or verified.
	content := []byte("hello, stored world")
	raw := buildZip([]testEntry{{name: "a.txt", method: MethodStore, data: content}}, nil)
	s := newArchive(t, raw)

	fi, err := s.LocateFile(0, nil)
	if err != nil {
		t.Fatalf("LocateFile: %v", err)
	}
	fi.CompressedSize = 3 // bogus: disagrees with UncompressedSize and the real data

	out := make([]byte, len(content))
	s.SetOutput(out)
	if err := s.GetData(fi); err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if !bytes.Equal(out, content) {
		t.Fatalf("out = %q, want %q", out, content)
	}
}

func TestGetDataUnsupportedMethod(t *testing.T) {
	raw := buildZip([]testEntry{{name: "a.txt", method: MethodStore, data: []byte("x")}}, nil)
	s := newArchive(t, raw)

	fi, err := s.LocateFile(0, nil)
	if err != nil {
		t.Fatalf("LocateFile: %v", err)
	}
	fi.Method = 99 // not STORE or DEFLATE

	out := make([]byte, 1)
	s.SetOutput(out)
	if err := s.GetData(fi); err == nil {
		t.Fatal("expected unsupported-method error")
	}
}
