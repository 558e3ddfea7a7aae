package tinyzip

import (
	"tinyzip/internal/bitio"
	"tinyzip/internal/deflate"
	"tinyzip/internal/window"
)

// ReadFunc is the callback ABI (spec.md 6): it reads the byte at the given
// absolute offset, or returns OOB if that offset cannot be read. It must be
// deterministic per offset within a single decode.
type ReadFunc = bitio.ReadFunc

// OOB is the out-of-bounds sentinel a ReadFunc returns.
const OOB = bitio.OOB

// CompressionMethod is the subset of ZIP compression methods this decoder
// understands; anything else is a format error (spec.md 3).
type CompressionMethod uint16

const (
	MethodStore   CompressionMethod = 0
	MethodDeflate CompressionMethod = 8
)

const maxNameLen = 255

// FileInfo describes one archive entry, as resolved by LocateFile (spec.md
// 3). It is held in a single slot inside State: a subsequent LocateFile on
// the same State overwrites any FileInfo obtained from an earlier call.
type FileInfo struct {
	Method             CompressionMethod
	CRC32              uint32
	CompressedSize     uint32
	UncompressedSize   uint32
	DataOffset         uint32
	HaveDataDescriptor bool

	name    [maxNameLen + 1]byte // NUL-terminated
	nameLen int
}

// Name returns the entry's filename, truncated to 255 bytes per spec.md 3.
func (fi *FileInfo) Name() string {
	return string(fi.name[:fi.nameLen])
}

// State is the single, caller-owned decoder state (spec.md 3). Zero value is
// not ready to use: Read, UData, and ArchiveLen must be set, then
// InitArchive called, before LocateFile/GetData. InflateRaw does not need
// InitArchive: it uses only Read, UData, ReadOffset, and the output window.
type State struct {
	// Read and UData together form the callback ABI: Read(UData, offset).
	Read   ReadFunc
	UData  any
	// ArchiveLen is the archive's size in bytes; InitArchive scans backward
	// from it for the end-of-central-directory record. Other reads are not
	// checked against it: Read itself returns OOB past the end.
	ArchiveLen uint32

	// Out is the output window: three cursors over a caller-supplied
	// buffer, set by SetOutput before GetData/InflateRaw.
	Out window.Window

	// HaveError is the single sticky error flag (spec.md 7). Once set, no
	// further output is reliable.
	HaveError bool
	// Err classifies HaveError; not required reading, see DecodeError.
	Err DecodeError

	// ReadOffset is the absolute byte offset InflateRaw starts decoding
	// from; a caller driving raw DEFLATE directly sets it before calling
	// InflateRaw. GetData and InflateRaw leave it at the post-stream cursor,
	// the offset just past the last input byte the entry's data used.
	ReadOffset uint32

	centralDirOffset uint32

	info    FileInfo
	scratch deflate.Scratch
}

// SetOutput installs the caller's output buffer, resetting the output
// window to [0, len(buf)) with Next == Start == 0.
func (s *State) SetOutput(buf []byte) {
	s.Out = *window.New(buf)
}

// fail latches the sticky error flag with the given classification and
// returns it as an error, the one place every operation funnels into.
func (s *State) fail(kind DecodeError) error {
	s.HaveError = true
	if s.Err == ErrNone {
		s.Err = kind
	}
	return kind
}

func (s *State) newReader(cursor uint32) *bitio.Bytes {
	return &bitio.Bytes{Read: s.Read, UData: s.UData, Cursor: cursor}
}

func classifyDeflateErr(err error) DecodeError {
	switch err {
	case deflate.ErrBufferOverflow:
		return ErrBuffer
	case deflate.ErrInput:
		return ErrInput
	default:
		return ErrFormat
	}
}
