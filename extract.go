package tinyzip

import (
	"tinyzip/internal/bitio"
	"tinyzip/internal/crc32b"
	"tinyzip/internal/deflate"
)

// GetData extracts the entry fi into the output buffer installed by
// SetOutput, starting at the window's current Next cursor (spec.md 6
// get_data, component I). On success it has validated the uncompressed
// length and CRC-32, including the post-stream data descriptor case
// (spec.md 134).
func (s *State) GetData(fi *FileInfo) error {
	if s.HaveError {
		return s.Err
	}

	s.Out.Start = s.Out.Next
	start := s.Out.Start

	switch fi.Method {
	case MethodStore:
		if err := s.copyStored(fi); err != ErrNone {
			return s.fail(err)
		}
		s.ReadOffset = fi.DataOffset + fi.UncompressedSize
	case MethodDeflate:
		if err := s.inflateEntry(fi.DataOffset); err != ErrNone {
			return s.fail(err)
		}
	default:
		s.fail(ErrFormat)
		return ErrAlgorithm
	}

	if s.Out.Next-start != fi.UncompressedSize {
		return s.fail(ErrIntegrity)
	}

	expectedCRC, err := s.expectedCRC(fi)
	if err != ErrNone {
		return s.fail(err)
	}
	if crc32b.Checksum(s.Out.Buf[start:s.Out.Next]) != expectedCRC {
		return s.fail(ErrIntegrity)
	}

	return nil
}

// copyStored copies fi.UncompressedSize bytes verbatim (spec.md 6, STORE
// method: "copy uncompressed_size bytes from the input at data_offset")
// straight through the callback, one byte at a time. CompressedSize is not
// consulted here; for a STORE entry the two fields agree by construction,
// but an adversarial mismatch must not change how many bytes are copied.
func (s *State) copyStored(fi *FileInfo) DecodeError {
	for i := uint32(0); i < fi.UncompressedSize; i++ {
		b, ok := s.byteAt(fi.DataOffset + i)
		if !ok {
			return ErrInput
		}
		if !s.Out.Put(b) {
			return ErrBuffer
		}
	}
	return ErrNone
}

// inflateEntry decodes a raw DEFLATE stream starting at offset into the
// current output window, using State's fixed scratch, and leaves ReadOffset
// at the post-stream cursor.
func (s *State) inflateEntry(offset uint32) DecodeError {
	s.ReadOffset = offset
	bits := &bitio.Bits{Bytes: s.newReader(offset)}
	err := deflate.Inflate(bits, &s.Out, &s.scratch)
	s.ReadOffset = bits.ByteCursor()
	if err != nil {
		return classifyDeflateErr(err)
	}
	return ErrNone
}

// InflateRaw runs the DEFLATE decoder directly against ReadOffset, with no
// ZIP framing at all (spec.md 6 inflate_raw, component F exposed directly).
func (s *State) InflateRaw() error {
	if s.HaveError {
		return s.Err
	}
	if err := s.inflateEntry(s.ReadOffset); err != ErrNone {
		return s.fail(err)
	}
	return nil
}

// expectedCRC resolves the CRC-32 an extraction must match: the header
// value, or, when the local header declared a trailing data descriptor,
// the value found at the post-stream cursor (spec.md 134). The trailing
// length fields in an optional descriptor are never consulted.
func (s *State) expectedCRC(fi *FileInfo) (uint32, DecodeError) {
	if !fi.HaveDataDescriptor {
		return fi.CRC32, ErrNone
	}

	cursor := s.ReadOffset
	word, ok := s.u32At(cursor)
	if !ok {
		return 0, ErrInput
	}
	if word == dataDescriptorSignature {
		crc, ok := s.u32At(cursor + 4)
		if !ok {
			return 0, ErrInput
		}
		return crc, ErrNone
	}
	return word, ErrNone
}
