package tinyzip

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"hash/crc32"
)

// sliceReadFunc adapts a plain []byte into the ReadFunc ABI: OOB past the
// end, the byte value otherwise. It plays the same role as
// internal/zip/zip_test.go's in-memory test readers, but over the callback
// ABI instead of io.ReaderAt.
func sliceReadFunc(data []byte) ReadFunc {
	return func(_ any, offset uint32) uint16 {
		if offset >= uint32(len(data)) {
			return OOB
		}
		return uint16(data[offset])
	}
}

// testEntry describes one archive member for buildZip.
type testEntry struct {
	name           string
	method         CompressionMethod
	data           []byte
	dataDescriptor bool
	badCRC         bool
}

func put16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func put32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func deflateBytes(p []byte) []byte {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write(p); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// buildZip hand-assembles a minimal, single-disk, non-ZIP64 ZIP archive
// byte-for-byte (local headers, optional data descriptors, central
// directory, EOCD), the way internal/zip/zip_test.go cross-checks against
// real archives, except built from scratch instead of via archive/zip so
// the data-descriptor and truncated-name edge cases can be expressed
// directly.
func buildZip(entries []testEntry, comment []byte) []byte {
	var out bytes.Buffer
	localOffsets := make([]uint32, len(entries))
	compressed := make([][]byte, len(entries))
	crcs := make([]uint32, len(entries))

	for i, e := range entries {
		switch e.method {
		case MethodStore:
			compressed[i] = e.data
		case MethodDeflate:
			compressed[i] = deflateBytes(e.data)
		default:
			panic("unsupported method in test fixture")
		}
		crcs[i] = crc32.ChecksumIEEE(e.data)
		if e.badCRC {
			crcs[i] ^= 0xFFFFFFFF
		}
	}

	for i, e := range entries {
		localOffsets[i] = uint32(out.Len())

		flags := uint16(0)
		if e.dataDescriptor {
			flags |= 0x8
		}

		put32(&out, localHeaderSignature)
		put16(&out, 20) // version needed
		put16(&out, flags)
		put16(&out, uint16(e.method))
		put16(&out, 0) // mod time
		put16(&out, 0) // mod date
		put32(&out, crcs[i])
		put32(&out, uint32(len(compressed[i])))
		put32(&out, uint32(len(e.data)))
		put16(&out, uint16(len(e.name)))
		put16(&out, 0) // extra length
		out.WriteString(e.name)

		out.Write(compressed[i])

		if e.dataDescriptor {
			put32(&out, dataDescriptorSignature)
			put32(&out, crcs[i])
			put32(&out, uint32(len(compressed[i])))
			put32(&out, uint32(len(e.data)))
		}
	}

	cdOffset := uint32(out.Len())
	for i, e := range entries {
		flags := uint16(0)
		if e.dataDescriptor {
			flags |= 0x8
		}

		put32(&out, centralDirSignature)
		put16(&out, 20) // version made by
		put16(&out, 20) // version needed
		put16(&out, flags)
		put16(&out, uint16(e.method))
		put16(&out, 0)
		put16(&out, 0)
		put32(&out, crcs[i])
		put32(&out, uint32(len(compressed[i])))
		put32(&out, uint32(len(e.data)))
		put16(&out, uint16(len(e.name)))
		put16(&out, 0) // extra length
		put16(&out, 0) // comment length
		put16(&out, 0) // disk number start
		put16(&out, 0) // internal attrs
		put32(&out, 0) // external attrs
		put32(&out, localOffsets[i])
		out.WriteString(e.name)
	}
	cdSize := uint32(out.Len()) - cdOffset

	put32(&out, eocdSignature)
	put16(&out, 0)
	put16(&out, 0)
	put16(&out, uint16(len(entries)))
	put16(&out, uint16(len(entries)))
	put32(&out, cdSize)
	put32(&out, cdOffset)
	put16(&out, uint16(len(comment)))
	out.Write(comment)

	return out.Bytes()
}
