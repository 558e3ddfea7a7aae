// Package bitio provides the two lowest layers of the decoder: a callback-backed
// byte source and an LSB-first bit reader over it. Both are driven entirely by
// the caller-supplied read callback; neither allocates.
package bitio

// OOB is the sentinel returned by a ReadFunc for an out-of-bounds or failed read.
// It is outside the 0x00..0xff byte range so a single return value carries both
// "here is a byte" and "there is no byte here".
const OOB = 0x100

// ReadFunc reads the byte at the given absolute offset, or returns OOB.
//
// It must be deterministic per offset within a single decode: once a decode
// has read offset N, later reads of offset N must return the same value.
type ReadFunc func(udata any, offset uint32) uint16

// Bytes is the byte-reader component (spec component A). It wraps the user
// callback and its context, and advances a monotone cursor on each ReadByte.
type Bytes struct {
	Read  ReadFunc
	UData any

	// Cursor is the next absolute offset ReadByte will fetch.
	Cursor uint32

	// HaveError latches true the first time the callback reports OOB.
	HaveError bool
}

// ReadByte returns the byte at Cursor and advances Cursor by one. On an
// out-of-bounds read it returns 0, latches HaveError, and still advances the
// cursor so callers that ignore the error keep making forward progress.
func (b *Bytes) ReadByte() byte {
	v := b.Read(b.UData, b.Cursor)
	b.Cursor++
	if v == OOB {
		b.HaveError = true
		return 0
	}
	return byte(v)
}

// ReadByteAt fetches a single byte at an explicit offset without touching
// Cursor. Nothing in this module calls it: central-directory and
// local-header parsing read through the root package's own State.byteAt.
func (b *Bytes) ReadByteAt(offset uint32) (byte, bool) {
	v := b.Read(b.UData, offset)
	if v == OOB {
		b.HaveError = true
		return 0, false
	}
	return byte(v), true
}
