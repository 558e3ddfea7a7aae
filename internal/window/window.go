// Package window implements the output side of the decoder: a caller-owned
// buffer described by three cursors, start <= next <= end (spec.md 3). It is
// the single defensive chokepoint for "never write past end".
package window

// Window is the output side of the decoder state. Buf is caller-owned; Start
// marks where the current entry's output began (for back-reference distance
// checks), Next is the write cursor, End is one past the last writable byte.
type Window struct {
	Buf   []byte
	Start uint32
	Next  uint32
	End   uint32
}

// New describes a fresh output buffer: the whole of buf is writable, and the
// entry being decoded starts at offset 0 within it.
func New(buf []byte) *Window {
	return &Window{Buf: buf, End: uint32(len(buf))}
}

// Put appends a single byte. It reports false (and writes nothing) if doing
// so would advance Next past End; this is the output-bounds chokepoint spec.md
// requires at every write.
func (w *Window) Put(b byte) bool {
	if w.Next >= w.End {
		return false
	}
	w.Buf[w.Next] = b
	w.Next++
	return true
}

// CopyBack resolves a DEFLATE back-reference: copy length bytes from dist
// bytes behind Next, byte by byte, each read relative to the post-write Next
// (so dist < length reproduces DEFLATE's run-length fill behavior).
//
// badDistance is true when dist exceeds the bytes produced so far (a format
// error); overflow is true when length would write past End (a buffer
// error). At most one of the two is ever true.
func (w *Window) CopyBack(dist, length uint32) (badDistance, overflow bool) {
	if dist == 0 || dist > w.Next-w.Start {
		return true, false
	}
	if length > w.End-w.Next {
		return false, true
	}
	for i := uint32(0); i < length; i++ {
		w.Buf[w.Next] = w.Buf[w.Next-dist]
		w.Next++
	}
	return false, false
}

// Produced returns the number of bytes written to the current entry so far.
func (w *Window) Produced() uint32 {
	return w.Next - w.Start
}
