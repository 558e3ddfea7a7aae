// Package xzfallback decompresses the ZIP compression methods the
// zero-heap core deliberately doesn't implement: method 95 (XZ) and, where
// the payload actually is a raw XZ stream, method 14 (LZMA) and method 99.
// It plugs into an archive.Archive via Register, and only ever runs once
// the embedded core has reported ErrAlgorithm for an entry.
//
// Grounded on the teacher's probe.go/fs.go transparent-decompression case
// for ".xz" payloads, both of which call xz.NewReader the same way
// (readable at _examples/elliotnunn-BeHierarchic/probe.go and fs.go).
package xzfallback

import (
	"bytes"
	"fmt"
	"io"

	"github.com/therootcompany/xz"

	"tinyzip/archive"
)

// ZIP APPNOTE compression method codes this package can service. Method 99
// is normally PKWARE's AE-x strong-encryption marker rather than a
// compression method in its own right, but SPEC_FULL.md's fallback-registry
// design treats it as another XZ-compatible variant some archivers emit,
// alongside 14 and 95.
const (
	MethodLZMA = 14
	MethodXZ   = 95
	MethodAE   = 99
)

// Reader matches archive.Archive.RegisterMethod's decompressor signature.
// The therootcompany/xz decoder only understands the XZ container, not the
// LZMA SDK's own ZIP-specific framing (method 14's official wire format),
// so a method-14 entry only decodes here in the (non-conforming but
// observed in the wild) case where the tool that wrote it emitted a plain
// XZ stream anyway.
func Reader(r io.Reader, size int64) (io.Reader, error) {
	out, err := xz.NewReader(r, xz.DefaultDictMax)
	if err != nil {
		return nil, fmt.Errorf("xzfallback: %w", err)
	}
	return out, nil
}

// Register installs Reader against every method code this package can
// service.
func Register(a *archive.Archive) {
	a.RegisterMethod(MethodLZMA, Reader)
	a.RegisterMethod(MethodXZ, Reader)
	a.RegisterMethod(MethodAE, Reader)
}

// Decompress is a one-shot convenience wrapper over Reader for callers
// that already have the whole compressed entry in memory.
func Decompress(compressed []byte) ([]byte, error) {
	r, err := Reader(bytes.NewReader(compressed), int64(len(compressed)))
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xzfallback: %w", err)
	}
	return out, nil
}
