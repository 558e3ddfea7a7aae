// Package tinyzip is a footprint-minimized decoder for the ZIP container and
// its embedded DEFLATE streams, for callers on resource-constrained targets:
// embedded firmware, script engines, firmware update paths.
//
// The zero-heap core is four operations against a single caller-owned State:
// InitArchive locates the central directory, LocateFile finds one entry by
// name or index, GetData extracts it into a caller-supplied buffer, and
// InflateRaw runs the DEFLATE decoder directly without any ZIP framing. None
// of the four allocate; all input comes through a caller-supplied ReadFunc
// and all output goes into a caller-supplied []byte.
//
// Streaming output, ZIP64, spanned archives, and encryption are out of
// scope: the uncompressed size is always known up front, from the entry's
// local file header, before extraction begins.
package tinyzip
