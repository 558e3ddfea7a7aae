package deflate

import (
	"sync"

	"tinyzip/internal/huffman"
)

// fixedTables lazily builds the two fixed Huffman tables (RFC 1951 3.2.6) by
// synthesizing their code-length vectors and running them through the same
// Build/Decode path a dynamic block's tables use. Spec.md's design notes call
// this out explicitly as an acceptable substitute for a hand-rolled
// bit-reversed fast path: "tests do not distinguish". Built once per process,
// mirroring the sync.Once pattern compress/flate-style decoders use for the
// same tables.
//
// The literal/length code-length vector spans all 288 RFC-defined codes, not
// just the 286 spec.md says the alphabet ever emits: codes 286 and 287 are
// reserved, never produced by a compliant encoder, but their length-8 slots
// are part of what makes the canonical code complete. Omitting them would
// shift every other length-8 and length-9 code's bit pattern. They still end
// up in the decoded Symbols list, so if corrupt input ever decodes to one,
// huffmanBlock's sym > 285 check rejects it as a format error, same as any
// other invalid symbol.
var (
	fixedOnce      sync.Once
	fixedLitTable  huffman.Table
	fixedDistTable huffman.Table
	fixedLitSyms   [288]uint16
	fixedDistSyms  [32]uint16
)

func fixedTables() (*huffman.Table, *huffman.Table) {
	fixedOnce.Do(func() {
		var lengths [288]byte
		for i := 0; i < 144; i++ {
			lengths[i] = 8
		}
		for i := 144; i < 256; i++ {
			lengths[i] = 9
		}
		for i := 256; i < 280; i++ {
			lengths[i] = 7
		}
		for i := 280; i < 288; i++ {
			lengths[i] = 8
		}
		t, err := huffman.Build(lengths[:], fixedLitSyms[:0])
		if err != nil {
			panic("deflate: fixed literal/length table is malformed")
		}
		fixedLitTable = t

		var distLengths [30]byte
		for i := range distLengths {
			distLengths[i] = 5
		}
		dt, err := huffman.Build(distLengths[:], fixedDistSyms[:0])
		if err != nil {
			panic("deflate: fixed distance table is malformed")
		}
		fixedDistTable = dt
	})
	return &fixedLitTable, &fixedDistTable
}
