// Package huffman builds and decodes canonical Huffman codes the table-free
// way spec.md 4.C calls for: no explicit code value is ever materialized.
// Decoding (decoder.go) reconstructs the code on the fly from a vector of
// per-length symbol counts and a symbol list ordered by (length, symbol ID).
//
// This intentionally differs from a chunked/table-driven decoder (the kind
// compress/flate uses): it is the size-optimized, not speed-optimized,
// construction the spec calls for.
package huffman

const maxCodeLen = 15

// MaxLitSymbols and MaxDistSymbols bound the two alphabets a DEFLATE stream
// uses; Table.Symbols is sized to whichever alphabet it was built for.
const (
	MaxLitSymbols  = 286
	MaxDistSymbols = 32
)

// Table is the counts+symbols canonical-Huffman decode structure of spec.md 3.
type Table struct {
	// Counts[L] is the number of symbols with code length exactly L.
	// Counts[0] is unused for decoding.
	Counts [maxCodeLen + 1]uint16

	// Symbols lists symbol IDs in ascending (length, symbol ID) order.
	Symbols []uint16
}

// ErrBadLength is returned by Build when a code length exceeds 15.
type ErrBadLength struct{ Length int }

func (e ErrBadLength) Error() string { return "huffman: code length out of range" }

// Build constructs a Table from a vector of code lengths (0 meaning
// "symbol unused"), per spec.md 4.C's two-pass algorithm. symbolSpace must be
// long enough to hold len(lengths) symbol IDs; passing it in lets the caller
// supply a fixed scratch slice instead of growing one on the heap.
func Build(lengths []byte, symbolSpace []uint16) (Table, error) {
	var t Table
	t.Symbols = symbolSpace[:0]

	for _, l := range lengths {
		if l > maxCodeLen {
			return Table{}, ErrBadLength{int(l)}
		}
		t.Counts[l]++
	}

	// 15 passes, L = 1..15; within a pass, scan symbols in ascending order.
	for l := 1; l <= maxCodeLen; l++ {
		for i, ln := range lengths {
			if int(ln) == l {
				t.Symbols = append(t.Symbols, uint16(i))
			}
		}
	}

	return t, nil
}
