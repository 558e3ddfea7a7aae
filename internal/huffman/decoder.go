package huffman

// BitSource is the one primitive the decoder needs: one bit at a time,
// MSB-first into the growing code (spec.md 4.D builds the code by shifting
// left and ORing in each new bit).
type BitSource interface {
	ReadBit() uint32
}

// ErrEscape is returned when 15 iterations pass without a matching code,
// which can only happen against a malformed table (spec.md 4.D).
var ErrEscape = errEscape{}

type errEscape struct{}

func (errEscape) Error() string { return "huffman: no symbol matched within 15 bits" }

// Decode reads one Huffman symbol from r using t, per spec.md 4.D's
// per-iteration protocol: build up `code` one bit at a time, and at each
// length check whether it falls within the current length's span of codes.
func Decode(t *Table, r BitSource) (uint16, error) {
	var code, codeStart, symbolIndex int32

	for l := 1; l <= maxCodeLen; l++ {
		code = (code << 1) | int32(r.ReadBit())
		c := int32(t.Counts[l])

		if code-codeStart < c {
			return t.Symbols[symbolIndex+(code-codeStart)], nil
		}

		codeStart = (codeStart + c) << 1
		symbolIndex += c
	}

	return 0, ErrEscape
}
