package deflate

// Constant tables copied from RFC 1951 3.2.5, as spec.md 4.E lists them.
// Unlike the embedded original (which stores lenBase as an offset from 3 to
// fit each entry in a byte), these already hold the final length value,
// since a uint16 table costs nothing extra here and lets the decode loop
// skip the "+3" step.
var lenBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lenExtra = [29]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var distBase = [30]uint32{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513,
	769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [30]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// codeLengthOrder is the permutation RFC 1951 3.2.7 uses to place the 19
// code-length-alphabet lengths into their natural order.
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

const (
	numLitSymbolsMax  = 286
	numDistSymbolsMax = 30
	numCodeLenSymbols = 19
	endOfBlock        = 256
)
