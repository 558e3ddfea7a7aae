package deflate

import (
	"tinyzip/internal/bitio"
	"tinyzip/internal/window"
)

// Inflate runs the block loop (spec.md 4.F): decode blocks until BFINAL, or
// until an error is returned. It is the single entry point for raw DEFLATE,
// used both by archive entry extraction and by InflateRaw.
func Inflate(bits *bitio.Bits, out *window.Window, scratch *Scratch) error {
	bits.Reset()
	d := &Decoder{Bits: bits, Out: out}

	for {
		if bits.Bytes.HaveError {
			return ErrInput
		}
		final, err := d.nextBlock(scratch)
		if err != nil {
			return err
		}
		if final {
			return nil
		}
	}
}
