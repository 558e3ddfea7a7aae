package tinyzip

import "errors"

// DecodeError classifies why State.HaveError was latched (spec.md 7).
// Checking HaveError alone is sufficient for correct use of this package;
// Err exists only so a caller who wants to know why can ask.
type DecodeError int

const (
	// ErrNone means no error has been latched.
	ErrNone DecodeError = iota
	// ErrFormat: malformed input — bad block type, oversized code length,
	// out-of-range symbol, a back-reference distance beyond produced
	// output, a missing EOCD, a header signature mismatch, or a missing
	// name/index.
	ErrFormat
	// ErrBuffer: the output would have advanced past the caller's buffer.
	ErrBuffer
	// ErrInput: the read callback reported out-of-bounds.
	ErrInput
	// ErrIntegrity: the post-extraction length or CRC-32 check failed.
	ErrIntegrity
)

func (e DecodeError) Error() string {
	switch e {
	case ErrNone:
		return "tinyzip: no error"
	case ErrFormat:
		return "tinyzip: format error"
	case ErrBuffer:
		return "tinyzip: output buffer overflow"
	case ErrInput:
		return "tinyzip: input read failed"
	case ErrIntegrity:
		return "tinyzip: length or checksum mismatch"
	default:
		return "tinyzip: unknown error"
	}
}

// Package-level sentinels for conditions an archive.Archive caller commonly
// wants to test with errors.Is, following the teacher's internal/zip
// convention of named Err* sentinels rather than bare strings.
var (
	ErrNotFound  = errors.New("tinyzip: no matching entry")
	ErrAlgorithm = errors.New("tinyzip: unsupported compression method")
)
