package tinyzip

// Component H: ZIP directory scanner. Only single-disk, non-ZIP64 archives
// are understood, per spec.md 1 and 4.H.

const (
	eocdSignature           = 0x06054b50
	eocdFixedSize           = 22
	centralDirSignature     = 0x02014b50
	localHeaderSignature    = 0x04034b50
	dataDescriptorSignature = 0x08074b50

	maxEOCDComment = 65535
)

// byteAt, u16At, u32At are the random-access primitives header parsing uses;
// they go straight through the callback rather than the sequential bitio
// cursor, since central-directory and local-header parsing jumps around.
func (s *State) byteAt(off uint32) (byte, bool) {
	v := s.Read(s.UData, off)
	if v == OOB {
		return 0, false
	}
	return byte(v), true
}

func (s *State) u16At(off uint32) (uint16, bool) {
	lo, ok1 := s.byteAt(off)
	hi, ok2 := s.byteAt(off + 1)
	if !ok1 || !ok2 {
		return 0, false
	}
	return uint16(lo) | uint16(hi)<<8, true
}

func (s *State) u32At(off uint32) (uint32, bool) {
	lo, ok1 := s.u16At(off)
	hi, ok2 := s.u16At(off + 2)
	if !ok1 || !ok2 {
		return 0, false
	}
	return uint32(lo) | uint32(hi)<<16, true
}

// fieldReader accumulates read failures across several field reads so callers
// don't have to check an ok bool after every single one, the same shape as
// Rob Pike's errWriter: do the work, check the one flag at the end.
type fieldReader struct {
	s   *State
	err bool
}

func (f *fieldReader) u16(off uint32) uint16 {
	if f.err {
		return 0
	}
	v, ok := f.s.u16At(off)
	if !ok {
		f.err = true
	}
	return v
}

func (f *fieldReader) u32(off uint32) uint32 {
	if f.err {
		return 0
	}
	v, ok := f.s.u32At(off)
	if !ok {
		f.err = true
	}
	return v
}

func (f *fieldReader) byteAt(off uint32) byte {
	if f.err {
		return 0
	}
	v, ok := f.s.byteAt(off)
	if !ok {
		f.err = true
	}
	return v
}

// findEOCD scans backward for the end-of-central-directory record (spec.md
// 4.H). The comment-length cross-check rules out a comment that happens to
// contain the signature bytes.
func (s *State) findEOCD() (uint32, bool) {
	if s.ArchiveLen < eocdFixedSize {
		return 0, false
	}

	start := s.ArchiveLen - eocdFixedSize
	low := uint32(0)
	if s.ArchiveLen > maxEOCDComment+eocdFixedSize {
		low = s.ArchiveLen - (maxEOCDComment + eocdFixedSize)
	}

	for off := start; ; {
		if sig, ok := s.u32At(off); ok && sig == eocdSignature {
			if commentLen, ok := s.u16At(off + 20); ok {
				if off+eocdFixedSize+uint32(commentLen) == s.ArchiveLen {
					return off, true
				}
			}
		}
		if off == low {
			return 0, false
		}
		off--
	}
}

// InitArchive locates the central directory (spec.md 6 init_archive).
// Precondition: ArchiveLen, Read, UData are set.
func (s *State) InitArchive() error {
	if s.HaveError {
		return s.Err
	}

	eocd, ok := s.findEOCD()
	if !ok {
		return s.fail(ErrFormat)
	}

	cdOffset, ok := s.u32At(eocd + 16)
	if !ok {
		return s.fail(ErrInput)
	}
	s.centralDirOffset = cdOffset
	return nil
}

// nameEqualsAt compares length bytes starting at off against name, exactly
// (binary compare, no case folding, no encoding translation per spec.md 4.H).
func (s *State) nameEqualsAt(off, length uint32, name []byte) bool {
	if uint32(len(name)) != length {
		return false
	}
	for i := uint32(0); i < length; i++ {
		b, ok := s.byteAt(off + i)
		if !ok {
			return false
		}
		if b != name[i] {
			return false
		}
	}
	return true
}

// findLocalHeaderOffset walks the central directory (spec.md 4.H
// "Iteration"), matching by exact name if name != nil, else by index.
func (s *State) findLocalHeaderOffset(index int, name []byte) (uint32, bool) {
	off := s.centralDirOffset
	remaining := index

	for {
		sig, ok := s.u32At(off)
		if !ok || sig != centralDirSignature {
			return 0, false
		}

		nameLen, _ := s.u16At(off + 28)
		extraLen, _ := s.u16At(off + 30)
		commentLen, _ := s.u16At(off + 32)

		matched := false
		if name != nil {
			matched = s.nameEqualsAt(off+46, uint32(nameLen), name)
		} else if remaining == 0 {
			matched = true
		}

		if matched {
			loc, ok := s.u32At(off + 42)
			if !ok {
				return 0, false
			}
			return loc, true
		}

		if name == nil {
			remaining--
		}
		off += 46 + uint32(nameLen) + uint32(extraLen) + uint32(commentLen)
	}
}

// WalkNames walks the central directory once, calling fn with each entry's
// filename (truncated to 255 bytes, same as FileInfo.Name); iteration stops
// early if fn returns false. The slice passed to fn is reused between
// calls and must not be retained. It builds its own cursor rather than
// touching State's single FileInfo slot, so it never invalidates a
// *FileInfo a caller is holding from LocateFile — the glob-listing
// component (globlist) is the intended caller.
func (s *State) WalkNames(fn func(name []byte) bool) error {
	if s.HaveError {
		return s.Err
	}

	off := s.centralDirOffset
	var buf [maxNameLen]byte
	for {
		sig, ok := s.u32At(off)
		if !ok {
			return s.fail(ErrInput)
		}
		if sig != centralDirSignature {
			return nil
		}

		nameLen, _ := s.u16At(off + 28)
		extraLen, _ := s.u16At(off + 30)
		commentLen, _ := s.u16At(off + 32)

		n := int(nameLen)
		if n > len(buf) {
			n = len(buf)
		}
		for i := 0; i < n; i++ {
			b, ok := s.byteAt(off + 46 + uint32(i))
			if !ok {
				return s.fail(ErrInput)
			}
			buf[i] = b
		}
		if !fn(buf[:n]) {
			return nil
		}

		off += 46 + uint32(nameLen) + uint32(extraLen) + uint32(commentLen)
	}
}

// LocateFile finds one entry by index (>= 0) or by exact name (pass a
// non-nil name to match by name instead), and resolves its local file
// header into State's FileInfo slot (spec.md 6 locate_file).
//
// The returned *FileInfo points into s and is overwritten by the next
// LocateFile on s.
func (s *State) LocateFile(index int, name []byte) (*FileInfo, error) {
	if s.HaveError {
		return nil, s.Err
	}

	loc, ok := s.findLocalHeaderOffset(index, name)
	if !ok {
		s.fail(ErrFormat)
		return nil, ErrNotFound
	}

	fr := &fieldReader{s: s}
	sig := fr.u32(loc)
	flags := fr.u16(loc + 6)
	method := fr.u16(loc + 8)
	crc := fr.u32(loc + 14)
	compSize := fr.u32(loc + 18)
	uncompSize := fr.u32(loc + 22)
	nameLen := fr.u16(loc + 26)
	extraLen := fr.u16(loc + 28)
	if fr.err {
		return nil, s.fail(ErrInput)
	}
	if sig != localHeaderSignature {
		return nil, s.fail(ErrFormat)
	}

	s.info = FileInfo{
		Method:             CompressionMethod(method),
		CRC32:              crc,
		CompressedSize:     compSize,
		UncompressedSize:   uncompSize,
		DataOffset:         loc + 30 + uint32(nameLen) + uint32(extraLen),
		HaveDataDescriptor: flags&0x8 != 0,
	}

	n := int(nameLen)
	if n > maxNameLen {
		n = maxNameLen
	}
	for i := 0; i < n; i++ {
		b := fr.byteAt(loc + 30 + uint32(i))
		if fr.err {
			return nil, s.fail(ErrInput)
		}
		s.info.name[i] = b
	}
	s.info.nameLen = n
	s.info.name[n] = 0

	return &s.info, nil
}
