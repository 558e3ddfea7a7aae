// Package archive is a heap-allowed, io.ReaderAt-based convenience wrapper
// around the zero-heap tinyzip core, composing osfile (callback adapter),
// globlist (pattern listing), dcache (decompression cache), and xzfallback
// (non-DEFLATE methods) into the shape a normal Go program reaches for
// instead of wiring the callback ABI by hand.
//
// Grounded on internal/zip/zip.go's New/New2 constructor shape and
// internal/zipreaderat/zipreaderat.go's Archive/File split, simplified:
// since each operation here builds a fresh tinyzip.State rather than
// holding one open across calls, there is no refcounted reuse map to manage.
package archive

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"tinyzip"
	"tinyzip/dcache"
	"tinyzip/globlist"
	"tinyzip/internal/crc32b"
	"tinyzip/osfile"
)

// Option configures an Archive at Open time.
type Option func(*Archive)

// WithCache enables a decompression cache shared across repeat extractions
// of entries from this archive.
func WithCache(c *dcache.Cache) Option {
	return func(a *Archive) { a.cache = c }
}

// Archive is an opened ZIP archive backed by an io.ReaderAt.
type Archive struct {
	r    io.ReaderAt
	size int64
	read tinyzip.ReadFunc
	id   uint64

	cache    *dcache.Cache
	fallback map[uint16]func(r io.Reader, size int64) (io.Reader, error)
}

var archiveCounter uint64

// Open validates r as a ZIP archive (by scanning for its end-of-central-
// directory record) and returns a handle for listing and extracting
// entries. r must support reads in [0, size).
func Open(r io.ReaderAt, size int64, opts ...Option) (*Archive, error) {
	a := &Archive{r: r, size: size}
	for _, opt := range opts {
		opt(a)
	}

	src := osfile.New(r, size)
	a.read = src.ReadFunc()
	if id := src.Identity(); id.Valid {
		a.id = id.Dev<<32 ^ id.Ino
	} else {
		a.id = atomic.AddUint64(&archiveCounter, 1)
	}

	if err := a.newState().InitArchive(); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return a, nil
}

// RegisterMethod installs a heap-allowed decompressor for a ZIP compression
// method the zero-heap core reports as ErrAlgorithm. fn receives the raw
// compressed bytes as a streaming io.Reader (a section of the archive's
// own io.ReaderAt) and the compressed size, and returns a reader that
// yields the decompressed bytes (see package xzfallback for an XZ/LZMA
// implementation, registered via xzfallback.Register).
func (a *Archive) RegisterMethod(method uint16, fn func(r io.Reader, size int64) (io.Reader, error)) {
	if a.fallback == nil {
		a.fallback = make(map[uint16]func(r io.Reader, size int64) (io.Reader, error))
	}
	a.fallback[method] = fn
}

func (a *Archive) newState() *tinyzip.State {
	return &tinyzip.State{Read: a.read, ArchiveLen: uint32(a.size)}
}

// Files lists every entry name in the archive, in central-directory order.
func (a *Archive) Files() ([]string, error) {
	s := a.newState()
	if err := s.InitArchive(); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	var names []string
	err := s.WalkNames(func(name []byte) bool {
		names = append(names, string(name))
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return names, nil
}

// Glob lists every entry name matching a doublestar pattern ("*", "**",
// "?", character classes).
func (a *Archive) Glob(pattern string) ([]string, error) {
	s := a.newState()
	if err := s.InitArchive(); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	matches, err := globlist.Match(s, pattern)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return matches, nil
}

// fileMeta is everything File needs to extract its own data later, copied
// out of a *tinyzip.FileInfo so it survives past the State that produced it.
type fileMeta struct {
	name               string
	method             tinyzip.CompressionMethod
	crc                uint32
	compressedSize     uint32
	uncompressedSize   uint32
	dataOffset         uint32
	haveDataDescriptor bool
}

// File is a located archive entry, not yet decompressed.
type File struct {
	arch *Archive
	meta fileMeta
}

// Open locates an entry by exact name.
func (a *Archive) Open(name string) (*File, error) {
	return a.locate(-1, []byte(name))
}

// OpenIndex locates an entry by its position in the central directory.
func (a *Archive) OpenIndex(index int) (*File, error) {
	return a.locate(index, nil)
}

func (a *Archive) locate(index int, name []byte) (*File, error) {
	s := a.newState()
	if err := s.InitArchive(); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	fi, err := s.LocateFile(index, name)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return &File{
		arch: a,
		meta: fileMeta{
			name:               fi.Name(),
			method:             fi.Method,
			crc:                fi.CRC32,
			compressedSize:     fi.CompressedSize,
			uncompressedSize:   fi.UncompressedSize,
			dataOffset:         fi.DataOffset,
			haveDataDescriptor: fi.HaveDataDescriptor,
		},
	}, nil
}

// Name returns the entry's filename.
func (f *File) Name() string { return f.meta.name }

// Size returns the entry's uncompressed size.
func (f *File) Size() uint32 { return f.meta.uncompressedSize }

// ReadAll decompresses the entire entry, checking the archive's cache
// first if one is configured.
func (f *File) ReadAll() ([]byte, error) {
	a := f.arch
	if a.cache != nil {
		if data, ok := a.cache.Get(a.id, f.meta.name, f.meta.crc); ok {
			return data, nil
		}
	}

	if a.cache != nil {
		slog.Info("cacheMiss", "name", f.meta.name)
	}
	data, err := f.extract()
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if err := a.cache.Put(a.id, f.meta.name, f.meta.crc, data); err != nil {
			return nil, fmt.Errorf("archive: caching decompressed entry: %w", err)
		}
	}
	return data, nil
}

func (f *File) extract() ([]byte, error) {
	a := f.arch

	if f.meta.method != tinyzip.MethodStore && f.meta.method != tinyzip.MethodDeflate {
		return f.extractFallback()
	}

	fi := &tinyzip.FileInfo{
		Method:             f.meta.method,
		CRC32:              f.meta.crc,
		CompressedSize:     f.meta.compressedSize,
		UncompressedSize:   f.meta.uncompressedSize,
		DataOffset:         f.meta.dataOffset,
		HaveDataDescriptor: f.meta.haveDataDescriptor,
	}

	s := a.newState()
	buf := make([]byte, f.meta.uncompressedSize)
	s.SetOutput(buf)
	if err := s.GetData(fi); err != nil {
		return nil, fmt.Errorf("archive: %s: %w", f.meta.name, err)
	}
	return buf, nil
}

func (f *File) extractFallback() ([]byte, error) {
	a := f.arch
	fn, ok := a.fallback[uint16(f.meta.method)]
	if !ok {
		slog.Warn("noFallback", "name", f.meta.name, "method", f.meta.method)
		return nil, fmt.Errorf("archive: %s: %w (method %d)", f.meta.name, tinyzip.ErrAlgorithm, f.meta.method)
	}
	slog.Info("fallbackDecompress", "name", f.meta.name, "method", f.meta.method)

	section := io.NewSectionReader(a.r, int64(f.meta.dataOffset), int64(f.meta.compressedSize))
	decoded, err := fn(section, int64(f.meta.compressedSize))
	if err != nil {
		return nil, fmt.Errorf("archive: %s: fallback decompress: %w", f.meta.name, err)
	}
	out, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("archive: %s: fallback decompress: %w", f.meta.name, err)
	}
	if uint32(len(out)) != f.meta.uncompressedSize {
		return nil, fmt.Errorf("archive: %s: fallback produced %d bytes, want %d", f.meta.name, len(out), f.meta.uncompressedSize)
	}
	if crc32b.Checksum(out) != f.meta.crc {
		return nil, fmt.Errorf("archive: %s: fallback output failed checksum verification", f.meta.name)
	}
	return out, nil
}
